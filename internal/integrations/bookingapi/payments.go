package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// CreatePaymentLink создает ссылку на оплату бронирования
// Сервис может ответить пустым телом, тогда возвращается nil без ошибки
func (c *Client) CreatePaymentLink(ctx context.Context, req domain.PaymentLinkRequest) (*domain.Payment, error) {
	var item *Payment
	err := c.do(ctx, request{
		endpoint: "payments.create_link",
		method:   http.MethodPost,
		path:     "/payments/links",
		body: PaymentLinkRequest{
			BookingID:   req.BookingID,
			PatientID:   req.PatientID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
		},
		out:         &item,
		allowNoBody: true,
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	payment := item.ToDomain()
	return &payment, nil
}

// GetBookingPayments получает оплаты бронирования, новые первыми
func (c *Client) GetBookingPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var items []Payment
	err := c.do(ctx, request{
		endpoint: "payments.by_booking",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/payments/booking/%d", bookingID),
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		payments = append(payments, item.ToDomain())
	}
	return payments, nil
}
