package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
)

// Message сообщение, доставленное подписчику топика
type Message struct {
	Topic string
	Body  []byte
}

// DecodeBookingEvent разбирает тело сообщения как запись бронирования
func DecodeBookingEvent(body []byte) (domain.Booking, error) {
	var dto bookingapi.Booking
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Booking{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if dto.ID == 0 {
		return domain.Booking{}, fmt.Errorf("%w: booking id is missing", ErrDecode)
	}

	booking, err := dto.ToDomain()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return booking, nil
}
