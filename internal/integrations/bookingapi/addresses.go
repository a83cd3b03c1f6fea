package bookingapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// ListAddresses получает адреса пользователя
func (c *Client) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	var items []Address
	err := c.do(ctx, request{
		endpoint: "addresses.list",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/addresses/user/%d", userID),
		out:      &items,
	})
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.Address, 0, len(items))
	for _, item := range items {
		addresses = append(addresses, item.ToDomain())
	}
	return addresses, nil
}

// GetAddress получает адрес по ID
func (c *Client) GetAddress(ctx context.Context, addressID int64) (*domain.Address, error) {
	var item Address
	err := c.do(ctx, request{
		endpoint: "addresses.get",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/addresses/%d", addressID),
		out:      &item,
	})
	if err != nil {
		return nil, err
	}

	address := item.ToDomain()
	return &address, nil
}

// CreateAddress создает адрес пользователя
func (c *Client) CreateAddress(ctx context.Context, userID int64, address domain.Address) (*domain.Address, error) {
	var item Address
	err := c.do(ctx, request{
		endpoint: "addresses.create",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/addresses/user/%d", userID),
		body:     FromAddress(address),
		out:      &item,
	})
	if err != nil {
		return nil, err
	}

	created := item.ToDomain()
	return &created, nil
}

// UpdateAddress обновляет адрес
func (c *Client) UpdateAddress(ctx context.Context, addressID int64, address domain.Address) (*domain.Address, error) {
	var item Address
	err := c.do(ctx, request{
		endpoint: "addresses.update",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/addresses/%d", addressID),
		body:     FromAddress(address),
		out:      &item,
	})
	if err != nil {
		return nil, err
	}

	updated := item.ToDomain()
	return &updated, nil
}

// DeleteAddress удаляет адрес
func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	return c.do(ctx, request{
		endpoint: "addresses.delete",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/addresses/%d", addressID),
	})
}
