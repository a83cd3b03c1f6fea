package addresses

import (
	"context"

	"github.com/m04kA/SMC-BookingClient/internal/service/addresses/models"
)

type AddressService interface {
	List(ctx context.Context) (*models.AddressListResponse, error)
	Create(ctx context.Context, req *models.AddressRequest) (*models.AddressResponse, error)
	Update(ctx context.Context, addressID int64, req *models.AddressRequest) (*models.AddressResponse, error)
	Delete(ctx context.Context, addressID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
