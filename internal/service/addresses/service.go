package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingClient/internal/service/addresses/models"
)

// Service сервис управления адресами текущего пользователя
type Service struct {
	gateway  AddressGateway
	identity IdentityProvider
	logger   Logger

	mu        sync.Mutex
	listeners []func(ctx context.Context)
}

// NewService создает новый экземпляр сервиса адресов
func NewService(gateway AddressGateway, identity IdentityProvider, logger Logger) *Service {
	return &Service{
		gateway:  gateway,
		identity: identity,
		logger:   logger,
	}
}

// OnChange регистрирует обработчик, вызываемый после успешного изменения адресов
func (s *Service) OnChange(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// List получает адреса пользователя
func (s *Service) List(ctx context.Context) (*models.AddressListResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}

	addresses, err := s.gateway.ListAddresses(ctx, userID)
	if err != nil {
		s.logger.Error("List: failed to load addresses for user=%d: %v", userID, err)
		return nil, &domain.ActionError{Kind: ErrLoadFailed, Message: msgLoadFailed, Cause: err}
	}

	s.logger.Info("List: fetched %d addresses for user=%d", len(addresses), userID)
	return models.FromDomainAddressList(addresses), nil
}

// Create создает адрес
// Если флаг основного не передан, адрес становится основным, когда он первый у пользователя
func (s *Service) Create(ctx context.Context, req *models.AddressRequest) (*models.AddressResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.logger.Warn("Create: invalid address for user=%d: %v", userID, err)
		return nil, err
	}

	isPrimary := false
	if req.IsPrimary != nil {
		isPrimary = *req.IsPrimary
	} else {
		existing, err := s.gateway.ListAddresses(ctx, userID)
		if err != nil {
			s.logger.Error("Create: failed to load existing addresses for user=%d: %v", userID, err)
			return nil, &domain.ActionError{Kind: ErrSaveFailed, Message: msgSaveFailed, Cause: err}
		}
		isPrimary = len(existing) == 0
	}

	created, err := s.gateway.CreateAddress(ctx, userID, req.ToDomain(userID, isPrimary))
	if err != nil {
		s.logger.Error("Create: failed to create address for user=%d: %v", userID, err)
		return nil, &domain.ActionError{Kind: ErrSaveFailed, Message: msgSaveFailed, Cause: err}
	}

	s.logger.Info("Create: created address id=%d for user=%d, primary=%t", created.ID, userID, created.IsPrimary)
	s.notify(ctx)
	return models.FromDomainAddress(created), nil
}

// Update обновляет адрес; флаг основного без значения сохраняется как false
func (s *Service) Update(ctx context.Context, addressID int64, req *models.AddressRequest) (*models.AddressResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if addressID <= 0 {
		return nil, fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}
	if err := validate(req); err != nil {
		s.logger.Warn("Update: invalid address id=%d: %v", addressID, err)
		return nil, err
	}

	isPrimary := req.IsPrimary != nil && *req.IsPrimary
	address := req.ToDomain(userID, isPrimary)
	address.ID = addressID

	updated, err := s.gateway.UpdateAddress(ctx, addressID, address)
	if err != nil {
		if errors.Is(err, bookingapi.ErrNotFound) {
			s.logger.Warn("Update: address id=%d not found", addressID)
			return nil, ErrAddressNotFound
		}
		s.logger.Error("Update: failed to update address id=%d: %v", addressID, err)
		return nil, &domain.ActionError{Kind: ErrSaveFailed, Message: msgSaveFailed, Cause: err}
	}

	s.logger.Info("Update: updated address id=%d for user=%d", addressID, userID)
	s.notify(ctx)
	return models.FromDomainAddress(updated), nil
}

// Delete удаляет адрес
func (s *Service) Delete(ctx context.Context, addressID int64) error {
	if _, err := s.userID(); err != nil {
		return err
	}
	if addressID <= 0 {
		return fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}

	if err := s.gateway.DeleteAddress(ctx, addressID); err != nil {
		if errors.Is(err, bookingapi.ErrNotFound) {
			s.logger.Warn("Delete: address id=%d not found", addressID)
			return ErrAddressNotFound
		}
		s.logger.Error("Delete: failed to delete address id=%d: %v", addressID, err)
		return &domain.ActionError{Kind: ErrDeleteFailed, Message: msgDeleteFailed, Cause: err}
	}

	s.logger.Info("Delete: deleted address id=%d", addressID)
	s.notify(ctx)
	return nil
}

func (s *Service) userID() (int64, error) {
	identity, err := s.identity.Require()
	if err != nil {
		return 0, ErrNotAuthenticated
	}
	return identity.User.EffectiveID(), nil
}

func (s *Service) notify(ctx context.Context) {
	s.mu.Lock()
	listeners := append([]func(context.Context){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}

func validate(req *models.AddressRequest) error {
	if req == nil {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return &domain.ActionError{
			Kind:    ErrInvalidInput,
			Message: msgRequiredFields,
			Cause:   fmt.Errorf("missing %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
