package pending_requests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
)

// DefaultReloadTimeout ограничение на перезагрузку по push-сообщению
const DefaultReloadTimeout = 15 * time.Second

// Controller список запросов пациентов, ожидающих решения врача
type Controller struct {
	gateway  Gateway
	channel  Channel
	identity IdentityProvider
	logger   Logger

	reloadTimeout time.Duration

	mu         sync.Mutex
	mounted    bool
	mountGen   uint64
	doctorID   int64
	sub        *realtime.Subscription
	requests   []domain.PendingRequest
	loadFailed bool
}

// NewController создает контроллер запросов
func NewController(gateway Gateway, channel Channel, identity IdentityProvider, logger Logger) *Controller {
	return &Controller{
		gateway:       gateway,
		channel:       channel,
		identity:      identity,
		logger:        logger,
		reloadTimeout: DefaultReloadTimeout,
	}
}

// Mount загружает запросы и подписывается на топик врача
func (c *Controller) Mount(ctx context.Context) error {
	identity, err := c.identity.Require()
	if err != nil {
		return ErrNotAuthenticated
	}
	if !identity.User.IsDoctor() {
		return ErrNotDoctor
	}

	c.Unmount()

	doctorID := identity.User.EffectiveID()
	c.mu.Lock()
	c.mounted = true
	c.mountGen++
	c.doctorID = doctorID
	c.requests = nil
	c.loadFailed = false
	c.mu.Unlock()

	if err := c.Reload(ctx); err != nil {
		c.logger.Warn("Mount: %v", err)
	}

	sub, err := c.channel.Subscribe(realtime.DoctorPendingRequestsTopic(doctorID), c.handleMessage)
	if err != nil {
		c.Unmount()
		return fmt.Errorf("%w: %v", ErrSubscribe, err)
	}
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	c.logger.Info("Mount: pending requests mounted for doctor=%d", doctorID)
	return nil
}

// Unmount снимает подписку
func (c *Controller) Unmount() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mounted = false
	c.mountGen++
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Reload перезагружает запросы врача
func (c *Controller) Reload(ctx context.Context) error {
	doctorID, gen, err := c.mountedDoctor()
	if err != nil {
		return err
	}

	requests, err := c.gateway.GetPendingRequests(ctx, doctorID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || c.mountGen != gen {
		return nil
	}
	if err != nil {
		c.loadFailed = true
		return fmt.Errorf("%w: doctor=%d: %v", ErrLoadFailed, doctorID, err)
	}
	c.requests = requests
	c.loadFailed = false
	return nil
}

// Requests снимок текущего списка
func (c *Controller) Requests() []domain.PendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.PendingRequest(nil), c.requests...)
}

// LoadFailed true, если последняя загрузка не удалась
func (c *Controller) LoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadFailed
}

// Confirm подтверждает запрос; durationMinutes <= 0 заменяется длительностью по умолчанию
// 409 от бэкенда возвращается как ErrTimeSlotConflict, список при этом не перезагружается
func (c *Controller) Confirm(ctx context.Context, requestID int64, durationMinutes int) error {
	if requestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	doctorID, _, err := c.mountedDoctor()
	if err != nil {
		return err
	}
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultConfirmDurationMinutes
	}

	req := domain.ConfirmRequest{DoctorID: doctorID, DurationMinutes: durationMinutes}
	if err := c.gateway.ConfirmRequest(ctx, requestID, req); err != nil {
		if errors.Is(err, bookingapi.ErrConflict) {
			c.logger.Warn("Confirm: request=%d doctor=%d time slot conflict", requestID, doctorID)
			return &domain.ActionError{Kind: ErrTimeSlotConflict, Message: msgTimeSlotConflict, Cause: err}
		}
		c.logger.Error("Confirm: request=%d doctor=%d failed: %v", requestID, doctorID, err)
		return &domain.ActionError{Kind: ErrConfirmFailed, Message: msgConfirmFailed, Cause: err}
	}

	c.logger.Info("Confirm: request=%d confirmed by doctor=%d for %d minutes", requestID, doctorID, durationMinutes)
	c.reloadAfterAction(ctx, "Confirm")
	return nil
}

// Reject отклоняет запрос с сообщением пациенту
func (c *Controller) Reject(ctx context.Context, requestID int64, message string) error {
	if requestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > domain.MaxRejectMessageLength {
		return fmt.Errorf("%w: message longer than %d characters", ErrInvalidInput, domain.MaxRejectMessageLength)
	}
	doctorID, _, err := c.mountedDoctor()
	if err != nil {
		return err
	}

	req := domain.RejectRequest{DoctorID: doctorID, Message: message}
	if err := c.gateway.RejectRequest(ctx, requestID, req); err != nil {
		c.logger.Error("Reject: request=%d doctor=%d failed: %v", requestID, doctorID, err)
		return &domain.ActionError{Kind: ErrRejectFailed, Message: msgRejectFailed, Cause: err}
	}

	c.logger.Info("Reject: request=%d rejected by doctor=%d", requestID, doctorID)
	c.reloadAfterAction(ctx, "Reject")
	return nil
}

// AddressFor адрес, указанный пациентом в запросе
func (c *Controller) AddressFor(ctx context.Context, requestID, addressID int64) (*domain.Address, error) {
	if addressID <= 0 {
		return nil, fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}
	if _, _, err := c.mountedDoctor(); err != nil {
		return nil, err
	}

	address, err := c.gateway.GetAddress(ctx, addressID)
	if err != nil {
		c.logger.Error("AddressFor: request=%d address=%d failed: %v", requestID, addressID, err)
		return nil, &domain.ActionError{
			Kind:    ErrAddressFailed,
			Message: fmt.Sprintf(msgAddressFailed, addressID),
			Cause:   err,
		}
	}
	return address, nil
}

// handleMessage любое сообщение в топике врача перезагружает список
func (c *Controller) handleMessage(msg realtime.Message) {
	if _, _, err := c.mountedDoctor(); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.reloadTimeout)
	defer cancel()
	if err := c.Reload(ctx); err != nil {
		c.logger.Warn("handleMessage: topic=%s reload failed: %v", msg.Topic, err)
	}
}

func (c *Controller) reloadAfterAction(ctx context.Context, action string) {
	if err := c.Reload(ctx); err != nil {
		c.logger.Warn("%s: reload failed: %v", action, err)
	}
}

func (c *Controller) mountedDoctor() (int64, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return 0, 0, ErrNotMounted
	}
	return c.doctorID, c.mountGen, nil
}
