package patient_dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
	"github.com/m04kA/SMC-BookingClient/internal/session"
	bookingWizard "github.com/m04kA/SMC-BookingClient/internal/usecase/booking_wizard"
)

// DefaultEnrichTimeout ограничение на дозапрос оплат для push-сообщения
const DefaultEnrichTimeout = 10 * time.Second

// Controller дашборд пациента: подписка на подтверждения, список бронирований, мастер
type Controller struct {
	gateway  Gateway
	channel  Channel
	store    BookingStore
	identity IdentityProvider
	metrics  Metrics
	logger   Logger
	wizard   *bookingWizard.Wizard

	enrichTimeout time.Duration

	mu         sync.Mutex
	mounted    bool
	mountGen   uint64
	current    session.Identity
	sub        *realtime.Subscription
	doctors    []domain.Doctor
	catalogue  domain.SpecializationCatalogue
	addresses  []domain.Address
	loadFailed bool
	lastPushed *int64
}

// NewController создает дашборд; мастер бронирования создаётся вместе с ним
// и после успешной отправки перезагружает список через Refresh
func NewController(
	gateway Gateway,
	channel Channel,
	store BookingStore,
	identity IdentityProvider,
	metrics Metrics,
	logger Logger,
) *Controller {
	c := &Controller{
		gateway:       gateway,
		channel:       channel,
		store:         store,
		identity:      identity,
		metrics:       metrics,
		logger:        logger,
		enrichTimeout: DefaultEnrichTimeout,
	}
	c.wizard = bookingWizard.NewWizard(gateway, gateway, c, logger)
	return c
}

// Wizard мастер бронирования дашборда
func (c *Controller) Wizard() *bookingWizard.Wizard {
	return c.wizard
}

// Mount подписывается на подтверждения пациента и загружает данные
// Ошибки фоновой загрузки не прерывают монтирование, только выставляют LoadFailed
func (c *Controller) Mount(ctx context.Context) error {
	identity, err := c.identity.Require()
	if err != nil {
		return ErrNotAuthenticated
	}

	c.Unmount()

	c.mu.Lock()
	c.mounted = true
	c.mountGen++
	c.current = identity
	c.loadFailed = false
	c.lastPushed = nil
	c.mu.Unlock()

	phone := identity.User.Phone
	if phone == "" {
		c.logger.Warn("Mount: user=%d has no phone, realtime confirmations disabled", identity.User.EffectiveID())
	} else {
		sub, err := c.channel.Subscribe(realtime.PatientConfirmationsTopic(phone), c.handleConfirmation)
		if err != nil {
			c.Unmount()
			return fmt.Errorf("%w: %v", ErrSubscribe, err)
		}
		c.mu.Lock()
		c.sub = sub
		c.mu.Unlock()
	}

	c.logger.Info("Mount: patient dashboard mounted for user=%d", identity.User.EffectiveID())

	c.loadCatalogue(ctx)
	if _, err := c.FilterDoctors(ctx, domain.DoctorFilter{}); err != nil {
		c.logger.Warn("Mount: failed to load doctors: %v", err)
	}
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("Mount: failed to load bookings: %v", err)
	}
	if err := c.ReloadAddresses(ctx); err != nil {
		c.logger.Warn("Mount: failed to load addresses: %v", err)
	}
	return nil
}

// Unmount снимает подписку и закрывает мастер; поздние ответы игнорируются
func (c *Controller) Unmount() {
	c.mu.Lock()
	sub := c.sub
	wasMounted := c.mounted
	c.sub = nil
	c.mounted = false
	c.mountGen++
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	c.wizard.Cancel()
	if wasMounted {
		c.logger.Info("Unmount: patient dashboard unmounted")
	}
}

// Refresh полная перезагрузка бронирований пациента
func (c *Controller) Refresh(ctx context.Context) error {
	identity, gen, err := c.mountedIdentity()
	if err != nil {
		return err
	}

	token := c.store.BeginRefresh()
	bookings, err := c.gateway.ListPatientBookings(ctx, identity.User.EffectiveID())
	if err != nil {
		c.store.AbortRefresh(token)
		c.setLoadFailed(gen)
		return fmt.Errorf("%w: bookings: %v", ErrLoadFailed, err)
	}

	if !c.isCurrent(gen) {
		c.store.AbortRefresh(token)
		return nil
	}
	c.store.CommitRefresh(token, bookings)
	return nil
}

// FilterDoctors загружает врачей по фильтру специализации и квалификации
func (c *Controller) FilterDoctors(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	_, gen, err := c.mountedIdentity()
	if err != nil {
		return nil, err
	}

	doctors, err := c.gateway.ListDoctors(ctx, filter)
	if err != nil {
		c.setLoadFailed(gen)
		return nil, fmt.Errorf("%w: doctors: %v", ErrLoadFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted && c.mountGen == gen {
		c.doctors = doctors
	}
	return append([]domain.Doctor(nil), doctors...), nil
}

// Doctor врач из последнего загруженного списка
func (c *Controller) Doctor(id int64) (domain.Doctor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Doctor{}, false
}

// Specializations справочник фильтров, загруженный при монтировании
func (c *Controller) Specializations() domain.SpecializationCatalogue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalogue
}

// ReloadAddresses перезагружает адреса и передаёт их мастеру
func (c *Controller) ReloadAddresses(ctx context.Context) error {
	identity, gen, err := c.mountedIdentity()
	if err != nil {
		return err
	}

	addresses, err := c.gateway.ListAddresses(ctx, identity.User.EffectiveID())
	if err != nil {
		c.setLoadFailed(gen)
		return fmt.Errorf("%w: addresses: %v", ErrLoadFailed, err)
	}

	c.mu.Lock()
	if !c.mounted || c.mountGen != gen {
		c.mu.Unlock()
		return nil
	}
	c.addresses = addresses
	c.mu.Unlock()

	c.wizard.ApplyAddresses(addresses)
	return nil
}

// StartBooking открывает мастер сразу на выборе даты для врача
func (c *Controller) StartBooking(doctor domain.Doctor) error {
	identity, _, err := c.mountedIdentity()
	if err != nil {
		return err
	}
	c.wizard.OpenForDoctor(doctor, defaultsFor(identity))
	return nil
}

// NewBooking открывает мастер на выборе врача
func (c *Controller) NewBooking() error {
	identity, _, err := c.mountedIdentity()
	if err != nil {
		return err
	}
	c.wizard.Open(defaultsFor(identity))
	return nil
}

// LoadFailed true, если одна из фоновых загрузок не удалась
func (c *Controller) LoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadFailed
}

// View снимок для отображения
func (c *Controller) View() View {
	c.mu.Lock()
	view := View{
		Doctors:    append([]domain.Doctor(nil), c.doctors...),
		Catalogue:  c.catalogue,
		Addresses:  append([]domain.Address(nil), c.addresses...),
		LoadFailed: c.loadFailed,
	}
	if c.lastPushed != nil {
		id := *c.lastPushed
		view.LastConfirmedID = &id
	}
	c.mu.Unlock()

	if active, ok := c.store.ActiveBooking(); ok {
		view.Active = &active
	}
	view.History = c.store.HistoryBookings()
	return view
}

// handleConfirmation push-сообщение: разбор, дозапрос ссылки на оплату, upsert
// Ошибка дозапроса не мешает upsert-у, бронирование сохраняется без ссылки
func (c *Controller) handleConfirmation(msg realtime.Message) {
	c.mu.Lock()
	gen, mounted := c.mountGen, c.mounted
	c.mu.Unlock()
	if !mounted {
		return
	}

	booking, err := realtime.DecodeBookingEvent(msg.Body)
	if err != nil {
		c.logger.Error("handleConfirmation: topic=%s failed to decode booking: %v", msg.Topic, err)
		if c.metrics != nil {
			c.metrics.RealtimeDecodeError(decodeErrorKind)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.enrichTimeout)
	defer cancel()

	payments, err := c.gateway.GetBookingPayments(ctx, booking.ID)
	if err != nil {
		c.logger.Warn("handleConfirmation: booking=%d payments lookup failed, storing without link: %v", booking.ID, err)
	} else if link := domain.LatestPaymentLink(payments); link != nil {
		booking.PaymentLink = link
	}

	if !c.isCurrent(gen) {
		c.logger.Info("handleConfirmation: booking=%d arrived after unmount, ignored", booking.ID)
		return
	}

	c.store.Upsert(booking)

	c.mu.Lock()
	id := booking.ID
	c.lastPushed = &id
	c.mu.Unlock()

	c.logger.Info("handleConfirmation: booking=%d status=%s applied", booking.ID, booking.Status)
}

func (c *Controller) loadCatalogue(ctx context.Context) {
	_, gen, err := c.mountedIdentity()
	if err != nil {
		return
	}

	catalogue, err := c.gateway.GetSpecializations(ctx)
	if err != nil {
		c.logger.Warn("loadCatalogue: failed to load specializations: %v", err)
		c.setLoadFailed(gen)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted && c.mountGen == gen {
		c.catalogue = *catalogue
	}
}

func (c *Controller) mountedIdentity() (session.Identity, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return session.Identity{}, 0, ErrNotMounted
	}
	return c.current, c.mountGen, nil
}

func (c *Controller) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted && c.mountGen == gen
}

func (c *Controller) setLoadFailed(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted && c.mountGen == gen {
		c.loadFailed = true
	}
}

func defaultsFor(identity session.Identity) bookingWizard.Defaults {
	return bookingWizard.Defaults{
		PatientName:  identity.User.DisplayName(),
		PatientPhone: identity.User.Phone,
	}
}
