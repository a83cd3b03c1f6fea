package doctor_dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/realtime"
)

// DefaultReloadTimeout ограничение на перезагрузку, вызванную push-сообщением
const DefaultReloadTimeout = 15 * time.Second

// Controller дашборд врача: метрики, приёмы за день, график, оплаты
type Controller struct {
	gateway  Gateway
	channel  Channel
	identity IdentityProvider
	logger   Logger
	now      func() time.Time

	reloadTimeout time.Duration

	mu           sync.Mutex
	mounted      bool
	mountGen     uint64
	doctorID     int64
	sub          *realtime.Subscription
	date         time.Time
	period       domain.ChartPeriod
	metrics      domain.DashboardMetrics
	appointments []domain.Appointment
	chart        domain.ChartData
	loadFailed   bool
}

// NewController создает дашборд врача; дата по умолчанию сегодняшняя, период daily
func NewController(gateway Gateway, channel Channel, identity IdentityProvider, logger Logger) *Controller {
	return &Controller{
		gateway:       gateway,
		channel:       channel,
		identity:      identity,
		logger:        logger,
		now:           time.Now,
		reloadTimeout: DefaultReloadTimeout,
		period:        domain.ChartDaily,
	}
}

// Mount подписывается на топик врача и загружает данные выбранного дня
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
	if c.date.IsZero() {
		c.date = dayOf(c.now())
	}
	c.mu.Unlock()

	sub, err := c.channel.Subscribe(realtime.DoctorPendingRequestsTopic(doctorID), c.handlePendingRequest)
	if err != nil {
		c.Unmount()
		return fmt.Errorf("%w: %v", ErrSubscribe, err)
	}
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	c.logger.Info("Mount: doctor dashboard mounted for doctor=%d", doctorID)

	if err := c.Load(ctx); err != nil {
		c.logger.Warn("Mount: %v", err)
	}
	return nil
}

// Unmount снимает подписку; поздние ответы игнорируются
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
	if wasMounted {
		c.logger.Info("Unmount: doctor dashboard unmounted")
	}
}

// Load загружает метрики, приёмы и график за выбранный день
// Каждая часть грузится независимо, любая ошибка выставляет LoadFailed
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	gen, doctorID, date, period := c.mountGen, c.doctorID, c.date, c.period
	c.mu.Unlock()

	var failed []string

	metrics, err := c.gateway.GetDashboardMetrics(ctx, doctorID, date)
	if err != nil {
		c.logger.Error("Load: doctor=%d failed to load metrics: %v", doctorID, err)
		failed = append(failed, "metrics")
	}

	appointments, err := c.gateway.GetDoctorBookings(ctx, doctorID, date)
	if err != nil {
		c.logger.Error("Load: doctor=%d failed to load bookings: %v", doctorID, err)
		failed = append(failed, "bookings")
	}

	chart, err := c.gateway.GetChartData(ctx, doctorID, period, date)
	if err != nil {
		c.logger.Error("Load: doctor=%d failed to load %s chart: %v", doctorID, period, err)
		failed = append(failed, "chart")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || c.mountGen != gen || !c.date.Equal(date) || c.period != period {
		return nil
	}

	if metrics != nil {
		c.metrics = *metrics
	}
	if appointments != nil {
		c.appointments = appointments
	}
	if chart != nil {
		c.chart = *chart
	}
	c.loadFailed = len(failed) > 0

	if c.loadFailed {
		return fmt.Errorf("%w: %s", ErrLoadFailed, strings.Join(failed, ", "))
	}
	return nil
}

// SetDate меняет выбранный день и перезагружает дашборд
func (c *Controller) SetDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	c.date = dayOf(date)
	c.mu.Unlock()

	return c.Load(ctx)
}

// SetChartPeriod переключает агрегацию графика и перезагружает дашборд
func (c *Controller) SetChartPeriod(ctx context.Context, period domain.ChartPeriod) error {
	if period != domain.ChartDaily && period != domain.ChartWeekly {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	c.period = period
	c.mu.Unlock()

	return c.Load(ctx)
}

// CreatePaymentLink выставляет ссылку на оплату по приёму выбранного дня
// Если сумма не передана, берётся сумма приёма, иначе сумма по умолчанию
func (c *Controller) CreatePaymentLink(ctx context.Context, bookingID int64, amount *float64) (*domain.Payment, error) {
	if amount != nil && *amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	appointment, err := c.appointment(bookingID)
	if err != nil {
		return nil, err
	}

	req := domain.PaymentLinkRequest{
		BookingID:   appointment.ID,
		PatientID:   appointment.PatientID,
		Amount:      paymentAmount(appointment, amount),
		Currency:    domain.DefaultCurrency,
		Description: domain.DefaultPaymentDescription,
	}

	payment, err := c.gateway.CreatePaymentLink(ctx, req)
	if err != nil {
		c.logger.Error("CreatePaymentLink: booking=%d amount=%.2f failed: %v", bookingID, req.Amount, err)
		return nil, &domain.ActionError{
			Kind:    ErrPaymentLinkFailed,
			Message: bookingapi.UserMessage(err, msgPaymentLinkFailed),
			Cause:   err,
		}
	}

	c.logger.Info("CreatePaymentLink: booking=%d amount=%.2f %s link issued", bookingID, req.Amount, req.Currency)
	c.reloadAfterAction(ctx, "CreatePaymentLink")
	return payment, nil
}

// CompleteBooking отмечает приём завершённым с замечаниями врача
func (c *Controller) CompleteBooking(ctx context.Context, bookingID int64, remarks string) error {
	if bookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if _, _, err := c.mountedDoctor(); err != nil {
		return err
	}

	if err := c.gateway.CompleteBooking(ctx, bookingID, remarks); err != nil {
		c.logger.Error("CompleteBooking: booking=%d failed: %v", bookingID, err)
		return &domain.ActionError{
			Kind:    ErrCompleteFailed,
			Message: msgCompleteFailed,
			Cause:   err,
		}
	}

	c.logger.Info("CompleteBooking: booking=%d completed", bookingID)
	c.reloadAfterAction(ctx, "CompleteBooking")
	return nil
}

// SearchPatient история приёмов пациента по телефону
// Ошибка поиска отдаёт пустую историю
func (c *Controller) SearchPatient(ctx context.Context, phone string) ([]domain.Appointment, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if _, _, err := c.mountedDoctor(); err != nil {
		return nil, err
	}

	history, err := c.gateway.SearchPatient(ctx, phone)
	if err != nil {
		c.logger.Warn("SearchPatient: phone=%s search failed: %v", phone, err)
		return []domain.Appointment{}, nil
	}
	return history, nil
}

// LoadFailed true, если последняя загрузка не удалась
func (c *Controller) LoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadFailed
}

// View снимок для отображения
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	chart := c.chart
	chart.DataPoints = append([]domain.ChartPoint(nil), c.chart.DataPoints...)
	return View{
		Date:         c.date,
		Period:       c.period,
		Metrics:      c.metrics,
		Appointments: append([]domain.Appointment(nil), c.appointments...),
		Chart:        chart,
		LoadFailed:   c.loadFailed,
	}
}

// handlePendingRequest любое сообщение в топике врача перезагружает дашборд
func (c *Controller) handlePendingRequest(msg realtime.Message) {
	c.mu.Lock()
	mounted := c.mounted
	c.mu.Unlock()
	if !mounted {
		return
	}

	c.logger.Info("handlePendingRequest: topic=%s reloading dashboard", msg.Topic)

	ctx, cancel := context.WithTimeout(context.Background(), c.reloadTimeout)
	defer cancel()
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("handlePendingRequest: %v", err)
	}
}

func (c *Controller) reloadAfterAction(ctx context.Context, action string) {
	if err := c.Load(ctx); err != nil {
		c.logger.Warn("%s: reload failed: %v", action, err)
	}
}

func (c *Controller) appointment(bookingID int64) (domain.Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return domain.Appointment{}, ErrNotMounted
	}
	for _, a := range c.appointments {
		if a.ID == bookingID {
			return a, nil
		}
	}
	return domain.Appointment{}, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
}

func (c *Controller) mountedDoctor() (int64, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mounted {
		return 0, 0, ErrNotMounted
	}
	return c.doctorID, c.mountGen, nil
}

func paymentAmount(appointment domain.Appointment, override *float64) float64 {
	if override != nil {
		return *override
	}
	if appointment.TotalAmount != nil && *appointment.TotalAmount > 0 {
		return *appointment.TotalAmount
	}
	return domain.DefaultPaymentAmount
}
