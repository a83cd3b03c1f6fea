package booking_wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingClient/pkg/types"
)

// Wizard конечный автомат мастера бронирования
// Шаги: врач -> дата и слот -> данные и адрес -> проверка и отправка
type Wizard struct {
	mu sync.Mutex

	slots     SlotsProvider
	submitter BookingSubmitter
	refresher Refresher
	logger    Logger

	open       bool
	step       Step
	skipDoctor bool
	draft      Draft
	slotList   []domain.Slot
	slotsErr   bool
	addresses  []domain.Address
	submitting bool
	submitErr  string

	// slotsGen отбрасывает ответы на устаревшие запросы слотов
	slotsGen uint64
	// sessionGen меняется при каждом закрытии мастера
	sessionGen uint64
}

// NewWizard создает закрытый мастер
func NewWizard(slots SlotsProvider, submitter BookingSubmitter, refresher Refresher, logger Logger) *Wizard {
	return &Wizard{
		slots:     slots,
		submitter: submitter,
		refresher: refresher,
		logger:    logger,
	}
}

// Open открывает мастер на шаге выбора врача со свежим черновиком
func (w *Wizard) Open(defaults Defaults) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.reset()
	w.open = true
	w.step = StepSelectDoctor
	w.draft.PatientName = defaults.PatientName
	w.draft.PatientPhone = defaults.PatientPhone
	w.preselectAddress()
	w.logger.Info("Wizard opened at step=%s", w.step)
}

// OpenForDoctor открывает мастер сразу на шаге даты с выбранным врачом
func (w *Wizard) OpenForDoctor(doctor domain.Doctor, defaults Defaults) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.reset()
	w.open = true
	w.step = StepSelectDateAndSlot
	w.skipDoctor = true
	w.draft.Doctor = &doctor
	w.draft.PatientName = defaults.PatientName
	w.draft.PatientPhone = defaults.PatientPhone
	w.preselectAddress()
	w.logger.Info("Wizard opened for doctor=%d at step=%s", doctor.ID, w.step)
}

// SelectDoctor выбирает врача; смена врача сбрасывает дату и слот
func (w *Wizard) SelectDoctor(doctor domain.Doctor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepSelectDoctor); err != nil {
		return err
	}
	if doctor.ID <= 0 || doctor.Phone == "" {
		return fmt.Errorf("%w: doctor id and phone are required", ErrInvalidInput)
	}

	if w.draft.Doctor != nil && w.draft.Doctor.ID != doctor.ID {
		w.draft.Date = nil
		w.draft.SlotTime = ""
		w.slotList = nil
		w.slotsErr = false
		w.slotsGen++
	}
	w.draft.Doctor = &doctor
	return nil
}

// SelectDate задаёт дату, сбрасывает слот и запрашивает слоты ровно один раз
// Ошибка загрузки слотов не блокирует мастер: список пуст, выставлен флаг SlotsError
func (w *Wizard) SelectDate(ctx context.Context, date time.Time) error {
	w.mu.Lock()
	if err := w.requireStep(StepSelectDateAndSlot); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.draft.Doctor == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: doctor is not selected", ErrStepIncomplete)
	}
	if date.IsZero() {
		w.mu.Unlock()
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	w.draft.Date = &day
	w.draft.SlotTime = ""
	w.slotList = nil
	w.slotsErr = false
	w.slotsGen++
	gen := w.slotsGen
	doctorID := w.draft.Doctor.ID
	w.mu.Unlock()

	// Запрос идёт без блокировки, чтобы мастер оставался отзывчивым
	slots, err := w.slots.GetAvailableSlots(ctx, doctorID, day)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open || gen != w.slotsGen {
		w.logger.Info("SelectDate: discarding stale slots for doctor=%d date=%s", doctorID, day.Format(domain.DateFormat))
		return nil
	}
	if err != nil {
		w.logger.Warn("SelectDate: failed to load slots for doctor=%d date=%s: %v", doctorID, day.Format(domain.DateFormat), err)
		w.slotList = []domain.Slot{}
		w.slotsErr = true
		return nil
	}

	w.slotList = slots
	return nil
}

// SelectSlot выбирает время; оно должно совпасть с доступным слотом текущего списка
func (w *Wizard) SelectSlot(startTime string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepSelectDateAndSlot); err != nil {
		return err
	}
	if w.draft.Date == nil {
		return fmt.Errorf("%w: date is not selected", ErrStepIncomplete)
	}

	slotTime, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	for _, slot := range domain.AvailableSlots(w.slotList) {
		if slot.StartTime == slotTime {
			w.draft.SlotTime = slotTime
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSlotNotAvailable, slotTime)
}

// SetDetails задаёт данные пациента и описание
func (w *Wizard) SetDetails(patientName, patientPhone, description string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepDetailsAndAddress); err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	w.draft.PatientName = strings.TrimSpace(patientName)
	w.draft.PatientPhone = strings.TrimSpace(patientPhone)
	w.draft.Description = description
	return nil
}

// SelectAddress выбирает адрес; если список адресов загружен, id должен в нём быть
func (w *Wizard) SelectAddress(addressID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepDetailsAndAddress); err != nil {
		return err
	}
	if addressID <= 0 {
		return fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}
	if len(w.addresses) > 0 && !containsAddress(w.addresses, addressID) {
		return fmt.Errorf("%w: address %d does not belong to the user", ErrInvalidInput, addressID)
	}

	w.draft.AddressID = &addressID
	return nil
}

// ApplyAddresses передаёт загруженные адреса; если адрес не выбран,
// выбирается основной, иначе первый
func (w *Wizard) ApplyAddresses(addresses []domain.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.addresses = append([]domain.Address(nil), addresses...)
	if w.open {
		w.preselectAddress()
	}
}

// preselectAddress вызывается под w.mu
func (w *Wizard) preselectAddress() {
	if w.draft.AddressID != nil {
		return
	}
	if address, ok := domain.PrimaryOrFirst(w.addresses); ok {
		id := address.ID
		w.draft.AddressID = &id
	}
}

// CurrentState снимок мастера
func (w *Wizard) CurrentState() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		Open:        w.open,
		Step:        w.step,
		SkipDoctor:  w.skipDoctor,
		Draft:       w.draft.clone(),
		Slots:       append([]domain.Slot(nil), w.slotList...),
		Selectable:  domain.AvailableSlots(w.slotList),
		SlotsError:  w.slotsErr,
		Addresses:   append([]domain.Address(nil), w.addresses...),
		Submitting:  w.submitting,
		SubmitError: w.submitErr,
		CanAdvance:  w.open && w.canAdvance(),
	}
}

// CanAdvance true, если текущий шаг заполнен
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open && w.canAdvance()
}

// SlotsError true, если последняя загрузка слотов завершилась ошибкой
func (w *Wizard) SlotsError() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slotsErr
}

// SubmitError сообщение последней неудачной отправки
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// IsOpen true, пока мастер открыт
func (w *Wizard) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Next переходит на следующий шаг, если текущий заполнен
// С шага проверки перехода вперёд нет: используется Submit
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrWizardClosed
	}
	if w.step == StepReviewAndSubmit {
		return fmt.Errorf("%w: no step after %s", ErrInvalidStep, w.step)
	}
	if !w.canAdvance() {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.step)
	}

	w.step++
	return nil
}

// Back возвращает на предыдущий шаг без проверок
// С первого шага, а при открытии на шаге даты и с него, мастер закрывается
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrWizardClosed
	}
	if w.step == StepSelectDoctor || (w.step == StepSelectDateAndSlot && w.skipDoctor) {
		w.logger.Info("Wizard closed by back from step=%s", w.step)
		w.reset()
		return nil
	}

	w.step--
	return nil
}

// Cancel закрывает мастер и уничтожает черновик без сетевых вызовов
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		w.logger.Info("Wizard cancelled at step=%s", w.step)
	}
	w.reset()
}

// Submit отправляет запрос одним вызовом
// Успех: мастер закрывается, черновик уничтожается, список бронирований перезагружается
// Ошибка: мастер остаётся на шаге проверки с сохранённым черновиком и SubmitError
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return ErrWizardClosed
	}
	if w.step != StepReviewAndSubmit {
		w.mu.Unlock()
		return fmt.Errorf("%w: submit from %s", ErrInvalidStep, w.step)
	}
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}
	req, err := w.buildRequest()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.submitting = true
	w.submitErr = ""
	session := w.sessionGen
	w.mu.Unlock()

	err = w.submitter.SubmitBookingRequest(ctx, req)

	w.mu.Lock()
	if session != w.sessionGen {
		// мастер закрыли, пока запрос был в пути
		w.mu.Unlock()
		if err != nil {
			w.logger.Warn("Submit: wizard closed during failed submission: %v", err)
			return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
		}
		w.refresh(ctx)
		return nil
	}
	w.submitting = false
	if err != nil {
		w.submitErr = bookingapi.UserMessage(err, msgSubmitFailed)
		w.mu.Unlock()
		w.logger.Error("Submit: booking request for doctor_phone=%s date=%s time=%s failed: %v",
			req.DoctorPhone, req.RequestedDate.Format(domain.DateFormat), req.RequestedStartTime, err)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	w.reset()
	w.mu.Unlock()

	w.logger.Info("Submit: booking request sent for doctor_phone=%s date=%s time=%s",
		req.DoctorPhone, req.RequestedDate.Format(domain.DateFormat), req.RequestedStartTime)

	w.refresh(ctx)
	return nil
}

func (w *Wizard) refresh(ctx context.Context) {
	if w.refresher == nil {
		return
	}
	if err := w.refresher.Refresh(ctx); err != nil {
		w.logger.Warn("Submit: bookings refresh after submission failed: %v", err)
	}
}

// buildRequest вызывается под w.mu
func (w *Wizard) buildRequest() (domain.BookingRequest, error) {
	for step := StepSelectDoctor; step < StepReviewAndSubmit; step++ {
		if !w.stepComplete(step) {
			return domain.BookingRequest{}, fmt.Errorf("%w: %s", ErrStepIncomplete, step)
		}
	}

	return domain.BookingRequest{
		DoctorPhone:        w.draft.Doctor.Phone,
		PatientPhone:       w.draft.PatientPhone,
		PatientName:        w.draft.PatientName,
		RequestedDate:      *w.draft.Date,
		RequestedStartTime: w.draft.SlotTime.String(),
		Description:        w.draft.Description,
		AddressID:          *w.draft.AddressID,
	}, nil
}

func (w *Wizard) canAdvance() bool {
	if w.step == StepReviewAndSubmit {
		return false
	}
	return w.stepComplete(w.step)
}

func (w *Wizard) stepComplete(step Step) bool {
	switch step {
	case StepSelectDoctor:
		return w.draft.Doctor != nil
	case StepSelectDateAndSlot:
		return w.draft.Date != nil && !w.draft.SlotTime.IsZero()
	case StepDetailsAndAddress:
		return w.draft.PatientPhone != "" && w.draft.PatientName != "" && w.draft.AddressID != nil
	default:
		return true
	}
}

func (w *Wizard) requireStep(step Step) error {
	if !w.open {
		return ErrWizardClosed
	}
	if w.step != step {
		return fmt.Errorf("%w: expected %s, current %s", ErrInvalidStep, step, w.step)
	}
	return nil
}

// reset закрывает мастер; адреса пользователя переживают закрытие
func (w *Wizard) reset() {
	w.open = false
	w.step = StepSelectDoctor
	w.skipDoctor = false
	w.draft = Draft{}
	w.slotList = nil
	w.slotsErr = false
	w.submitting = false
	w.submitErr = ""
	w.slotsGen++
	w.sessionGen++
}

func containsAddress(addresses []domain.Address, id int64) bool {
	for _, a := range addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}
