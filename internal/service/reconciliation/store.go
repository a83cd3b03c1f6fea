package reconciliation

import (
	"sync"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
)

// RefreshToken фиксирует позицию журнала на момент начала загрузки списка
type RefreshToken struct {
	seq uint64
}

type upsertRecord struct {
	seq     uint64
	booking domain.Booking
}

// Store согласует бронирования пациента из полной загрузки и из push-сообщений
// Порядок коллекции значим: активным считается первое активное бронирование
type Store struct {
	mu       sync.RWMutex
	bookings []domain.Booking

	seq      uint64
	pending  []upsertRecord // upsert-ы, которые ещё может перекрыть начатая загрузка
	inflight map[uint64]int // начатые, но не завершённые загрузки

	listeners []func()
	logger    Logger
}

// NewStore создает пустое хранилище
func NewStore(logger Logger) *Store {
	return &Store{
		inflight: make(map[uint64]int),
		logger:   logger,
	}
}

// ReplaceAll заменяет коллекцию целиком
func (s *Store) ReplaceAll(bookings []domain.Booking) {
	s.mu.Lock()
	s.bookings = append([]domain.Booking(nil), bookings...)
	s.seq++
	s.mu.Unlock()

	s.notify()
}

// Upsert вставляет бронирование в начало коллекции
// Если id уже есть, старая запись удаляется, новая встаёт в начало
func (s *Store) Upsert(booking domain.Booking) {
	s.mu.Lock()
	if prev, ok := s.find(booking.ID); ok && !prev.Status.CanTransitionTo(booking.Status) {
		s.logger.Warn("Upsert: booking=%d out-of-order status %s -> %s, applying as received",
			booking.ID, prev.Status, booking.Status)
	}
	s.bookings = upsertFront(s.bookings, booking)
	s.seq++
	if len(s.inflight) > 0 {
		s.pending = append(s.pending, upsertRecord{seq: s.seq, booking: booking})
	}
	s.mu.Unlock()

	s.notify()
}

// BeginRefresh отмечает начало полной загрузки
// Пара к CommitRefresh либо AbortRefresh
func (s *Store) BeginRefresh() RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight[s.seq]++
	return RefreshToken{seq: s.seq}
}

// CommitRefresh заменяет коллекцию результатом загрузки и повторно применяет
// upsert-ы, пришедшие после BeginRefresh, в порядке прихода
func (s *Store) CommitRefresh(token RefreshToken, bookings []domain.Booking) {
	s.mu.Lock()
	next := append([]domain.Booking(nil), bookings...)
	replayed, skipped := 0, 0
	for _, rec := range s.pending {
		if rec.seq <= token.seq {
			continue
		}
		// загрузка уже видит более поздний статус, push устарел
		if fetched, ok := findIn(next, rec.booking.ID); ok && rec.booking.Status.Precedes(fetched.Status) {
			s.logger.Warn("CommitRefresh: skipped stale push for booking=%d: pushed %s, fetched %s",
				rec.booking.ID, rec.booking.Status, fetched.Status)
			skipped++
			continue
		}
		next = upsertFront(next, rec.booking)
		replayed++
	}
	s.bookings = next
	s.seq++
	s.release(token)
	s.mu.Unlock()

	if replayed > 0 || skipped > 0 {
		s.logger.Info("CommitRefresh: re-applied %d pushed bookings received during refresh, skipped %d stale", replayed, skipped)
	}
	s.notify()
}

// AbortRefresh завершает неудачную загрузку без изменения коллекции
func (s *Store) AbortRefresh(token RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(token)
}

// ActiveBooking первое по порядку активное бронирование
func (s *Store) ActiveBooking() (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, booking, ok := s.active()
	return booking, ok
}

// HistoryBookings все бронирования, кроме возвращаемого активного, в порядке коллекции
func (s *Store) HistoryBookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, _, ok := s.active()
	history := make([]domain.Booking, 0, len(s.bookings))
	for i, b := range s.bookings {
		if ok && i == idx {
			continue
		}
		history = append(history, b)
	}
	return history
}

// Bookings копия коллекции
func (s *Store) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Booking(nil), s.bookings...)
}

// Get бронирование по id
func (s *Store) Get(id int64) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

// Len размер коллекции
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// OnChange регистрирует слушателя, вызываемого после каждой мутации
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// release вызывается под s.mu; журнал очищается, когда загрузок не осталось
func (s *Store) release(token RefreshToken) {
	if n := s.inflight[token.seq]; n > 1 {
		s.inflight[token.seq] = n - 1
	} else {
		delete(s.inflight, token.seq)
	}

	if len(s.inflight) == 0 {
		s.pending = nil
		return
	}

	oldest := ^uint64(0)
	for seq := range s.inflight {
		if seq < oldest {
			oldest = seq
		}
	}
	kept := s.pending[:0]
	for _, rec := range s.pending {
		if rec.seq > oldest {
			kept = append(kept, rec)
		}
	}
	s.pending = kept
}

func (s *Store) active() (int, domain.Booking, bool) {
	for i, b := range s.bookings {
		if b.IsActive() {
			return i, b, true
		}
	}
	return -1, domain.Booking{}, false
}

func (s *Store) find(id int64) (domain.Booking, bool) {
	return findIn(s.bookings, id)
}

func findIn(bookings []domain.Booking, id int64) (domain.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

func upsertFront(bookings []domain.Booking, booking domain.Booking) []domain.Booking {
	result := make([]domain.Booking, 0, len(bookings)+1)
	result = append(result, booking)
	for _, b := range bookings {
		if b.ID != booking.ID {
			result = append(result, b)
		}
	}
	return result
}
