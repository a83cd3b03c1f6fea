package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingClient/internal/domain"
	"github.com/m04kA/SMC-BookingClient/pkg/logger"
	"github.com/m04kA/SMC-BookingClient/pkg/ptr"
)

func booking(id int64, status domain.BookingStatus) domain.Booking {
	return domain.Booking{ID: id, DoctorID: 7, Status: status}
}

func ids(bookings []domain.Booking) []int64 {
	result := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, b.ID)
	}
	return result
}

func TestStore_UpsertDistinctIDsPartitionIntoActiveAndHistory(t *testing.T) {
	store := NewStore(logger.NewNop())
	inputs := []domain.Booking{
		booking(1, domain.StatusCompleted),
		booking(2, domain.StatusPending),
		booking(3, domain.StatusCancelled),
		booking(4, domain.StatusPaid),
		booking(5, domain.StatusRejected),
	}
	for _, b := range inputs {
		store.Upsert(b)
	}

	seen := map[int64]int{}
	active, ok := store.ActiveBooking()
	require.True(t, ok)
	seen[active.ID]++
	for _, b := range store.HistoryBookings() {
		seen[b.ID]++
	}

	require.Len(t, seen, len(inputs))
	for _, b := range inputs {
		assert.Equal(t, 1, seen[b.ID], "booking %d", b.ID)
	}
	// последний upsert стоит первым, первое активное выигрывает
	assert.Equal(t, int64(4), active.ID)
}

func TestStore_UpsertSameIDReplaces(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.Upsert(booking(9, domain.StatusPending))
	store.Upsert(booking(9, domain.StatusCancelled))

	require.Equal(t, 1, store.Len())
	got, ok := store.Get(9)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestStore_NoActiveWhenAllTerminal(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{
		booking(1, domain.StatusCompleted),
		booking(2, domain.StatusCancelled),
		booking(3, domain.StatusRejected),
	})

	_, ok := store.ActiveBooking()
	assert.False(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, ids(store.HistoryBookings()))
}

func TestStore_PushAcceptsPendingBooking(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{
		booking(90, domain.StatusCompleted),
		booking(101, domain.StatusPending),
		booking(80, domain.StatusCancelled),
	})

	store.Upsert(booking(101, domain.StatusAccepted))

	assert.Equal(t, []int64{101, 90, 80}, ids(store.Bookings()))
	active, ok := store.ActiveBooking()
	require.True(t, ok)
	assert.Equal(t, int64(101), active.ID)
	assert.Equal(t, domain.StatusAccepted, active.Status)
	assert.Equal(t, []int64{90, 80}, ids(store.HistoryBookings()))
}

func TestStore_FirstActiveWinsWhenSeveral(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{
		booking(1, domain.StatusCompleted),
		booking(2, domain.StatusConfirmed),
		booking(3, domain.StatusPending),
	})

	active, ok := store.ActiveBooking()
	require.True(t, ok)
	assert.Equal(t, int64(2), active.ID)
	assert.Equal(t, []int64{1, 3}, ids(store.HistoryBookings()))
}

func TestStore_CommitRefreshReplaysPushesReceivedDuringFetch(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{booking(101, domain.StatusPending)})

	token := store.BeginRefresh()
	// push приходит, пока загрузка в пути
	store.Upsert(booking(101, domain.StatusAccepted))
	store.Upsert(booking(102, domain.StatusPending))

	// ответ загрузки снят до push-ей и содержит устаревший статус
	store.CommitRefresh(token, []domain.Booking{
		booking(101, domain.StatusPending),
		booking(50, domain.StatusCompleted),
	})

	assert.Equal(t, []int64{102, 101, 50}, ids(store.Bookings()))
	got, _ := store.Get(101)
	assert.Equal(t, domain.StatusAccepted, got.Status)

	// после завершения загрузки журнал пуст: следующая загрузка авторитетна
	next := store.BeginRefresh()
	store.CommitRefresh(next, []domain.Booking{booking(101, domain.StatusPaid)})
	assert.Equal(t, []int64{101}, ids(store.Bookings()))
}

func TestStore_CommitRefreshKeepsNewerFetchedStatus(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{booking(101, domain.StatusPending), booking(102, domain.StatusAccepted)})

	token := store.BeginRefresh()
	store.Upsert(booking(101, domain.StatusAccepted))
	store.Upsert(booking(102, domain.StatusAccepted))

	// ответ снят после push-ей: бронирования уже оплачены и завершены
	store.CommitRefresh(token, []domain.Booking{
		booking(101, domain.StatusPaid),
		booking(102, domain.StatusCompleted),
	})

	got, ok := store.Get(101)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPaid, got.Status)
	got, ok = store.Get(102)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, []int64{101, 102}, ids(store.Bookings()))
}

func TestStore_CommitRefreshReplaysSameStatusPush(t *testing.T) {
	store := NewStore(logger.NewNop())

	token := store.BeginRefresh()
	pushed := booking(101, domain.StatusAccepted)
	pushed.PaymentLink = ptr.Ptr("https://pay.example/101")
	store.Upsert(pushed)

	store.CommitRefresh(token, []domain.Booking{booking(101, domain.StatusAccepted)})

	got, _ := store.Get(101)
	require.NotNil(t, got.PaymentLink)
	assert.Equal(t, "https://pay.example/101", *got.PaymentLink)
}

func TestStore_PushBeforeRefreshStartIsNotReplayed(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.Upsert(booking(7, domain.StatusPending))

	token := store.BeginRefresh()
	store.CommitRefresh(token, []domain.Booking{booking(8, domain.StatusCompleted)})

	assert.Equal(t, []int64{8}, ids(store.Bookings()))
}

func TestStore_OverlappingRefreshes(t *testing.T) {
	store := NewStore(logger.NewNop())

	first := store.BeginRefresh()
	store.Upsert(booking(1, domain.StatusAccepted))
	second := store.BeginRefresh()
	store.Upsert(booking(2, domain.StatusPending))

	store.CommitRefresh(second, []domain.Booking{booking(1, domain.StatusAccepted)})
	assert.Equal(t, []int64{2, 1}, ids(store.Bookings()))

	store.CommitRefresh(first, []domain.Booking{booking(1, domain.StatusPending)})
	assert.Equal(t, []int64{2, 1}, ids(store.Bookings()))
	got, _ := store.Get(1)
	assert.Equal(t, domain.StatusAccepted, got.Status)
}

func TestStore_AbortRefreshKeepsCollection(t *testing.T) {
	store := NewStore(logger.NewNop())
	store.ReplaceAll([]domain.Booking{booking(1, domain.StatusPending)})

	token := store.BeginRefresh()
	store.AbortRefresh(token)

	assert.Equal(t, []int64{1}, ids(store.Bookings()))
}

func TestStore_OnChangeAndSnapshotIsolation(t *testing.T) {
	store := NewStore(logger.NewNop())
	calls := 0
	store.OnChange(func() { calls++ })

	store.ReplaceAll([]domain.Booking{booking(1, domain.StatusPending)})
	store.Upsert(booking(2, domain.StatusPending))
	token := store.BeginRefresh()
	store.CommitRefresh(token, nil)
	assert.Equal(t, 3, calls)

	store.ReplaceAll([]domain.Booking{booking(1, domain.StatusPending)})
	snapshot := store.Bookings()
	snapshot[0].Status = domain.StatusCancelled
	got, _ := store.Get(1)
	assert.Equal(t, domain.StatusPending, got.Status)
}
