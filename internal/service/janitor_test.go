package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func TestJanitorService_SweepReservations(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := NewJanitorService(repo, &fakeBlockedDateRepo{}, zap.NewNop())

	for i, expiresAt := range []time.Time{
		time.Now().Add(-time.Minute),
		time.Now().Add(-time.Second),
		time.Now().Add(10 * time.Minute),
	} {
		_, err := repo.Reserve(context.Background(), domain.SlotReservation{
			ID:        uuid.New(),
			ExpertID:  int64(i + 1),
			StartTime: time.Now().Add(time.Hour),
			ExpiresAt: expiresAt,
		})
		require.NoError(t, err)
	}

	deleted, err := svc.SweepReservations(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	deleted, err = svc.SweepReservations(context.Background())
	require.NoError(t, err)
	require.Zero(t, deleted)
}

func TestJanitorService_SweepBlockedDates(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	blockedDates := &fakeBlockedDateRepo{}
	add := func(date time.Time, timezone string, recurring bool) int64 {
		id, err := blockedDates.Create(context.Background(), 7, date, timezone, recurring)
		require.NoError(t, err)
		return id
	}

	// Сутки 9 июня в Сан-Паулу закончились в 03:00 UTC 10-го — дата истекла.
	elapsedID := add(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), "America/Sao_Paulo", false)
	// Сутки 10 июня в Лос-Анджелесе закончатся только в 07:00 UTC 11-го:
	// SQL-префильтр по дате UTC такую строку отдаёт, но удалять её рано.
	pendingID := add(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "America/Los_Angeles", false)
	// Повторяющиеся даты не истекают никогда.
	recurringID := add(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "UTC", true)

	svc := NewJanitorService(newFakeReservationRepo(), blockedDates, zap.NewNop())
	svc.now = func() time.Time { return now }

	deleted, err := svc.SweepBlockedDates(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	gone, err := blockedDates.GetByID(context.Background(), elapsedID)
	require.NoError(t, err)
	require.Nil(t, gone)

	for _, id := range []int64{pendingID, recurringID} {
		kept, err := blockedDates.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, kept)
	}
}
