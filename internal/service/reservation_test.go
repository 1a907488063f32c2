package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func TestReservationService_NoDoubleReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := NewReservationService(repo, 10*time.Minute, zap.NewNop())

	startTime := time.Now().Add(time.Hour).Truncate(time.Minute)
	dto := domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  startTime,
		GuestEmail: "guest@example.com",
	}

	const workers = 32

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), dto)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, conflicted)
}

func TestReservationService_ExpiredHoldTakenOver(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := NewReservationService(repo, 10*time.Minute, zap.NewNop())

	startTime := time.Now().Add(time.Hour).Truncate(time.Minute)

	staleID := uuid.New()
	_, err := repo.Reserve(context.Background(), domain.SlotReservation{
		ID:        staleID,
		ExpertID:  7,
		StartTime: startTime.UTC(),
		ExpiresAt: time.Now().Add(-time.Second),
	})
	require.NoError(t, err)

	// Истёкший холд не ждёт чистки: новый гость забирает слот сразу.
	reservation, err := svc.Reserve(context.Background(), domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  startTime,
		GuestEmail: "guest@example.com",
	})
	require.NoError(t, err)
	require.NotEqual(t, staleID, reservation.ID)
	require.True(t, reservation.ExpiresAt.After(time.Now()))

	stale, err := repo.GetByID(context.Background(), staleID)
	require.NoError(t, err)
	require.Nil(t, stale)
}

func TestReservationService_RejectsPastStart(t *testing.T) {
	svc := NewReservationService(newFakeReservationRepo(), 10*time.Minute, zap.NewNop())

	_, err := svc.Reserve(context.Background(), domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  time.Now().Add(-time.Minute),
		GuestEmail: "guest@example.com",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrSlotConflict)
}

func TestReservationService_Extend(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := NewReservationService(repo, 10*time.Minute, zap.NewNop())

	reservation, err := svc.Reserve(context.Background(), domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  time.Now().Add(time.Hour),
		GuestEmail: "guest@example.com",
	})
	require.NoError(t, err)

	extended, err := svc.Extend(context.Background(), reservation.ID)
	require.NoError(t, err)
	require.True(t, extended.ExpiresAt.After(reservation.ExpiresAt) || extended.ExpiresAt.Equal(reservation.ExpiresAt))

	expiredID := uuid.New()
	_, err = repo.Reserve(context.Background(), domain.SlotReservation{
		ID:        expiredID,
		ExpertID:  8,
		StartTime: time.Now().Add(time.Hour),
		ExpiresAt: time.Now().Add(-time.Second),
	})
	require.NoError(t, err)

	// Продление истёкшей резервации невозможно: слот мог уже уйти другому.
	_, err = svc.Extend(context.Background(), expiredID)
	require.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestReservationService_ReleaseIdempotent(t *testing.T) {
	repo := newFakeReservationRepo()
	svc := NewReservationService(repo, 10*time.Minute, zap.NewNop())

	startTime := time.Now().Add(time.Hour).Truncate(time.Minute)
	reservation, err := svc.Reserve(context.Background(), domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  startTime,
		GuestEmail: "guest@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), reservation.ID))
	require.NoError(t, svc.Release(context.Background(), reservation.ID))

	// После снятия холда слот снова свободен.
	_, err = svc.Reserve(context.Background(), domain.CreateReservationDTO{
		ExpertID:   7,
		StartTime:  startTime,
		GuestEmail: "other@example.com",
	})
	require.NoError(t, err)
}
