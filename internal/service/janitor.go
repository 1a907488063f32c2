package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medbook/internal/repository"
)

// JanitorServiceImpl — периодическая чистка хранилища. На корректность выдачи
// слотов она не влияет: истечение резерваций и заблокированных дат везде
// проверяется на чтении.
type JanitorServiceImpl struct {
	reservations repository.ReservationRepository
	blockedDates repository.BlockedDateRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewJanitorService(
	reservations repository.ReservationRepository,
	blockedDates repository.BlockedDateRepository,
	logger *zap.Logger,
) *JanitorServiceImpl {
	return &JanitorServiceImpl{
		reservations: reservations,
		blockedDates: blockedDates,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *JanitorServiceImpl) SweepReservations(ctx context.Context) (int64, error) {
	deleted, err := s.reservations.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("ошибка чистки истёкших резерваций", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("истёкшие резервации удалены", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

// SweepBlockedDates удаляет даты, полностью прошедшие в их собственной
// таймзоне. SQL отдаёт только грубых кандидатов по дате UTC; окончательное
// сравнение конца суток делается по строкам — единого "сейчас"-порога для
// всех таймзон не существует.
func (s *JanitorServiceImpl) SweepBlockedDates(ctx context.Context) (int64, error) {
	now := s.now()

	candidates, err := s.blockedDates.ListSweepCandidates(ctx, startOfDayUTC(now))
	if err != nil {
		s.logger.Error("ошибка получения кандидатов на чистку", zap.Error(err))
		return 0, err
	}

	var expired []int64
	for _, bd := range candidates {
		loc, err := time.LoadLocation(bd.Timezone)
		if err != nil {
			s.logger.Warn("неизвестная таймзона заблокированной даты",
				zap.Int64("id", bd.ID),
				zap.String("timezone", bd.Timezone),
			)
			loc = time.UTC
		}

		year, month, day := bd.Date.Date()
		endOfDay := time.Date(year, month, day, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		if !now.Before(endOfDay) {
			expired = append(expired, bd.ID)
		}
	}

	deleted, err := s.blockedDates.DeleteByIDs(ctx, expired)
	if err != nil {
		s.logger.Error("ошибка удаления истёкших заблокированных дат", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("истёкшие заблокированные даты удалены", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
