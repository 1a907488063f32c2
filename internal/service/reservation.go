package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

type ReservationServiceImpl struct {
	repo   repository.ReservationRepository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewReservationService(repo repository.ReservationRepository, ttl time.Duration, logger *zap.Logger) *ReservationServiceImpl {
	return &ReservationServiceImpl{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Reserve создаёт холд на точное время слота. Конфликт возвращается как есть —
// повторять с другим временем за гостя нельзя, выбор времени принадлежит ему.
func (s *ReservationServiceImpl) Reserve(ctx context.Context, dto domain.CreateReservationDTO) (*domain.SlotReservation, error) {
	now := s.now().UTC()

	startTime := dto.StartTime.UTC()
	if !startTime.After(now) {
		return nil, errors.New("время слота уже прошло")
	}

	reservation := domain.SlotReservation{
		ID:               uuid.New(),
		ExpertID:         dto.ExpertID,
		StartTime:        startTime,
		GuestEmail:       dto.GuestEmail,
		PaymentSessionID: dto.PaymentSessionID,
		ExpiresAt:        now.Add(s.ttl),
	}

	created, err := s.repo.Reserve(ctx, reservation)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return nil, err
		}
		s.logger.Error("ошибка создания резервации", zap.Error(err))
		return nil, err
	}

	s.logger.Info("слот зарезервирован",
		zap.Int64("expert_id", created.ExpertID),
		zap.Time("start_time", created.StartTime),
		zap.Time("expires_at", created.ExpiresAt),
	)

	return created, nil
}

func (s *ReservationServiceImpl) Release(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Release(ctx, id); err != nil {
		s.logger.Error("ошибка удаления резервации", zap.Error(err))
		return err
	}
	return nil
}

func (s *ReservationServiceImpl) Extend(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error) {
	extended, err := s.repo.Extend(ctx, id, s.ttl)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, err
		}
		s.logger.Error("ошибка продления резервации", zap.Error(err))
		return nil, err
	}
	return extended, nil
}

func (s *ReservationServiceImpl) IsActive(ctx context.Context, expertID int64, startTime time.Time) (bool, error) {
	active, err := s.repo.IsActive(ctx, expertID, startTime.UTC())
	if err != nil {
		s.logger.Error("ошибка проверки резервации", zap.Error(err))
		return false, err
	}
	return active, nil
}
