package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

type BookingPolicyServiceImpl struct {
	repo   repository.BookingPolicyRepository
	logger *zap.Logger
}

func NewBookingPolicyService(repo repository.BookingPolicyRepository, logger *zap.Logger) *BookingPolicyServiceImpl {
	return &BookingPolicyServiceImpl{repo: repo, logger: logger}
}

// Get никогда не возвращает "настроек нет": отсутствие строки — это политика
// по умолчанию, значения вне границ приводятся к допустимым с предупреждением.
func (s *BookingPolicyServiceImpl) Get(ctx context.Context, expertID int64) (domain.BookingPolicy, error) {
	policy, err := s.repo.GetByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения настроек бронирования", zap.Error(err))
		return domain.BookingPolicy{}, fmt.Errorf("ошибка получения настроек бронирования: %w", err)
	}

	effective := domain.DefaultBookingPolicy(expertID)
	if policy != nil {
		effective = *policy
	}

	effective, adjusted := effective.Clamped()
	if adjusted {
		s.logger.Warn("настройки бронирования вне допустимых границ, применены скорректированные значения",
			zap.Int64("expert_id", expertID))
	}

	return effective, nil
}

func (s *BookingPolicyServiceImpl) Update(ctx context.Context, expertID int64, dto domain.UpdateBookingPolicyDTO) (domain.BookingPolicy, error) {
	current, err := s.Get(ctx, expertID)
	if err != nil {
		return domain.BookingPolicy{}, err
	}

	if dto.MinimumNoticeMinutes != nil {
		current.MinimumNoticeMinutes = *dto.MinimumNoticeMinutes
	}
	if dto.BeforeEventBufferMinutes != nil {
		current.BeforeEventBufferMinutes = *dto.BeforeEventBufferMinutes
	}
	if dto.AfterEventBufferMinutes != nil {
		current.AfterEventBufferMinutes = *dto.AfterEventBufferMinutes
	}
	if dto.TimeSlotIntervalMinutes != nil {
		current.TimeSlotIntervalMinutes = *dto.TimeSlotIntervalMinutes
	}
	if dto.BookingWindowDays != nil {
		current.BookingWindowDays = *dto.BookingWindowDays
	}

	clamped, _ := current.Clamped()

	if err := s.repo.Upsert(ctx, clamped); err != nil {
		s.logger.Error("ошибка сохранения настроек бронирования", zap.Error(err))
		return domain.BookingPolicy{}, fmt.Errorf("ошибка сохранения настроек бронирования: %w", err)
	}

	return clamped, nil
}
