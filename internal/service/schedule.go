package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/pkg/validator"
)

type ScheduleServiceImpl struct {
	repo         repository.ScheduleRepository
	blockedDates repository.BlockedDateRepository
	logger       *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	blockedDates repository.BlockedDateRepository,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:         repo,
		blockedDates: blockedDates,
		logger:       logger,
	}
}

func (s *ScheduleServiceImpl) Upsert(ctx context.Context, expertID int64, dto domain.UpsertScheduleDTO) (*domain.Schedule, error) {
	if !validator.ValidateTimezone(dto.Timezone) {
		return nil, errors.New("неизвестная таймзона")
	}

	for _, a := range dto.Availability {
		if !validator.ValidateWeekday(a.Weekday) {
			return nil, errors.New("день недели должен быть от 0 до 6")
		}
		if !validator.ValidateClock(a.StartTime) {
			return nil, errors.New("неверный формат времени начала, ожидается HH:MM")
		}
		if !validator.ValidateClock(a.EndTime) {
			return nil, errors.New("неверный формат времени окончания, ожидается HH:MM")
		}

		start, _ := time.Parse("15:04", a.StartTime)
		end, _ := time.Parse("15:04", a.EndTime)
		if !end.After(start) {
			return nil, errors.New("время окончания должно быть позже времени начала")
		}
	}

	schedule, err := s.repo.Upsert(ctx, expertID, dto.Timezone, dto.Availability)
	if err != nil {
		s.logger.Error("ошибка сохранения расписания", zap.Error(err))
		return nil, fmt.Errorf("ошибка сохранения расписания: %w", err)
	}

	return schedule, nil
}

func (s *ScheduleServiceImpl) GetByExpertID(ctx context.Context, expertID int64) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) AddBlockedDate(ctx context.Context, expertID int64, dto domain.CreateBlockedDateDTO) (int64, error) {
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return 0, errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	}

	if !validator.ValidateTimezone(dto.Timezone) {
		return 0, errors.New("неизвестная таймзона")
	}

	id, err := s.blockedDates.Create(ctx, expertID, date, dto.Timezone, dto.Recurring)
	if err != nil {
		s.logger.Error("ошибка создания заблокированной даты", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания заблокированной даты: %w", err)
	}

	return id, nil
}

func (s *ScheduleServiceImpl) ListBlockedDates(ctx context.Context, expertID int64) ([]domain.BlockedDate, error) {
	dates, err := s.blockedDates.ListByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения заблокированных дат", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения заблокированных дат: %w", err)
	}
	return dates, nil
}

func (s *ScheduleServiceImpl) DeleteBlockedDate(ctx context.Context, expertID, id int64) error {
	bd, err := s.blockedDates.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения заблокированной даты", zap.Error(err))
		return fmt.Errorf("ошибка получения заблокированной даты: %w", err)
	}
	if bd == nil || bd.ExpertID != expertID {
		return domain.ErrBlockedDateNotFound
	}

	if err := s.blockedDates.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления заблокированной даты", zap.Error(err))
		return fmt.Errorf("ошибка удаления заблокированной даты: %w", err)
	}
	return nil
}
