package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

type EventTypeServiceImpl struct {
	repo   repository.EventTypeRepository
	logger *zap.Logger
}

func NewEventTypeService(repo repository.EventTypeRepository, logger *zap.Logger) *EventTypeServiceImpl {
	return &EventTypeServiceImpl{repo: repo, logger: logger}
}

func (s *EventTypeServiceImpl) Create(ctx context.Context, expertID int64, dto domain.CreateEventTypeDTO) (int64, error) {
	id, err := s.repo.Create(ctx, expertID, dto)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.Error(err))
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}
	return id, nil
}

func (s *EventTypeServiceImpl) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	eventType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}
	return eventType, nil
}

func (s *EventTypeServiceImpl) Update(ctx context.Context, expertID, id int64, dto domain.UpdateEventTypeDTO) error {
	eventType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения услуги: %w", err)
	}
	if eventType == nil || eventType.ExpertID != expertID {
		return domain.ErrEventTypeNotFound
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Error(err))
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}
	return nil
}

func (s *EventTypeServiceImpl) Delete(ctx context.Context, expertID, id int64) error {
	eventType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения услуги: %w", err)
	}
	if eventType == nil || eventType.ExpertID != expertID {
		return domain.ErrEventTypeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления услуги", zap.Error(err))
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	return nil
}

func (s *EventTypeServiceImpl) ListByExpertID(ctx context.Context, expertID int64, activeOnly bool) ([]domain.EventType, error) {
	eventTypes, err := s.repo.ListByExpertID(ctx, expertID, activeOnly)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", err)
	}
	return eventTypes, nil
}
