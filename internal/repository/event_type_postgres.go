package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type EventTypeRepo struct {
	db *pgxpool.Pool
}

func NewEventTypeRepository(db *pgxpool.Pool) EventTypeRepository {
	return &EventTypeRepo{db: db}
}

func (r *EventTypeRepo) Create(ctx context.Context, expertID int64, dto domain.CreateEventTypeDTO) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_types (expert_id, title, duration_minutes, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, now(), now())
		RETURNING id
	`, expertID, dto.Title, dto.DurationMinutes, dto.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}
	return id, nil
}

func (r *EventTypeRepo) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	var et domain.EventType
	err := r.db.QueryRow(ctx, `
		SELECT id, expert_id, title, duration_minutes, price, active, created_at, updated_at
		FROM event_types
		WHERE id = $1
	`, id).Scan(&et.ID, &et.ExpertID, &et.Title, &et.DurationMinutes, &et.Price, &et.Active, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}
	return &et, nil
}

func (r *EventTypeRepo) Update(ctx context.Context, id int64, dto domain.UpdateEventTypeDTO) error {
	et, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if et == nil {
		return domain.ErrEventTypeNotFound
	}

	if dto.Title != nil {
		et.Title = *dto.Title
	}
	if dto.DurationMinutes != nil {
		et.DurationMinutes = *dto.DurationMinutes
	}
	if dto.Price != nil {
		et.Price = *dto.Price
	}
	if dto.Active != nil {
		et.Active = *dto.Active
	}

	_, err = r.db.Exec(ctx, `
		UPDATE event_types
		SET title = $1, duration_minutes = $2, price = $3, active = $4, updated_at = now()
		WHERE id = $5
	`, et.Title, et.DurationMinutes, et.Price, et.Active, id)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}
	return nil
}

func (r *EventTypeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM event_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	return nil
}

func (r *EventTypeRepo) ListByExpertID(ctx context.Context, expertID int64, activeOnly bool) ([]domain.EventType, error) {
	query := `
		SELECT id, expert_id, title, duration_minutes, price, active, created_at, updated_at
		FROM event_types
		WHERE expert_id = $1
	`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, expertID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", err)
	}
	defer rows.Close()

	var eventTypes []domain.EventType
	for rows.Next() {
		var et domain.EventType
		if err := rows.Scan(&et.ID, &et.ExpertID, &et.Title, &et.DurationMinutes, &et.Price, &et.Active, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования услуги: %w", err)
		}
		eventTypes = append(eventTypes, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}
	return eventTypes, nil
}
