package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Upsert(ctx context.Context, expertID int64, timezone string, availability []domain.AvailabilityDTO) (*domain.Schedule, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var scheduleID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO schedules (expert_id, timezone, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (expert_id) DO UPDATE
		SET timezone = EXCLUDED.timezone, updated_at = now()
		RETURNING id
	`, expertID, timezone).Scan(&scheduleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения расписания: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM availability WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка очистки интервалов доступности: %w", err)
	}

	for _, a := range availability {
		_, err = tx.Exec(ctx, `
			INSERT INTO availability (schedule_id, weekday, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`, scheduleID, a.Weekday, a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("ошибка сохранения интервала доступности: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return r.GetByExpertID(ctx, expertID)
}

func (r *ScheduleRepo) GetByExpertID(ctx context.Context, expertID int64) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := r.db.QueryRow(ctx, `
		SELECT id, expert_id, timezone, created_at, updated_at
		FROM schedules
		WHERE expert_id = $1
	`, expertID).Scan(
		&schedule.ID,
		&schedule.ExpertID,
		&schedule.Timezone,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, schedule_id, weekday, start_time, end_time
		FROM availability
		WHERE schedule_id = $1
		ORDER BY weekday, start_time
	`, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения интервалов доступности: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.Weekday, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("ошибка сканирования интервала доступности: %w", err)
		}
		schedule.Availability = append(schedule.Availability, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return &schedule, nil
}
