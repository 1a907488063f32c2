package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type BlockedDateRepo struct {
	db *pgxpool.Pool
}

func NewBlockedDateRepository(db *pgxpool.Pool) BlockedDateRepository {
	return &BlockedDateRepo{db: db}
}

func (r *BlockedDateRepo) Create(ctx context.Context, expertID int64, date time.Time, timezone string, recurring bool) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO blocked_dates (expert_id, date, timezone, recurring, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id
	`, expertID, date, timezone, recurring).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заблокированной даты: %w", err)
	}
	return id, nil
}

func (r *BlockedDateRepo) GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error) {
	var bd domain.BlockedDate
	err := r.db.QueryRow(ctx, `
		SELECT id, expert_id, date, timezone, recurring, created_at
		FROM blocked_dates
		WHERE id = $1
	`, id).Scan(&bd.ID, &bd.ExpertID, &bd.Date, &bd.Timezone, &bd.Recurring, &bd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения заблокированной даты: %w", err)
	}
	return &bd, nil
}

func (r *BlockedDateRepo) ListByExpertID(ctx context.Context, expertID int64) ([]domain.BlockedDate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, expert_id, date, timezone, recurring, created_at
		FROM blocked_dates
		WHERE expert_id = $1
		ORDER BY date
	`, expertID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заблокированных дат: %w", err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

func (r *BlockedDateRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM blocked_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заблокированной даты: %w", err)
	}
	return nil
}

func (r *BlockedDateRepo) ListSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.BlockedDate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, expert_id, date, timezone, recurring, created_at
		FROM blocked_dates
		WHERE NOT recurring AND date <= $1
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения кандидатов на чистку: %w", err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

func (r *BlockedDateRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM blocked_dates WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления заблокированных дат: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanBlockedDates(rows pgx.Rows) ([]domain.BlockedDate, error) {
	var dates []domain.BlockedDate
	for rows.Next() {
		var bd domain.BlockedDate
		if err := rows.Scan(&bd.ID, &bd.ExpertID, &bd.Date, &bd.Timezone, &bd.Recurring, &bd.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заблокированной даты: %w", err)
		}
		dates = append(dates, bd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}
	return dates, nil
}
