package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type BookingPolicyRepo struct {
	db *pgxpool.Pool
}

func NewBookingPolicyRepository(db *pgxpool.Pool) BookingPolicyRepository {
	return &BookingPolicyRepo{db: db}
}

func (r *BookingPolicyRepo) GetByExpertID(ctx context.Context, expertID int64) (*domain.BookingPolicy, error) {
	var p domain.BookingPolicy
	err := r.db.QueryRow(ctx, `
		SELECT expert_id, minimum_notice_minutes, before_event_buffer_minutes,
		       after_event_buffer_minutes, time_slot_interval_minutes, booking_window_days, updated_at
		FROM booking_policies
		WHERE expert_id = $1
	`, expertID).Scan(
		&p.ExpertID,
		&p.MinimumNoticeMinutes,
		&p.BeforeEventBufferMinutes,
		&p.AfterEventBufferMinutes,
		&p.TimeSlotIntervalMinutes,
		&p.BookingWindowDays,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения настроек бронирования: %w", err)
	}
	return &p, nil
}

func (r *BookingPolicyRepo) Upsert(ctx context.Context, policy domain.BookingPolicy) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO booking_policies (
			expert_id, minimum_notice_minutes, before_event_buffer_minutes,
			after_event_buffer_minutes, time_slot_interval_minutes, booking_window_days, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (expert_id) DO UPDATE
		SET minimum_notice_minutes = EXCLUDED.minimum_notice_minutes,
		    before_event_buffer_minutes = EXCLUDED.before_event_buffer_minutes,
		    after_event_buffer_minutes = EXCLUDED.after_event_buffer_minutes,
		    time_slot_interval_minutes = EXCLUDED.time_slot_interval_minutes,
		    booking_window_days = EXCLUDED.booking_window_days,
		    updated_at = now()
	`,
		policy.ExpertID,
		policy.MinimumNoticeMinutes,
		policy.BeforeEventBufferMinutes,
		policy.AfterEventBufferMinutes,
		policy.TimeSlotIntervalMinutes,
		policy.BookingWindowDays,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения настроек бронирования: %w", err)
	}
	return nil
}
