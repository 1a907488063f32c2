package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

const pgUniqueViolation = "23505"

type ReservationRepo struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &ReservationRepo{db: db}
}

// Reserve выполняет условную вставку одним запросом: если на слот есть живой
// холд, условие в DO UPDATE не выполняется, строк не возвращается и вызов
// завершается ErrSlotConflict; истёкший холд перехватывается той же вставкой.
// Проверка "занято ли" перед записью здесь намеренно отсутствует — она
// неатомарна при конкурентных оформлениях.
func (r *ReservationRepo) Reserve(ctx context.Context, reservation domain.SlotReservation) (*domain.SlotReservation, error) {
	var res domain.SlotReservation
	err := r.db.QueryRow(ctx, `
		INSERT INTO slot_reservations (
			id, expert_id, start_time, guest_email, payment_session_id, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT ON CONSTRAINT uq_slot_reservations_expert_start DO UPDATE
		SET id = EXCLUDED.id,
		    guest_email = EXCLUDED.guest_email,
		    payment_session_id = EXCLUDED.payment_session_id,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()
		WHERE slot_reservations.expires_at <= now()
		RETURNING id, expert_id, start_time, guest_email, payment_session_id, expires_at, created_at
	`,
		reservation.ID,
		reservation.ExpertID,
		reservation.StartTime,
		reservation.GuestEmail,
		reservation.PaymentSessionID,
		reservation.ExpiresAt,
	).Scan(
		&res.ID,
		&res.ExpertID,
		&res.StartTime,
		&res.GuestEmail,
		&res.PaymentSessionID,
		&res.ExpiresAt,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrSlotConflict
		}
		return nil, fmt.Errorf("ошибка создания резервации: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error) {
	var res domain.SlotReservation
	err := r.db.QueryRow(ctx, `
		SELECT id, expert_id, start_time, guest_email, payment_session_id, expires_at, created_at
		FROM slot_reservations
		WHERE id = $1
	`, id).Scan(
		&res.ID,
		&res.ExpertID,
		&res.StartTime,
		&res.GuestEmail,
		&res.PaymentSessionID,
		&res.ExpiresAt,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения резервации: %w", err)
	}
	return &res, nil
}

// Release идемпотентен: повторное или конкурентное удаление не ошибка.
func (r *ReservationRepo) Release(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM slot_reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления резервации: %w", err)
	}
	return nil
}

func (r *ReservationRepo) Extend(ctx context.Context, id uuid.UUID, ttl time.Duration) (*domain.SlotReservation, error) {
	var res domain.SlotReservation
	err := r.db.QueryRow(ctx, `
		UPDATE slot_reservations
		SET expires_at = now() + make_interval(secs => $2)
		WHERE id = $1 AND expires_at > now()
		RETURNING id, expert_id, start_time, guest_email, payment_session_id, expires_at, created_at
	`, id, ttl.Seconds()).Scan(
		&res.ID,
		&res.ExpertID,
		&res.StartTime,
		&res.GuestEmail,
		&res.PaymentSessionID,
		&res.ExpiresAt,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("ошибка продления резервации: %w", err)
	}
	return &res, nil
}

// IsActive учитывает истечение прямо в запросе: строка с expires_at в прошлом
// не блокирует слот, даже если чистка её ещё не удалила.
func (r *ReservationRepo) IsActive(ctx context.Context, expertID int64, startTime time.Time) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM slot_reservations
			WHERE expert_id = $1 AND start_time = $2 AND expires_at > now()
		)
	`, expertID, startTime).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки резервации: %w", err)
	}
	return active, nil
}

func (r *ReservationRepo) ActiveStartTimes(ctx context.Context, expertID int64, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time
		FROM slot_reservations
		WHERE expert_id = $1 AND start_time >= $2 AND start_time <= $3 AND expires_at > now()
	`, expertID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных резерваций: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("ошибка сканирования резервации: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}
	return times, nil
}

func (r *ReservationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM slot_reservations WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления истёкших резерваций: %w", err)
	}
	return tag.RowsAffected(), nil
}
