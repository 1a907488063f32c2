package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotReservation — временный холд слота на время оформления брони.
// Для пары (expert_id, start_time) в любой момент существует не более одной
// неистёкшей резервации; это обеспечивается уникальным ограничением в БД
// и условной вставкой, а не проверкой перед записью.
type SlotReservation struct {
	ID               uuid.UUID `json:"id"`
	ExpertID         int64     `json:"expert_id"`
	StartTime        time.Time `json:"start_time"`
	GuestEmail       string    `json:"guest_email"`
	PaymentSessionID *string   `json:"payment_session_id,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// Active — вычисляемый предикат: резервация блокирует слот, только пока не
// истекла. Отсутствие строки после чистки и истёкшая строка эквивалентны.
func (r SlotReservation) Active(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

type CreateReservationDTO struct {
	ExpertID         int64     `json:"expert_id" binding:"required"`
	StartTime        time.Time `json:"start_time" binding:"required"`
	GuestEmail       string    `json:"guest_email" binding:"required"`
	PaymentSessionID *string   `json:"payment_session_id,omitempty"`
}
