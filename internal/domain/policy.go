package domain

import (
	"time"
)

const (
	MinNoticeMinutes = 60
	MaxNoticeMinutes = 20160

	MinBookingWindowDays = 7
	MaxBookingWindowDays = 365

	DefaultNoticeMinutes       = 1440
	DefaultBufferMinutes       = 15
	DefaultSlotIntervalMinutes = 30
	DefaultBookingWindowDays   = 60
)

// BookingPolicy — настройки бронирования эксперта. Отсутствие строки в БД
// эквивалентно политике по умолчанию: резолвер никогда не падает из-за неё.
type BookingPolicy struct {
	ExpertID                 int64     `json:"expert_id"`
	MinimumNoticeMinutes     int       `json:"minimum_notice_minutes"`
	BeforeEventBufferMinutes int       `json:"before_event_buffer_minutes"`
	AfterEventBufferMinutes  int       `json:"after_event_buffer_minutes"`
	TimeSlotIntervalMinutes  int       `json:"time_slot_interval_minutes"`
	BookingWindowDays        int       `json:"booking_window_days"`
	UpdatedAt                time.Time `json:"updated_at"`
}

type UpdateBookingPolicyDTO struct {
	MinimumNoticeMinutes     *int `json:"minimum_notice_minutes"`
	BeforeEventBufferMinutes *int `json:"before_event_buffer_minutes"`
	AfterEventBufferMinutes  *int `json:"after_event_buffer_minutes"`
	TimeSlotIntervalMinutes  *int `json:"time_slot_interval_minutes"`
	BookingWindowDays        *int `json:"booking_window_days"`
}

func DefaultBookingPolicy(expertID int64) BookingPolicy {
	return BookingPolicy{
		ExpertID:                 expertID,
		MinimumNoticeMinutes:     DefaultNoticeMinutes,
		BeforeEventBufferMinutes: DefaultBufferMinutes,
		AfterEventBufferMinutes:  DefaultBufferMinutes,
		TimeSlotIntervalMinutes:  DefaultSlotIntervalMinutes,
		BookingWindowDays:        DefaultBookingWindowDays,
	}
}

// Clamped возвращает политику, приведённую к допустимым границам,
// и признак того, что хотя бы одно поле пришлось скорректировать.
func (p BookingPolicy) Clamped() (BookingPolicy, bool) {
	adjusted := false

	if p.MinimumNoticeMinutes < MinNoticeMinutes {
		p.MinimumNoticeMinutes = MinNoticeMinutes
		adjusted = true
	} else if p.MinimumNoticeMinutes > MaxNoticeMinutes {
		p.MinimumNoticeMinutes = MaxNoticeMinutes
		adjusted = true
	}

	if p.BeforeEventBufferMinutes < 0 {
		p.BeforeEventBufferMinutes = 0
		adjusted = true
	}
	if p.AfterEventBufferMinutes < 0 {
		p.AfterEventBufferMinutes = 0
		adjusted = true
	}

	if p.TimeSlotIntervalMinutes < 5 {
		p.TimeSlotIntervalMinutes = DefaultSlotIntervalMinutes
		adjusted = true
	} else if p.TimeSlotIntervalMinutes%5 != 0 {
		p.TimeSlotIntervalMinutes -= p.TimeSlotIntervalMinutes % 5
		adjusted = true
	}

	if p.BookingWindowDays < MinBookingWindowDays {
		p.BookingWindowDays = MinBookingWindowDays
		adjusted = true
	} else if p.BookingWindowDays > MaxBookingWindowDays {
		p.BookingWindowDays = MaxBookingWindowDays
		adjusted = true
	}

	return p, adjusted
}
