package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"

	"medbook/internal/domain"
)

type Repositories struct {
	Schedule      ScheduleRepository
	BlockedDate   BlockedDateRepository
	Policy        BookingPolicyRepository
	EventType     EventTypeRepository
	Reservation   ReservationRepository
	CalendarToken CalendarTokenRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Schedule:      NewScheduleRepository(db),
		BlockedDate:   NewBlockedDateRepository(db),
		Policy:        NewBookingPolicyRepository(db),
		EventType:     NewEventTypeRepository(db),
		Reservation:   NewReservationRepository(db),
		CalendarToken: NewCalendarTokenRepository(db),
	}
}

type ScheduleRepository interface {
	// Upsert заменяет расписание эксперта целиком: таймзону и все интервалы.
	Upsert(ctx context.Context, expertID int64, timezone string, availability []domain.AvailabilityDTO) (*domain.Schedule, error)
	GetByExpertID(ctx context.Context, expertID int64) (*domain.Schedule, error)
}

type BlockedDateRepository interface {
	Create(ctx context.Context, expertID int64, date time.Time, timezone string, recurring bool) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error)
	ListByExpertID(ctx context.Context, expertID int64) ([]domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
	// ListSweepCandidates возвращает неповторяющиеся заблокированные даты,
	// календарная дата которых не позже cutoff (дата по UTC). Окончательную
	// проверку "истекла ли дата в своей таймзоне" делает вызывающий.
	ListSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.BlockedDate, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type BookingPolicyRepository interface {
	GetByExpertID(ctx context.Context, expertID int64) (*domain.BookingPolicy, error)
	Upsert(ctx context.Context, policy domain.BookingPolicy) error
}

type EventTypeRepository interface {
	Create(ctx context.Context, expertID int64, dto domain.CreateEventTypeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	Update(ctx context.Context, id int64, dto domain.UpdateEventTypeDTO) error
	Delete(ctx context.Context, id int64) error
	ListByExpertID(ctx context.Context, expertID int64, activeOnly bool) ([]domain.EventType, error)
}

type ReservationRepository interface {
	// Reserve — единственная точка создания холда: условная вставка против
	// уникального ограничения (expert_id, start_time). Живой холд на тот же
	// слот даёт domain.ErrSlotConflict; истёкший перехватывается атомарно.
	Reserve(ctx context.Context, reservation domain.SlotReservation) (*domain.SlotReservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error)
	Release(ctx context.Context, id uuid.UUID) error
	Extend(ctx context.Context, id uuid.UUID, ttl time.Duration) (*domain.SlotReservation, error)
	IsActive(ctx context.Context, expertID int64, startTime time.Time) (bool, error)
	ActiveStartTimes(ctx context.Context, expertID int64, from, to time.Time) ([]time.Time, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type CalendarTokenRepository interface {
	// GetByExpertID возвращает nil без ошибки, если календарь не подключён.
	GetByExpertID(ctx context.Context, expertID int64) (*oauth2.Token, error)
}
