package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/calendar"
	"medbook/internal/domain"
	"medbook/internal/repository"
)

type Deps struct {
	Repos    *repository.Repositories
	Calendar calendar.Source
	Logger   *zap.Logger
	Config   *config.Config
}

type Services struct {
	Availability AvailabilityService
	Reservation  ReservationService
	Schedule     ScheduleService
	Policy       BookingPolicyService
	EventType    EventTypeService
	Janitor      JanitorService
}

func NewServices(deps Deps) *Services {
	return &Services{
		Availability: NewAvailabilityService(
			deps.Repos.Schedule,
			deps.Repos.Policy,
			deps.Repos.BlockedDate,
			deps.Repos.EventType,
			deps.Repos.Reservation,
			deps.Calendar,
			deps.Logger,
		),
		Reservation: NewReservationService(deps.Repos.Reservation, deps.Config.Reservation.TTL, deps.Logger),
		Schedule:    NewScheduleService(deps.Repos.Schedule, deps.Repos.BlockedDate, deps.Logger),
		Policy:      NewBookingPolicyService(deps.Repos.Policy, deps.Logger),
		EventType:   NewEventTypeService(deps.Repos.EventType, deps.Logger),
		Janitor:     NewJanitorService(deps.Repos.Reservation, deps.Repos.BlockedDate, deps.Logger),
	}
}

type AvailabilityService interface {
	AvailableTimes(ctx context.Context, expertID, eventTypeID int64, from, to time.Time) ([]time.Time, error)
}

type ReservationService interface {
	Reserve(ctx context.Context, dto domain.CreateReservationDTO) (*domain.SlotReservation, error)
	Release(ctx context.Context, id uuid.UUID) error
	Extend(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error)
	IsActive(ctx context.Context, expertID int64, startTime time.Time) (bool, error)
}

type ScheduleService interface {
	Upsert(ctx context.Context, expertID int64, dto domain.UpsertScheduleDTO) (*domain.Schedule, error)
	GetByExpertID(ctx context.Context, expertID int64) (*domain.Schedule, error)
	AddBlockedDate(ctx context.Context, expertID int64, dto domain.CreateBlockedDateDTO) (int64, error)
	ListBlockedDates(ctx context.Context, expertID int64) ([]domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, expertID, id int64) error
}

type BookingPolicyService interface {
	Get(ctx context.Context, expertID int64) (domain.BookingPolicy, error)
	Update(ctx context.Context, expertID int64, dto domain.UpdateBookingPolicyDTO) (domain.BookingPolicy, error)
}

type EventTypeService interface {
	Create(ctx context.Context, expertID int64, dto domain.CreateEventTypeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	Update(ctx context.Context, expertID, id int64, dto domain.UpdateEventTypeDTO) error
	Delete(ctx context.Context, expertID, id int64) error
	ListByExpertID(ctx context.Context, expertID int64, activeOnly bool) ([]domain.EventType, error)
}

type JanitorService interface {
	SweepReservations(ctx context.Context) (int64, error)
	SweepBlockedDates(ctx context.Context) (int64, error)
}
