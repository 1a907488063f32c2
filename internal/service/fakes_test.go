package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"medbook/internal/calendar"
	"medbook/internal/domain"
)

type fakeScheduleRepo struct {
	schedule *domain.Schedule
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, expertID int64, timezone string, availability []domain.AvailabilityDTO) (*domain.Schedule, error) {
	schedule := &domain.Schedule{ID: 1, ExpertID: expertID, Timezone: timezone}
	for i, a := range availability {
		schedule.Availability = append(schedule.Availability, domain.Availability{
			ID:         int64(i + 1),
			ScheduleID: 1,
			Weekday:    a.Weekday,
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
		})
	}
	f.schedule = schedule
	return schedule, nil
}

func (f *fakeScheduleRepo) GetByExpertID(ctx context.Context, expertID int64) (*domain.Schedule, error) {
	if f.schedule == nil || f.schedule.ExpertID != expertID {
		return nil, nil
	}
	return f.schedule, nil
}

type fakeBlockedDateRepo struct {
	mu     sync.Mutex
	nextID int64
	dates  []domain.BlockedDate
}

func (f *fakeBlockedDateRepo) Create(ctx context.Context, expertID int64, date time.Time, timezone string, recurring bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.dates = append(f.dates, domain.BlockedDate{
		ID:        f.nextID,
		ExpertID:  expertID,
		Date:      date,
		Timezone:  timezone,
		Recurring: recurring,
	})
	return f.nextID, nil
}

func (f *fakeBlockedDateRepo) GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bd := range f.dates {
		if bd.ID == id {
			copied := bd
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBlockedDateRepo) ListByExpertID(ctx context.Context, expertID int64) ([]domain.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BlockedDate
	for _, bd := range f.dates {
		if bd.ExpertID == expertID {
			out = append(out, bd)
		}
	}
	return out, nil
}

func (f *fakeBlockedDateRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, bd := range f.dates {
		if bd.ID == id {
			f.dates = append(f.dates[:i], f.dates[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBlockedDateRepo) ListSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BlockedDate
	for _, bd := range f.dates {
		if !bd.Recurring && !bd.Date.After(cutoff) {
			out = append(out, bd)
		}
	}
	return out, nil
}

func (f *fakeBlockedDateRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		for i, bd := range f.dates {
			if bd.ID == id {
				f.dates = append(f.dates[:i], f.dates[i+1:]...)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicyRepo) GetByExpertID(ctx context.Context, expertID int64) (*domain.BookingPolicy, error) {
	if f.policy == nil || f.policy.ExpertID != expertID {
		return nil, nil
	}
	copied := *f.policy
	return &copied, nil
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, policy domain.BookingPolicy) error {
	f.policy = &policy
	return nil
}

type fakeEventTypeRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.EventType
}

func newFakeEventTypeRepo() *fakeEventTypeRepo {
	return &fakeEventTypeRepo{items: make(map[int64]domain.EventType)}
}

func (f *fakeEventTypeRepo) Create(ctx context.Context, expertID int64, dto domain.CreateEventTypeDTO) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.items[f.nextID] = domain.EventType{
		ID:              f.nextID,
		ExpertID:        expertID,
		Title:           dto.Title,
		DurationMinutes: dto.DurationMinutes,
		Price:           dto.Price,
		Active:          true,
	}
	return f.nextID, nil
}

func (f *fakeEventTypeRepo) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (f *fakeEventTypeRepo) Update(ctx context.Context, id int64, dto domain.UpdateEventTypeDTO) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return domain.ErrEventTypeNotFound
	}
	if dto.Title != nil {
		item.Title = *dto.Title
	}
	if dto.DurationMinutes != nil {
		item.DurationMinutes = *dto.DurationMinutes
	}
	if dto.Price != nil {
		item.Price = *dto.Price
	}
	if dto.Active != nil {
		item.Active = *dto.Active
	}
	f.items[id] = item
	return nil
}

func (f *fakeEventTypeRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeEventTypeRepo) ListByExpertID(ctx context.Context, expertID int64, activeOnly bool) ([]domain.EventType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventType
	for _, item := range f.items {
		if item.ExpertID != expertID {
			continue
		}
		if activeOnly && !item.Active {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// fakeReservationRepo повторяет семантику условной вставки: живой холд на пару
// (expert_id, start_time) блокирует новую резервацию, истёкший перехватывается.
type fakeReservationRepo struct {
	mu   sync.Mutex
	rows map[string]domain.SlotReservation
	byID map[uuid.UUID]domain.SlotReservation
	now  func() time.Time
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		rows: make(map[string]domain.SlotReservation),
		byID: make(map[uuid.UUID]domain.SlotReservation),
		now:  time.Now,
	}
}

func slotKey(expertID int64, startTime time.Time) string {
	return fmt.Sprintf("%d|%d", expertID, startTime.Unix())
}

func (f *fakeReservationRepo) Reserve(ctx context.Context, reservation domain.SlotReservation) (*domain.SlotReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := slotKey(reservation.ExpertID, reservation.StartTime)
	if existing, ok := f.rows[key]; ok {
		if existing.Active(f.now()) {
			return nil, domain.ErrSlotConflict
		}
		delete(f.byID, existing.ID)
	}

	reservation.CreatedAt = f.now()
	f.rows[key] = reservation
	f.byID[reservation.ID] = reservation
	return &reservation, nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeReservationRepo) Release(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.byID[id]
	if !ok {
		return nil
	}
	delete(f.byID, id)
	delete(f.rows, slotKey(row.ExpertID, row.StartTime))
	return nil
}

func (f *fakeReservationRepo) Extend(ctx context.Context, id uuid.UUID, ttl time.Duration) (*domain.SlotReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.byID[id]
	if !ok || !row.Active(f.now()) {
		return nil, domain.ErrReservationNotFound
	}
	row.ExpiresAt = f.now().Add(ttl)
	f.byID[id] = row
	f.rows[slotKey(row.ExpertID, row.StartTime)] = row
	return &row, nil
}

func (f *fakeReservationRepo) IsActive(ctx context.Context, expertID int64, startTime time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[slotKey(expertID, startTime)]
	return ok && row.Active(f.now()), nil
}

func (f *fakeReservationRepo) ActiveStartTimes(ctx context.Context, expertID int64, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for _, row := range f.rows {
		if row.ExpertID != expertID || !row.Active(f.now()) {
			continue
		}
		if row.StartTime.Before(from) || row.StartTime.After(to) {
			continue
		}
		out = append(out, row.StartTime)
	}
	return out, nil
}

func (f *fakeReservationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for key, row := range f.rows {
		if !row.Active(f.now()) {
			delete(f.rows, key)
			delete(f.byID, row.ID)
			deleted++
		}
	}
	return deleted, nil
}

type fakeCalendarSource struct {
	busy []calendar.BusyInterval
	err  error
}

func (f *fakeCalendarSource) BusyIntervals(ctx context.Context, expertID int64, from, to time.Time) ([]calendar.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.busy, nil
}
