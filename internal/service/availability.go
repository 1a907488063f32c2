package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medbook/internal/calendar"
	"medbook/internal/domain"
	"medbook/internal/repository"
)

const minutesPerDay = 24 * 60

// ResolveParams — всё состояние, которое нужно резолверу. Сам резолвер —
// чистая функция без побочных эффектов и обращений к хранилищу.
type ResolveParams struct {
	Now             time.Time
	DurationMinutes int
	Policy          domain.BookingPolicy
	Schedule        *domain.Schedule
	BlockedDates    []domain.BlockedDate
	Busy            []calendar.BusyInterval
	// ReservedStarts — Unix-секунды начала активных (неистёкших) резерваций.
	ReservedStarts map[int64]struct{}
}

type clockRange struct {
	startHour, startMin int
	endHour, endMin     int
}

type blockedEntry struct {
	loc       *time.Location
	year      int
	month     time.Month
	day       int
	recurring bool
}

// ResolveAvailableTimes фильтрует кандидатов, сохраняя порядок. Кандидат
// проходит, только если он не зарезервирован, удовлетворяет минимальному
// уведомлению, не конфликтует с занятостью внешнего календаря, не попадает
// на заблокированную дату и целиком (с буферами) лежит внутри хотя бы одного
// интервала еженедельной доступности.
func ResolveAvailableTimes(candidates []time.Time, p ResolveParams) []time.Time {
	if p.Schedule == nil {
		return []time.Time{}
	}

	loc, err := time.LoadLocation(p.Schedule.Timezone)
	if err != nil {
		// Некорректная таймзона расписания — эксперт не бронируем,
		// пока не исправит настройки.
		return []time.Time{}
	}

	ranges := make(map[int][]clockRange)
	for _, a := range p.Schedule.Availability {
		start, okStart := parseClock(a.StartTime)
		end, okEnd := parseClock(a.EndTime)
		if !okStart || !okEnd {
			continue
		}
		ranges[a.Weekday] = append(ranges[a.Weekday], clockRange{
			startHour: start / 60, startMin: start % 60,
			endHour: end / 60, endMin: end % 60,
		})
	}

	var blocked []blockedEntry
	for _, bd := range p.BlockedDates {
		bdLoc, err := time.LoadLocation(bd.Timezone)
		if err != nil {
			bdLoc = time.UTC
		}
		y, m, d := bd.Date.Date()
		blocked = append(blocked, blockedEntry{
			loc:       bdLoc,
			year:      y,
			month:     m,
			day:       d,
			recurring: bd.Recurring,
		})
	}

	duration := time.Duration(p.DurationMinutes) * time.Minute
	before := time.Duration(p.Policy.BeforeEventBufferMinutes) * time.Minute
	after := time.Duration(p.Policy.AfterEventBufferMinutes) * time.Minute
	earliest := p.Now.Add(time.Duration(p.Policy.MinimumNoticeMinutes) * time.Minute)

	result := make([]time.Time, 0, len(candidates))
	for _, t := range candidates {
		if _, held := p.ReservedStarts[t.Unix()]; held {
			continue
		}
		if !noticeAllows(t, earliest, p.Policy.MinimumNoticeMinutes) {
			continue
		}

		bufferedStart := t.Add(-before)
		bufferedEnd := t.Add(duration + after)

		if conflictsBusy(bufferedStart, bufferedEnd, p.Busy) {
			continue
		}
		if onBlockedDate(t, blocked) {
			continue
		}
		if !withinWeeklyAvailability(bufferedStart, bufferedEnd, t, loc, ranges) {
			continue
		}

		result = append(result, t)
	}

	return result
}

// noticeAllows: при уведомлении меньше суток сравниваются точные моменты.
// При суточном и больше граница огрубляется до календарного дня (по UTC):
// день раньше граничного отклоняется, граничный день проверяется точно,
// дни после граничного проходят всегда. Огрубление сознательное — для
// экспертов с длинным уведомлением слоты не исчезают посреди дня.
func noticeAllows(t, earliest time.Time, noticeMinutes int) bool {
	if noticeMinutes < minutesPerDay {
		return !t.Before(earliest)
	}

	tDay := startOfDayUTC(t)
	boundaryDay := startOfDayUTC(earliest)
	if tDay.Before(boundaryDay) {
		return false
	}
	if tDay.Equal(boundaryDay) && t.Before(earliest) {
		return false
	}
	return true
}

// conflictsBusy: буферный интервал конфликтует с занятым, если его начало
// попадает внутрь занятого, его конец попадает внутрь занятого, либо он
// целиком накрывает занятый.
func conflictsBusy(start, end time.Time, busy []calendar.BusyInterval) bool {
	for _, b := range busy {
		startInside := !start.Before(b.Start) && start.Before(b.End)
		endInside := end.After(b.Start) && !end.After(b.End)
		contains := !start.After(b.Start) && !end.Before(b.End)
		if startInside || endInside || contains {
			return true
		}
	}
	return false
}

// onBlockedDate: дата сравнивается в таймзоне самой заблокированной даты,
// по строке, а не одним общим "сегодня". Для повторяющихся дат год берётся
// из кандидата.
func onBlockedDate(t time.Time, blocked []blockedEntry) bool {
	for _, b := range blocked {
		year := b.year
		if b.recurring {
			year = t.In(b.loc).Year()
		}
		dayStart := time.Date(year, b.month, b.day, 0, 0, 0, 0, b.loc)
		dayEnd := dayStart.AddDate(0, 0, 1)
		if !t.Before(dayStart) && t.Before(dayEnd) {
			return true
		}
	}
	return false
}

// withinWeeklyAvailability: день недели берётся в таймзоне расписания, и
// интервалы конвертируются в конкретные моменты на дату кандидата при каждом
// вызове — из-за DST один и тот же "09:00–17:00" в разные недели даёт разные
// моменты UTC, кэшировать конвертацию между датами нельзя.
func withinWeeklyAvailability(bufferedStart, bufferedEnd, t time.Time, loc *time.Location, ranges map[int][]clockRange) bool {
	local := t.In(loc)
	year, month, day := local.Date()

	for _, r := range ranges[int(local.Weekday())] {
		rangeStart := time.Date(year, month, day, r.startHour, r.startMin, 0, 0, loc)
		rangeEnd := time.Date(year, month, day, r.endHour, r.endMin, 0, 0, loc)
		if !bufferedStart.Before(rangeStart) && !bufferedEnd.After(rangeEnd) {
			return true
		}
	}
	return false
}

func startOfDayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// parseClock разбирает "HH:MM" в минуты от полуночи.
func parseClock(s string) (int, bool) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

type AvailabilityServiceImpl struct {
	schedules    repository.ScheduleRepository
	policies     repository.BookingPolicyRepository
	blockedDates repository.BlockedDateRepository
	eventTypes   repository.EventTypeRepository
	reservations repository.ReservationRepository
	calendar     calendar.Source
	logger       *zap.Logger
	now          func() time.Time
}

func NewAvailabilityService(
	schedules repository.ScheduleRepository,
	policies repository.BookingPolicyRepository,
	blockedDates repository.BlockedDateRepository,
	eventTypes repository.EventTypeRepository,
	reservations repository.ReservationRepository,
	calendarSource calendar.Source,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		schedules:    schedules,
		policies:     policies,
		blockedDates: blockedDates,
		eventTypes:   eventTypes,
		reservations: reservations,
		calendar:     calendarSource,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *AvailabilityServiceImpl) AvailableTimes(ctx context.Context, expertID, eventTypeID int64, from, to time.Time) ([]time.Time, error) {
	now := s.now().UTC()

	eventType, err := s.eventTypes.GetByID(ctx, eventTypeID)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Error(err))
		return nil, err
	}
	if eventType == nil || eventType.ExpertID != expertID || !eventType.Active {
		return nil, domain.ErrEventTypeNotFound
	}

	schedule, err := s.schedules.GetByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Error(err))
		return nil, err
	}
	if schedule == nil {
		// Эксперт ещё не настроил расписание — бронировать нечего.
		return []time.Time{}, nil
	}

	policy, err := s.policies.GetByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения настроек бронирования", zap.Error(err))
		return nil, err
	}
	effective := domain.DefaultBookingPolicy(expertID)
	if policy != nil {
		effective = *policy
	}
	effective, adjusted := effective.Clamped()
	if adjusted {
		s.logger.Warn("настройки бронирования вне допустимых границ, применены скорректированные значения",
			zap.Int64("expert_id", expertID))
	}

	from = from.UTC()
	to = to.UTC()
	if from.Before(now) {
		from = now
	}
	windowEnd := now.AddDate(0, 0, effective.BookingWindowDays)
	if to.After(windowEnd) {
		to = windowEnd
	}
	if !to.After(from) {
		return []time.Time{}, nil
	}

	candidates := candidateTimes(from, to, effective.TimeSlotIntervalMinutes)
	if len(candidates) == 0 {
		return []time.Time{}, nil
	}

	blockedDates, err := s.blockedDates.ListByExpertID(ctx, expertID)
	if err != nil {
		s.logger.Error("ошибка получения заблокированных дат", zap.Error(err))
		return nil, err
	}

	reserved, err := s.reservations.ActiveStartTimes(ctx, expertID, from, to)
	if err != nil {
		s.logger.Error("ошибка получения активных резерваций", zap.Error(err))
		return nil, err
	}
	reservedSet := make(map[int64]struct{}, len(reserved))
	for _, t := range reserved {
		reservedSet[t.Unix()] = struct{}{}
	}

	// Диапазон запроса занятости расширен на буферы и длительность, чтобы
	// поймать события, задевающие края окна.
	pad := time.Duration(eventType.DurationMinutes+effective.BeforeEventBufferMinutes+effective.AfterEventBufferMinutes) * time.Minute
	busy, err := s.calendar.BusyIntervals(ctx, expertID, from.Add(-pad), to.Add(pad))
	if err != nil {
		s.logger.Error("внешний календарь недоступен", zap.Int64("expert_id", expertID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	return ResolveAvailableTimes(candidates, ResolveParams{
		Now:             now,
		DurationMinutes: eventType.DurationMinutes,
		Policy:          effective,
		Schedule:        schedule,
		BlockedDates:    blockedDates,
		Busy:            busy,
		ReservedStarts:  reservedSet,
	}), nil
}

// candidateTimes — сетка стартов с шагом интервала, выровненная по UTC.
func candidateTimes(from, to time.Time, intervalMinutes int) []time.Time {
	step := time.Duration(intervalMinutes) * time.Minute

	first := from.Truncate(step)
	if first.Before(from) {
		first = first.Add(step)
	}

	var times []time.Time
	for t := first; !t.After(to); t = t.Add(step) {
		times = append(times, t)
	}
	return times
}
