package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func TestScheduleService_UpsertValidation(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{}, &fakeBlockedDateRepo{}, zap.NewNop())

	cases := []struct {
		name string
		dto  domain.UpsertScheduleDTO
	}{
		{
			"неизвестная таймзона",
			domain.UpsertScheduleDTO{Timezone: "Europe/Atlantis"},
		},
		{
			"сокращение вместо имени IANA",
			domain.UpsertScheduleDTO{Timezone: "MSK"},
		},
		{
			"день недели вне диапазона",
			domain.UpsertScheduleDTO{
				Timezone:     "UTC",
				Availability: []domain.AvailabilityDTO{{Weekday: 7, StartTime: "09:00", EndTime: "17:00"}},
			},
		},
		{
			"неверный формат времени",
			domain.UpsertScheduleDTO{
				Timezone:     "UTC",
				Availability: []domain.AvailabilityDTO{{Weekday: 1, StartTime: "9am", EndTime: "17:00"}},
			},
		},
		{
			"конец раньше начала",
			domain.UpsertScheduleDTO{
				Timezone:     "UTC",
				Availability: []domain.AvailabilityDTO{{Weekday: 1, StartTime: "17:00", EndTime: "09:00"}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), 7, tc.dto)
			require.Error(t, err)
		})
	}
}

func TestScheduleService_UpsertReplaces(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo, &fakeBlockedDateRepo{}, zap.NewNop())

	schedule, err := svc.Upsert(context.Background(), 7, domain.UpsertScheduleDTO{
		Timezone: "Europe/Moscow",
		Availability: []domain.AvailabilityDTO{
			{Weekday: 1, StartTime: "09:00", EndTime: "13:00"},
			{Weekday: 1, StartTime: "14:00", EndTime: "18:00"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Europe/Moscow", schedule.Timezone)
	require.Len(t, schedule.Availability, 2)

	schedule, err = svc.Upsert(context.Background(), 7, domain.UpsertScheduleDTO{
		Timezone: "UTC",
		Availability: []domain.AvailabilityDTO{
			{Weekday: 3, StartTime: "10:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "UTC", schedule.Timezone)
	require.Len(t, schedule.Availability, 1)
}

func TestScheduleService_BlockedDateOwnership(t *testing.T) {
	blockedDates := &fakeBlockedDateRepo{}
	svc := NewScheduleService(&fakeScheduleRepo{}, blockedDates, zap.NewNop())

	id, err := svc.AddBlockedDate(context.Background(), 7, domain.CreateBlockedDateDTO{
		Date:     "2025-07-01",
		Timezone: "Europe/Moscow",
	})
	require.NoError(t, err)

	// Чужую дату удалить нельзя, и факт её существования не раскрывается.
	err = svc.DeleteBlockedDate(context.Background(), 8, id)
	require.ErrorIs(t, err, domain.ErrBlockedDateNotFound)

	require.NoError(t, svc.DeleteBlockedDate(context.Background(), 7, id))

	err = svc.DeleteBlockedDate(context.Background(), 7, id)
	require.ErrorIs(t, err, domain.ErrBlockedDateNotFound)
}

func TestScheduleService_AddBlockedDateValidation(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{}, &fakeBlockedDateRepo{}, zap.NewNop())

	_, err := svc.AddBlockedDate(context.Background(), 7, domain.CreateBlockedDateDTO{
		Date:     "01.07.2025",
		Timezone: "UTC",
	})
	require.Error(t, err)

	_, err = svc.AddBlockedDate(context.Background(), 7, domain.CreateBlockedDateDTO{
		Date:     "2025-07-01",
		Timezone: "Mars/Olympus",
	})
	require.Error(t, err)
}
