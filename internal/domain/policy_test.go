package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBookingPolicyClamped(t *testing.T) {
	cases := []struct {
		name     string
		in       BookingPolicy
		want     BookingPolicy
		adjusted bool
	}{
		{
			name:     "значения в границах не меняются",
			in:       DefaultBookingPolicy(1),
			want:     DefaultBookingPolicy(1),
			adjusted: false,
		},
		{
			name: "уведомление ниже минимума",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 5,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: MinNoticeMinutes,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			adjusted: true,
		},
		{
			name: "уведомление выше максимума",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 100000,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: MaxNoticeMinutes,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			adjusted: true,
		},
		{
			name: "интервал не кратен пяти округляется вниз",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 17, BookingWindowDays: 60,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 15, BookingWindowDays: 60,
			},
			adjusted: true,
		},
		{
			name: "слишком мелкий интервал заменяется значением по умолчанию",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 2, BookingWindowDays: 60,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: DefaultSlotIntervalMinutes, BookingWindowDays: 60,
			},
			adjusted: true,
		},
		{
			name: "отрицательные буферы обнуляются",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				BeforeEventBufferMinutes: -10, AfterEventBufferMinutes: -1,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 60,
			},
			adjusted: true,
		},
		{
			name: "окно бронирования приводится к границам",
			in: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: 3,
			},
			want: BookingPolicy{
				ExpertID: 1, MinimumNoticeMinutes: 1440,
				TimeSlotIntervalMinutes: 30, BookingWindowDays: MinBookingWindowDays,
			},
			adjusted: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, adjusted := tc.in.Clamped()
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.adjusted, adjusted)
		})
	}
}
