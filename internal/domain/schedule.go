package domain

import (
	"time"
)

type Schedule struct {
	ID           int64          `json:"id"`
	ExpertID     int64          `json:"expert_id"`
	Timezone     string         `json:"timezone"`
	Availability []Availability `json:"availability"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Availability — один интервал еженедельной доступности.
// Времена хранятся как "HH:MM" в таймзоне расписания, не в UTC.
type Availability struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"schedule_id"`
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type AvailabilityDTO struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpsertScheduleDTO struct {
	Timezone     string            `json:"timezone" binding:"required"`
	Availability []AvailabilityDTO `json:"availability" binding:"required,dive"`
}

// BlockedDate — заблокированная календарная дата. Дата хранится как plain date
// и истекает в своей собственной таймзоне, а не в UTC.
type BlockedDate struct {
	ID        int64     `json:"id"`
	ExpertID  int64     `json:"expert_id"`
	Date      time.Time `json:"date"`
	Timezone  string    `json:"timezone"`
	Recurring bool      `json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateBlockedDateDTO struct {
	Date      string `json:"date" binding:"required"`
	Timezone  string `json:"timezone" binding:"required"`
	Recurring bool   `json:"recurring"`
}
