package domain

import (
	"time"
)

// EventType — бронируемая услуга эксперта.
type EventType struct {
	ID              int64     `json:"id"`
	ExpertID        int64     `json:"expert_id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateEventTypeDTO struct {
	Title           string  `json:"title" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=5,max=480"`
	Price           float64 `json:"price" binding:"min=0"`
}

type UpdateEventTypeDTO struct {
	Title           *string  `json:"title,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" binding:"omitempty,min=5,max=480"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Active          *bool    `json:"active,omitempty"`
}
