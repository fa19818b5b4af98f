package dto

import (
	"time"

	"festivalhub/internal/microservices/http-api/models"
)

// EventRequest for creating or replacing a festival event
type EventRequest struct {
	FestivalID  string    `json:"festival_id" binding:"required,uuid"`
	Title       string    `json:"title" binding:"required,max=200"`
	EventType   string    `json:"event_type" binding:"required,max=64"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required,gtefield=StartsAt"`
	Location    string    `json:"location" binding:"required"`
	Description string    `json:"description" binding:"max=5000"`
}

// EventStatusRequest moves an event between draft, published and cancelled
type EventStatusRequest struct {
	Status models.EventStatus `json:"status" binding:"required"`
}
