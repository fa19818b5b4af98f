package models

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCancelled:
		return true
	}
	return false
}

// Event is one scheduled act or activity within a festival.
type Event struct {
	Base
	FestivalID  string      `gorm:"type:uuid;not null;index" json:"festival_id"`
	Title       string      `gorm:"not null" json:"title"`
	EventType   string      `gorm:"type:varchar(64);not null" json:"event_type"`
	StartsAt    time.Time   `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time   `gorm:"not null" json:"ends_at"`
	Location    string      `gorm:"not null" json:"location"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Status      EventStatus `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`

	// Associations
	Festival Festival `json:"-" gorm:"foreignKey:FestivalID;constraint:OnDelete:CASCADE;"`
}

func (Event) TableName() string {
	return "events"
}
