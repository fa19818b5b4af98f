package models

import "time"

type Festival struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Location    string    `gorm:"not null" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time `gorm:"not null" json:"ends_at"`
}

func (Festival) TableName() string {
	return "festivals"
}

type FestivalReview struct {
	Base
	FestivalID string    `gorm:"type:uuid;not null;index" json:"festival_id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	Sentiment  Sentiment `gorm:"type:varchar(16);not null;index" json:"sentiment"`

	// Associations
	Festival Festival `json:"-" gorm:"foreignKey:FestivalID;constraint:OnDelete:CASCADE;"`
}

func (FestivalReview) TableName() string {
	return "festival_reviews"
}
