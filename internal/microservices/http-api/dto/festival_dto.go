package dto

import "time"

// FestivalRequest for creating or replacing a festival
type FestivalRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Location    string    `json:"location" binding:"required"`
	Description string    `json:"description" binding:"max=5000"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required,gtefield=StartsAt"`
}

// FestivalReviewRequest for reviewing a festival
type FestivalReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=5000"`
}
