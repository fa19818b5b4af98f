package models

import "time"

type Booth struct {
	Base
	FestivalID  string  `gorm:"type:uuid;not null;uniqueIndex:idx_booth_festival_number" json:"festival_id"`
	BoothNumber string  `gorm:"type:varchar(32);not null;uniqueIndex:idx_booth_festival_number" json:"booth_number"`
	Amount      float64 `gorm:"not null;check:amount >= 0" json:"amount"`

	// Associations
	Festival Festival `json:"-" gorm:"foreignKey:FestivalID;constraint:OnDelete:CASCADE;"`
}

func (Booth) TableName() string {
	return "booths"
}

// BoothAssignment gives one booth to one vendor. A booth and a vendor each appear
// in at most one assignment.
type BoothAssignment struct {
	Base
	VendorID   string    `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	FestivalID string    `gorm:"type:uuid;not null;index" json:"festival_id"`
	BoothID    string    `gorm:"type:uuid;not null;uniqueIndex" json:"booth_id"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`

	// Associations
	Vendor Vendor `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE;"`
	Booth  Booth  `json:"-" gorm:"foreignKey:BoothID;constraint:OnDelete:CASCADE;"`
}

func (BoothAssignment) TableName() string {
	return "booth_assignments"
}
