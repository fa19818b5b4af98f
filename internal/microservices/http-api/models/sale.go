package models

type Sale struct {
	Base
	VendorID string  `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Item     string  `gorm:"not null" json:"item"`
	Quantity int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Amount   float64 `gorm:"not null" json:"amount"`

	// Associations
	Vendor Vendor `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE;"`
}

func (Sale) TableName() string {
	return "sales"
}
