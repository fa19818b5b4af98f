package models

type Vendor struct {
	Base
	Name               string `gorm:"not null" json:"name"`
	Email              string `gorm:"not null;index" json:"email"`
	Phone              string `json:"phone,omitempty"`
	FestivalID         string `gorm:"type:varchar(64);index" json:"festival_id,omitempty"`
	OwnerUserID        string `gorm:"type:varchar(64);index" json:"owner_user_id,omitempty"`
	RegistrationStatus Status `gorm:"type:varchar(16);not null;default:'Pending';index" json:"registration_status"`
	PaymentStatus      Status `gorm:"type:varchar(16);not null;default:'Pending';index" json:"payment_status"`
	PaymentAttachment  string `json:"payment_attachment,omitempty"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// RecipientID is the identity that receives vendor-addressed notifications:
// the owning account when one is linked, the vendor record itself otherwise.
func (v *Vendor) RecipientID() string {
	if v.OwnerUserID != "" {
		return v.OwnerUserID
	}
	return v.ID
}
