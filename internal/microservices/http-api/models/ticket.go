package models

type Ticket struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index:idx_ticket_owner" json:"user_id"`
	FestivalID    string  `gorm:"type:uuid;not null;index:idx_ticket_owner" json:"festival_id"`
	Name          string  `gorm:"not null" json:"name"`
	Email         string  `gorm:"not null" json:"email"`
	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentStatus Status  `gorm:"type:varchar(16);not null;default:'Pending';index" json:"payment_status"`
	PaymentProof  string  `json:"payment_proof,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}
