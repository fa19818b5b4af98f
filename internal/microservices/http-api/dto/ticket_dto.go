package dto

// TicketRequest for buying a ticket. The buyer comes from the access token.
type TicketRequest struct {
	FestivalID   string  `json:"festival_id" binding:"required,uuid"`
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	PaymentProof string  `json:"payment_proof" binding:"omitempty,url"`
}
