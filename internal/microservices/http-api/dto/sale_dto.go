package dto

import "festivalhub/internal/microservices/http-api/models"

// SaleRequest for recording a sale
type SaleRequest struct {
	VendorID string  `json:"vendor_id" binding:"required,uuid"`
	Item     string  `json:"item" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

// SalesUpdate is the salesUpdate snapshot: one vendor's sales.
type SalesUpdate struct {
	VendorID string        `json:"vendorId"`
	Sales    []models.Sale `json:"sales"`
}
