package dto

// BoothRequest for creating or replacing a booth
type BoothRequest struct {
	FestivalID  string  `json:"festival_id" binding:"required,uuid"`
	BoothNumber string  `json:"booth_number" binding:"required,max=32"`
	Amount      float64 `json:"amount" binding:"gte=0"`
}

// AssignmentRequest gives a booth to a vendor
type AssignmentRequest struct {
	VendorID string `json:"vendor_id" binding:"required,uuid"`
	BoothID  string `json:"booth_id" binding:"required,uuid"`
}
