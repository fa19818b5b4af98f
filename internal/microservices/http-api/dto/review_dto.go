package dto

// ReviewRequest for reviewing a vendor. Anonymous reviews carry only a display name.
type ReviewRequest struct {
	VendorID string `json:"vendor_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"max=100"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"max=5000"`
}
