package dto

import "festivalhub/internal/microservices/http-api/models"

// VendorRequest for registering a vendor
type VendorRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=32"`
	FestivalID string `json:"festival_id"`
}

// StatusRequest for registration and payment decisions
type StatusRequest struct {
	Status models.Status `json:"status" binding:"required,oneof=Pending Approved Rejected"`
}

// PaymentAttachmentRequest carries the URL of an already uploaded document
type PaymentAttachmentRequest struct {
	URL string `json:"url" binding:"required,url"`
}
