package dto

import "festivalhub/internal/microservices/http-api/models"

// MenuItemRequest for creating or replacing a menu item
type MenuItemRequest struct {
	VendorID    string                `json:"vendor_id" binding:"required,uuid"`
	Name        string                `json:"name" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=2000"`
	Price       float64               `json:"price" binding:"gte=0"`
	ImageURL    string                `json:"image_url" binding:"omitempty,url"`
	Category    string                `json:"category" binding:"required,max=64"`
	Status      models.MenuItemStatus `json:"status"`
}

// MenuItemsUpdate is the menuItemsUpdate snapshot: one vendor's menu.
type MenuItemsUpdate struct {
	VendorID  string            `json:"vendorId"`
	MenuItems []models.MenuItem `json:"menuItems"`
}
