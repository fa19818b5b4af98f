package models

type MenuItemStatus string

const (
	MenuItemActive     MenuItemStatus = "active"
	MenuItemInactive   MenuItemStatus = "inactive"
	MenuItemOutOfStock MenuItemStatus = "out_of_stock"
)

func (s MenuItemStatus) Valid() bool {
	switch s {
	case MenuItemActive, MenuItemInactive, MenuItemOutOfStock:
		return true
	}
	return false
}

type MenuItem struct {
	Base
	VendorID    string         `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	ImageURL    string         `json:"image_url,omitempty"`
	Category    string         `gorm:"type:varchar(64);not null;index" json:"category"`
	Status      MenuItemStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`

	// Associations
	Vendor Vendor `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE;"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
