package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if !uuidKey(vendorID) {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("category ASC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id string) error {
	if !uuidKey(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
