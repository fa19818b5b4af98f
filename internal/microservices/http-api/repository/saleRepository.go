package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	ListByVendor(ctx context.Context, vendorID string) ([]models.Sale, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create a new sale
func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.Sale, error) {
	var sales []models.Sale
	if !uuidKey(vendorID) {
		return sales, nil
	}
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}
