package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// VendorFilter narrows List. Zero fields are ignored.
type VendorFilter struct {
	RegistrationStatus models.Status
	PaymentStatus      models.Status
	FestivalID         string
	HasPayment         bool
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id string) error
	StatusCounts(ctx context.Context) (*VendorStatusCounts, error)
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter) ([]models.Vendor, error) {
	q := r.db.WithContext(ctx).Model(&models.Vendor{})
	if filter.RegistrationStatus != "" {
		q = q.Where("registration_status = ?", filter.RegistrationStatus)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.FestivalID != "" {
		q = q.Where("festival_id = ?", filter.FestivalID)
	}
	if filter.HasPayment {
		q = q.Where("payment_attachment <> ''")
	}

	var vendors []models.Vendor
	err := q.Order("created_at DESC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	if !uuidKey(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Vendor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vendorRepository) StatusCounts(ctx context.Context) (*VendorStatusCounts, error) {
	db := r.db.WithContext(ctx)

	registration, err := countByStatus(db, &models.Vendor{}, "registration_status")
	if err != nil {
		return nil, err
	}
	payment, err := countByStatus(db, &models.Vendor{}, "payment_status")
	if err != nil {
		return nil, err
	}

	var withPayment int64
	if err := db.Model(&models.Vendor{}).Where("payment_attachment <> ''").Count(&withPayment).Error; err != nil {
		return nil, err
	}

	return &VendorStatusCounts{
		Registration:   registration,
		Payment:        payment,
		PaymentVendors: withPayment,
	}, nil
}
