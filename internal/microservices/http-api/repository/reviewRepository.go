package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ReviewFilter narrows List. Zero fields are ignored.
type ReviewFilter struct {
	VendorID  string
	Sentiment models.Sentiment
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	if filter.VendorID != "" && !uuidKey(filter.VendorID) {
		return []models.Review{}, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.VendorID != "" {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Sentiment != "" {
		q = q.Where("sentiment = ?", filter.Sentiment)
	}

	var reviews []models.Review
	err := q.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
