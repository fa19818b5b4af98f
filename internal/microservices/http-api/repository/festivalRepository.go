package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type FestivalRepository interface {
	Create(ctx context.Context, festival *models.Festival) error
	GetByID(ctx context.Context, id string) (*models.Festival, error)
	List(ctx context.Context) ([]models.Festival, error)
	Update(ctx context.Context, festival *models.Festival) error
	Delete(ctx context.Context, id string) error

	CreateReview(ctx context.Context, review *models.FestivalReview) error
	ListReviews(ctx context.Context, festivalID string) ([]models.FestivalReview, error)
}

type festivalRepository struct {
	db *gorm.DB
}

func NewFestivalRepository(db *gorm.DB) FestivalRepository {
	return &festivalRepository{db: db}
}

func (r *festivalRepository) Create(ctx context.Context, festival *models.Festival) error {
	return r.db.WithContext(ctx).Create(festival).Error
}

func (r *festivalRepository) GetByID(ctx context.Context, id string) (*models.Festival, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var festival models.Festival
	if err := r.db.WithContext(ctx).First(&festival, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &festival, nil
}

// List orders festivals by start date, soonest first.
func (r *festivalRepository) List(ctx context.Context) ([]models.Festival, error) {
	var festivals []models.Festival
	err := r.db.WithContext(ctx).Order("starts_at ASC").Find(&festivals).Error
	return festivals, err
}

func (r *festivalRepository) Update(ctx context.Context, festival *models.Festival) error {
	return r.db.WithContext(ctx).Save(festival).Error
}

func (r *festivalRepository) Delete(ctx context.Context, id string) error {
	if !uuidKey(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Festival{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *festivalRepository) CreateReview(ctx context.Context, review *models.FestivalReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListReviews returns every festival review when festivalID is empty.
func (r *festivalRepository) ListReviews(ctx context.Context, festivalID string) ([]models.FestivalReview, error) {
	var reviews []models.FestivalReview
	if festivalID != "" && !uuidKey(festivalID) {
		return reviews, nil
	}
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if festivalID != "" {
		q = q.Where("festival_id = ?", festivalID)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}
