package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BoothRepository interface {
	Create(ctx context.Context, booth *models.Booth) error
	GetByID(ctx context.Context, id string) (*models.Booth, error)
	List(ctx context.Context, festivalID string) ([]models.Booth, error)
	Update(ctx context.Context, booth *models.Booth) error
	Delete(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, assignment *models.BoothAssignment) error
	ListAssignments(ctx context.Context) ([]models.BoothAssignment, error)
	DeleteAssignment(ctx context.Context, id string) (*models.BoothAssignment, error)
}

type boothRepository struct {
	db *gorm.DB
}

func NewBoothRepository(db *gorm.DB) BoothRepository {
	return &boothRepository{db: db}
}

func (r *boothRepository) Create(ctx context.Context, booth *models.Booth) error {
	return r.db.WithContext(ctx).Create(booth).Error
}

func (r *boothRepository) GetByID(ctx context.Context, id string) (*models.Booth, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var booth models.Booth
	if err := r.db.WithContext(ctx).First(&booth, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booth, nil
}

// List returns every booth when festivalID is empty, ordered by booth number.
func (r *boothRepository) List(ctx context.Context, festivalID string) ([]models.Booth, error) {
	var booths []models.Booth
	if festivalID != "" && !uuidKey(festivalID) {
		return booths, nil
	}
	q := r.db.WithContext(ctx).Order("booth_number ASC")
	if festivalID != "" {
		q = q.Where("festival_id = ?", festivalID)
	}
	err := q.Find(&booths).Error
	return booths, err
}

func (r *boothRepository) Update(ctx context.Context, booth *models.Booth) error {
	return r.db.WithContext(ctx).Save(booth).Error
}

func (r *boothRepository) Delete(ctx context.Context, id string) error {
	if !uuidKey(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Booth{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *boothRepository) CreateAssignment(ctx context.Context, assignment *models.BoothAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *boothRepository) ListAssignments(ctx context.Context) ([]models.BoothAssignment, error) {
	var assignments []models.BoothAssignment
	err := r.db.WithContext(ctx).Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

// DeleteAssignment returns the removed row so callers know which vendor lost its booth.
func (r *boothRepository) DeleteAssignment(ctx context.Context, id string) (*models.BoothAssignment, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var assignment models.BoothAssignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BoothAssignment{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
