package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// EventFilter narrows List. Zero fields are ignored.
type EventFilter struct {
	FestivalID string
	Status     models.EventStatus
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List orders events by start time, earliest first.
func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	if filter.FestivalID != "" && !uuidKey(filter.FestivalID) {
		return []models.Event{}, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.FestivalID != "" {
		q = q.Where("festival_id = ?", filter.FestivalID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var events []models.Event
	err := q.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if !uuidKey(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
