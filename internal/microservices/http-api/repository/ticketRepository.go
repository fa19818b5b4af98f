package repository

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// TicketFilter narrows List. Zero fields are ignored.
type TicketFilter struct {
	UserID        string
	FestivalID    string
	PaymentStatus models.Status
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	HasActiveTicket(ctx context.Context, userID, festivalID string) (bool, error)
	StatusCounts(ctx context.Context) (StatusCounts, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List matches nothing when an id filter is not a uuid.
func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error) {
	if (filter.UserID != "" && !uuidKey(filter.UserID)) || (filter.FestivalID != "" && !uuidKey(filter.FestivalID)) {
		return []models.Ticket{}, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.FestivalID != "" {
		q = q.Where("festival_id = ?", filter.FestivalID)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}

	var tickets []models.Ticket
	err := q.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// HasActiveTicket reports whether the user already holds a non-rejected ticket for the festival.
func (r *ticketRepository) HasActiveTicket(ctx context.Context, userID, festivalID string) (bool, error) {
	if !uuidKey(userID) || !uuidKey(festivalID) {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("user_id = ? AND festival_id = ? AND payment_status <> ?", userID, festivalID, models.StatusRejected).
		Count(&count).Error
	return count > 0, err
}

func (r *ticketRepository) StatusCounts(ctx context.Context) (StatusCounts, error) {
	return countByStatus(r.db.WithContext(ctx), &models.Ticket{}, "payment_status")
}
