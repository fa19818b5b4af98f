package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type TicketService interface {
	List(ctx context.Context, caller Caller, filter repository.TicketFilter) ([]models.Ticket, error)
	Get(ctx context.Context, caller Caller, id string) (*models.Ticket, error)
	Purchase(ctx context.Context, caller Caller, req dto.TicketRequest) (*models.Ticket, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.Status) (*models.Ticket, error)
	StatusCounts(ctx context.Context) (repository.StatusCounts, error)
}

const activeTicketConflict = "a ticket for this festival is already pending or approved"

type ticketService struct {
	repo      repository.TicketRepository
	festivals repository.FestivalRepository
	notifier  Notifier
}

func NewTicketService(repo repository.TicketRepository, festivals repository.FestivalRepository, notifier Notifier) TicketService {
	return &ticketService{repo: repo, festivals: festivals, notifier: notifier}
}

// List shows non-admins their own tickets only.
func (s *ticketService) List(ctx context.Context, caller Caller, filter repository.TicketFilter) ([]models.Ticket, error) {
	if !caller.IsAdmin() {
		filter.UserID = caller.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *ticketService) Get(ctx context.Context, caller Caller, id string) (*models.Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	if !caller.IsAdmin() && ticket.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: ticket belongs to another account", ErrForbidden)
	}
	return ticket, nil
}

// Purchase allows one non-rejected ticket per user and festival.
func (s *ticketService) Purchase(ctx context.Context, caller Caller, req dto.TicketRequest) (*models.Ticket, error) {
	if caller.UserID == "" {
		return nil, fmt.Errorf("%w: buying a ticket needs an account", ErrForbidden)
	}
	festival, err := s.festivals.GetByID(ctx, req.FestivalID)
	if err != nil {
		return nil, notFound(err, "festival")
	}

	active, err := s.repo.HasActiveTicket(ctx, caller.UserID, festival.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("%w: %s", ErrConflict, activeTicketConflict)
	}
	previous, err := s.repo.List(ctx, repository.TicketFilter{UserID: caller.UserID, FestivalID: festival.ID})
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		UserID:        caller.UserID,
		FestivalID:    festival.ID,
		Name:          req.Name,
		Email:         req.Email,
		Amount:        req.Amount,
		PaymentStatus: models.StatusPending,
		PaymentProof:  req.PaymentProof,
	}
	// a concurrent purchase can pass the check above; the unique index settles it
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, duplicate(err, activeTicketConflict)
	}

	s.notifier.Dispatch(fanout.NewTicketPurchased(ticket, festival.Name))
	if len(previous) == 0 {
		s.notifier.Dispatch(fanout.NewAttendee(ticket, festival.Name))
	}
	s.refresh()
	return ticket, nil
}

func (s *ticketService) UpdatePaymentStatus(ctx context.Context, id string, status models.Status) (*models.Ticket, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, status)
	}
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}

	ticket.PaymentStatus = status
	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, duplicate(err, activeTicketConflict)
	}

	s.notifier.Dispatch(fanout.NewTicketStatusUpdate(ticket))
	s.refresh()
	return ticket, nil
}

func (s *ticketService) StatusCounts(ctx context.Context) (repository.StatusCounts, error) {
	return s.repo.StatusCounts(ctx)
}

func (s *ticketService) refresh() {
	s.notifier.Dispatch(ticketsRefresh(s.repo))
	s.notifier.Dispatch(ticketStatusCounts(s.repo))
}
