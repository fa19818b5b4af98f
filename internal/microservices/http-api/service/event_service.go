package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type EventService interface {
	List(ctx context.Context, caller Caller, filter repository.EventFilter) ([]models.Event, error)
	Get(ctx context.Context, caller Caller, id string) (*models.Event, error)
	Create(ctx context.Context, req dto.EventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req dto.EventRequest) (*models.Event, error)
	UpdateStatus(ctx context.Context, id string, status models.EventStatus) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	repo      repository.EventRepository
	festivals repository.FestivalRepository
	notifier  Notifier
}

func NewEventService(repo repository.EventRepository, festivals repository.FestivalRepository, notifier Notifier) EventService {
	return &eventService{repo: repo, festivals: festivals, notifier: notifier}
}

// List shows non-admins published events only.
func (s *eventService) List(ctx context.Context, caller Caller, filter repository.EventFilter) ([]models.Event, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %q", ErrBadRequest, filter.Status)
	}
	if !caller.IsAdmin() {
		filter.Status = models.EventPublished
	}
	return s.repo.List(ctx, filter)
}

func (s *eventService) Get(ctx context.Context, caller Caller, id string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event")
	}
	if !caller.IsAdmin() && event.Status != models.EventPublished {
		return nil, fmt.Errorf("event %w", ErrNotFound)
	}
	return event, nil
}

// Create stores new events as drafts.
func (s *eventService) Create(ctx context.Context, req dto.EventRequest) (*models.Event, error) {
	if req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: event ends before it starts", ErrBadRequest)
	}
	if _, err := s.festivals.GetByID(ctx, req.FestivalID); err != nil {
		return nil, notFound(err, "festival")
	}

	event := &models.Event{Status: models.EventDraft}
	applyEventRequest(event, req)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(eventsRefresh(s.repo))
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, req dto.EventRequest) (*models.Event, error) {
	if req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: event ends before it starts", ErrBadRequest)
	}
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event")
	}
	if req.FestivalID != event.FestivalID {
		if _, err := s.festivals.GetByID(ctx, req.FestivalID); err != nil {
			return nil, notFound(err, "festival")
		}
	}

	applyEventRequest(event, req)
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(eventsRefresh(s.repo))
	return event, nil
}

func (s *eventService) UpdateStatus(ctx context.Context, id string, status models.EventStatus) (*models.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %q", ErrBadRequest, status)
	}
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event")
	}

	event.Status = status
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(eventsRefresh(s.repo))
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "event")
	}
	s.notifier.Dispatch(eventsRefresh(s.repo))
	return nil
}

func applyEventRequest(event *models.Event, req dto.EventRequest) {
	event.FestivalID = req.FestivalID
	event.Title = req.Title
	event.EventType = req.EventType
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Location = req.Location
	event.Description = req.Description
}
