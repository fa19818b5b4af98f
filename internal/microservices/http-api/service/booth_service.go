package service

import (
	"context"
	"fmt"
	"time"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type BoothService interface {
	List(ctx context.Context, festivalID string) ([]models.Booth, error)
	Get(ctx context.Context, id string) (*models.Booth, error)
	Create(ctx context.Context, req dto.BoothRequest) (*models.Booth, error)
	Update(ctx context.Context, id string, req dto.BoothRequest) (*models.Booth, error)
	Delete(ctx context.Context, id string) error

	ListAssignments(ctx context.Context) ([]models.BoothAssignment, error)
	Assign(ctx context.Context, req dto.AssignmentRequest) (*models.BoothAssignment, error)
	Unassign(ctx context.Context, id string) error
}

type boothService struct {
	repo      repository.BoothRepository
	festivals repository.FestivalRepository
	vendors   repository.VendorRepository
	notifier  Notifier
	now       func() time.Time
}

func NewBoothService(repo repository.BoothRepository, festivals repository.FestivalRepository, vendors repository.VendorRepository, notifier Notifier) BoothService {
	return &boothService{repo: repo, festivals: festivals, vendors: vendors, notifier: notifier, now: time.Now}
}

func (s *boothService) List(ctx context.Context, festivalID string) ([]models.Booth, error) {
	return s.repo.List(ctx, festivalID)
}

func (s *boothService) Get(ctx context.Context, id string) (*models.Booth, error) {
	booth, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booth")
	}
	return booth, nil
}

func (s *boothService) Create(ctx context.Context, req dto.BoothRequest) (*models.Booth, error) {
	if _, err := s.festivals.GetByID(ctx, req.FestivalID); err != nil {
		return nil, notFound(err, "festival")
	}

	booth := &models.Booth{
		FestivalID:  req.FestivalID,
		BoothNumber: req.BoothNumber,
		Amount:      req.Amount,
	}
	if err := s.repo.Create(ctx, booth); err != nil {
		return nil, duplicate(err, "booth number already used at this festival")
	}

	s.notifier.Dispatch(boothsRefresh(s.repo))
	return booth, nil
}

func (s *boothService) Update(ctx context.Context, id string, req dto.BoothRequest) (*models.Booth, error) {
	booth, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booth")
	}
	if req.FestivalID != booth.FestivalID {
		if _, err := s.festivals.GetByID(ctx, req.FestivalID); err != nil {
			return nil, notFound(err, "festival")
		}
	}

	booth.FestivalID = req.FestivalID
	booth.BoothNumber = req.BoothNumber
	booth.Amount = req.Amount
	if err := s.repo.Update(ctx, booth); err != nil {
		return nil, duplicate(err, "booth number already used at this festival")
	}

	s.notifier.Dispatch(boothsRefresh(s.repo))
	return booth, nil
}

// Delete drops the booth and, through the foreign key, its assignment.
func (s *boothService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "booth")
	}
	s.notifier.Dispatch(boothsRefresh(s.repo))
	s.notifier.Dispatch(assignmentsRefresh(s.repo))
	return nil
}

func (s *boothService) ListAssignments(ctx context.Context) ([]models.BoothAssignment, error) {
	return s.repo.ListAssignments(ctx)
}

// Assign gives the booth to the vendor and tells the vendor's account. A booth
// already taken, or a vendor already holding a booth, is a conflict.
func (s *boothService) Assign(ctx context.Context, req dto.AssignmentRequest) (*models.BoothAssignment, error) {
	vendor, err := s.vendors.GetByID(ctx, req.VendorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	booth, err := s.repo.GetByID(ctx, req.BoothID)
	if err != nil {
		return nil, notFound(err, "booth")
	}
	if vendor.FestivalID != "" && vendor.FestivalID != booth.FestivalID {
		return nil, fmt.Errorf("%w: vendor is registered for another festival", ErrBadRequest)
	}
	festival, err := s.festivals.GetByID(ctx, booth.FestivalID)
	if err != nil {
		return nil, notFound(err, "festival")
	}

	assignment := &models.BoothAssignment{
		VendorID:   vendor.ID,
		FestivalID: booth.FestivalID,
		BoothID:    booth.ID,
		AssignedAt: s.now().UTC(),
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, duplicate(err, "booth or vendor already has an assignment")
	}

	s.notifier.Dispatch(fanout.NewBoothAssigned(assignment, vendor, booth, festival.Name))
	s.refreshAssignments()
	return assignment, nil
}

func (s *boothService) Unassign(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteAssignment(ctx, id); err != nil {
		return notFound(err, "assignment")
	}
	s.refreshAssignments()
	return nil
}

func (s *boothService) refreshAssignments() {
	s.notifier.Dispatch(assignmentsRefresh(s.repo))
	s.notifier.Dispatch(boothsRefresh(s.repo))
}
