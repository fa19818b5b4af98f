package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type VendorService interface {
	List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, error)
	Get(ctx context.Context, id string) (*models.Vendor, error)
	Register(ctx context.Context, caller Caller, req dto.VendorRequest) (*models.Vendor, error)
	UpdateRegistrationStatus(ctx context.Context, id string, status models.Status) (*models.Vendor, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.Status) (*models.Vendor, error)
	AttachPayment(ctx context.Context, id string, caller Caller, url string) (*models.Vendor, error)
	Delete(ctx context.Context, id string) error
	StatusCounts(ctx context.Context) (*repository.VendorStatusCounts, error)
}

type vendorService struct {
	repo     repository.VendorRepository
	notifier Notifier
}

func NewVendorService(repo repository.VendorRepository, notifier Notifier) VendorService {
	return &vendorService{repo: repo, notifier: notifier}
}

func (s *vendorService) List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, error) {
	return s.repo.List(ctx, filter)
}

func (s *vendorService) Get(ctx context.Context, id string) (*models.Vendor, error) {
	vendor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	return vendor, nil
}

// Register links the vendor to the caller's account when a vendor registers itself.
func (s *vendorService) Register(ctx context.Context, caller Caller, req dto.VendorRequest) (*models.Vendor, error) {
	vendor := &models.Vendor{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		FestivalID:         req.FestivalID,
		RegistrationStatus: models.StatusPending,
		PaymentStatus:      models.StatusPending,
	}
	if caller.Role == models.RoleVendor {
		vendor.OwnerUserID = caller.UserID
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewVendorRegistered(vendor))
	s.refresh()
	return vendor, nil
}

func (s *vendorService) UpdateRegistrationStatus(ctx context.Context, id string, status models.Status) (*models.Vendor, error) {
	return s.updateStatus(ctx, id, "registration", status, func(v *models.Vendor) { v.RegistrationStatus = status })
}

func (s *vendorService) UpdatePaymentStatus(ctx context.Context, id string, status models.Status) (*models.Vendor, error) {
	return s.updateStatus(ctx, id, "payment", status, func(v *models.Vendor) { v.PaymentStatus = status })
}

func (s *vendorService) updateStatus(ctx context.Context, id, field string, status models.Status, apply func(*models.Vendor)) (*models.Vendor, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, status)
	}
	vendor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "vendor")
	}

	apply(vendor)
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewVendorStatusUpdate(vendor, field, status))
	s.refresh()
	return vendor, nil
}

// AttachPayment stores the URL of an uploaded payment document and resets the
// payment decision to pending. Only the owning account or an admin may attach.
func (s *vendorService) AttachPayment(ctx context.Context, id string, caller Caller, url string) (*models.Vendor, error) {
	vendor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	if !caller.IsAdmin() && (vendor.OwnerUserID == "" || vendor.OwnerUserID != caller.UserID) {
		return nil, fmt.Errorf("%w: vendor belongs to another account", ErrForbidden)
	}

	vendor.PaymentAttachment = url
	vendor.PaymentStatus = models.StatusPending
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewPaymentAttachment(vendor))
	s.refresh()
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "vendor")
	}
	s.refresh()
	return nil
}

func (s *vendorService) StatusCounts(ctx context.Context) (*repository.VendorStatusCounts, error) {
	return s.repo.StatusCounts(ctx)
}

func (s *vendorService) refresh() {
	s.notifier.Dispatch(vendorsRefresh(s.repo))
	s.notifier.Dispatch(vendorStatusCounts(s.repo))
}
