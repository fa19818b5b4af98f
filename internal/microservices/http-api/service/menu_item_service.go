package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type MenuItemService interface {
	ListByVendor(ctx context.Context, vendorID string) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, caller Caller, req dto.MenuItemRequest) (*models.MenuItem, error)
	Update(ctx context.Context, caller Caller, id string, req dto.MenuItemRequest) (*models.MenuItem, error)
	Delete(ctx context.Context, caller Caller, id string) error
}

type menuItemService struct {
	repo     repository.MenuItemRepository
	vendors  repository.VendorRepository
	notifier Notifier
}

func NewMenuItemService(repo repository.MenuItemRepository, vendors repository.VendorRepository, notifier Notifier) MenuItemService {
	return &menuItemService{repo: repo, vendors: vendors, notifier: notifier}
}

func (s *menuItemService) ListByVendor(ctx context.Context, vendorID string) ([]models.MenuItem, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, notFound(err, "vendor")
	}
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *menuItemService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	return item, nil
}

// Create adds an item to a menu the caller owns, or any menu for admins.
func (s *menuItemService) Create(ctx context.Context, caller Caller, req dto.MenuItemRequest) (*models.MenuItem, error) {
	status, err := menuItemStatus(req.Status)
	if err != nil {
		return nil, err
	}
	vendor, err := s.ownedVendor(ctx, caller, req.VendorID)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		VendorID:    vendor.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Status:      status,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(menuItemsRefresh(s.repo, vendor.ID))
	return item, nil
}

// Update replaces an item's fields. Items never move between vendors.
func (s *menuItemService) Update(ctx context.Context, caller Caller, id string, req dto.MenuItemRequest) (*models.MenuItem, error) {
	status, err := menuItemStatus(req.Status)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	if req.VendorID != item.VendorID {
		return nil, fmt.Errorf("%w: menu item belongs to another vendor", ErrBadRequest)
	}
	if _, err := s.ownedVendor(ctx, caller, item.VendorID); err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.Category = req.Category
	item.Status = status
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(menuItemsRefresh(s.repo, item.VendorID))
	return item, nil
}

func (s *menuItemService) Delete(ctx context.Context, caller Caller, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "menu item")
	}
	if _, err := s.ownedVendor(ctx, caller, item.VendorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "menu item")
	}

	s.notifier.Dispatch(menuItemsRefresh(s.repo, item.VendorID))
	return nil
}

func (s *menuItemService) ownedVendor(ctx context.Context, caller Caller, vendorID string) (*models.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	if !caller.IsAdmin() && vendor.RecipientID() != caller.UserID {
		return nil, fmt.Errorf("%w: vendor belongs to another account", ErrForbidden)
	}
	return vendor, nil
}

// menuItemStatus defaults an empty status to active.
func menuItemStatus(status models.MenuItemStatus) (models.MenuItemStatus, error) {
	if status == "" {
		return models.MenuItemActive, nil
	}
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown menu item status %q", ErrBadRequest, status)
	}
	return status, nil
}
