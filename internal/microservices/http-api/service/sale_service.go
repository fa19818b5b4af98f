package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type SaleService interface {
	Record(ctx context.Context, caller Caller, req dto.SaleRequest) (*models.Sale, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Sale, error)
}

type saleService struct {
	repo     repository.SaleRepository
	vendors  repository.VendorRepository
	notifier Notifier
}

func NewSaleService(repo repository.SaleRepository, vendors repository.VendorRepository, notifier Notifier) SaleService {
	return &saleService{repo: repo, vendors: vendors, notifier: notifier}
}

// Record stores a sale for a vendor the caller owns, or any vendor for admins.
func (s *saleService) Record(ctx context.Context, caller Caller, req dto.SaleRequest) (*models.Sale, error) {
	vendor, err := s.vendors.GetByID(ctx, req.VendorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	if !caller.IsAdmin() && vendor.RecipientID() != caller.UserID {
		return nil, fmt.Errorf("%w: vendor belongs to another account", ErrForbidden)
	}

	sale := &models.Sale{
		VendorID: vendor.ID,
		Item:     req.Item,
		Quantity: req.Quantity,
		Amount:   req.Amount,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewSaleRecorded(sale, vendor))
	s.notifier.Dispatch(salesRefresh(s.repo, vendor.ID))
	return sale, nil
}

func (s *saleService) ListByVendor(ctx context.Context, vendorID string) ([]models.Sale, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, notFound(err, "vendor")
	}
	return s.repo.ListByVendor(ctx, vendorID)
}
