package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type ReviewService interface {
	Post(ctx context.Context, caller Caller, req dto.ReviewRequest) (*models.Review, error)
	List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, error)
}

type reviewService struct {
	repo       repository.ReviewRepository
	vendors    repository.VendorRepository
	classifier SentimentClassifier
	notifier   Notifier
}

func NewReviewService(repo repository.ReviewRepository, vendors repository.VendorRepository, classifier SentimentClassifier, notifier Notifier) ReviewService {
	return &reviewService{repo: repo, vendors: vendors, classifier: classifier, notifier: notifier}
}

// Post accepts anonymous reviews. The vendor's owner is told about every one.
func (s *reviewService) Post(ctx context.Context, caller Caller, req dto.ReviewRequest) (*models.Review, error) {
	vendor, err := s.vendors.GetByID(ctx, req.VendorID)
	if err != nil {
		return nil, notFound(err, "vendor")
	}

	review := &models.Review{
		VendorID:  vendor.ID,
		UserID:    caller.UserID,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Sentiment: s.classifier.Classify(req.Comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewReviewPosted(review, vendor))
	s.notifier.Dispatch(reviewsRefresh(s.repo))
	return review, nil
}

func (s *reviewService) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, error) {
	if filter.Sentiment != "" {
		switch filter.Sentiment {
		case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		default:
			return nil, fmt.Errorf("%w: unknown sentiment %q", ErrBadRequest, filter.Sentiment)
		}
	}
	return s.repo.List(ctx, filter)
}
