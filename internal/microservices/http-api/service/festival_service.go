package service

import (
	"context"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

type FestivalService interface {
	List(ctx context.Context) ([]models.Festival, error)
	Get(ctx context.Context, id string) (*models.Festival, error)
	Create(ctx context.Context, req dto.FestivalRequest) (*models.Festival, error)
	Update(ctx context.Context, id string, req dto.FestivalRequest) (*models.Festival, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, festivalID string, caller Caller, req dto.FestivalReviewRequest) (*models.FestivalReview, error)
	ListReviews(ctx context.Context, festivalID string) ([]models.FestivalReview, error)
}

type festivalService struct {
	repo       repository.FestivalRepository
	classifier SentimentClassifier
	notifier   Notifier
}

func NewFestivalService(repo repository.FestivalRepository, classifier SentimentClassifier, notifier Notifier) FestivalService {
	return &festivalService{repo: repo, classifier: classifier, notifier: notifier}
}

func (s *festivalService) List(ctx context.Context) ([]models.Festival, error) {
	return s.repo.List(ctx)
}

func (s *festivalService) Get(ctx context.Context, id string) (*models.Festival, error) {
	festival, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "festival")
	}
	return festival, nil
}

func (s *festivalService) Create(ctx context.Context, req dto.FestivalRequest) (*models.Festival, error) {
	if req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: festival ends before it starts", ErrBadRequest)
	}
	festival := &models.Festival{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.repo.Create(ctx, festival); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(festivalsRefresh(s.repo))
	return festival, nil
}

func (s *festivalService) Update(ctx context.Context, id string, req dto.FestivalRequest) (*models.Festival, error) {
	if req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("%w: festival ends before it starts", ErrBadRequest)
	}
	festival, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "festival")
	}

	festival.Name = req.Name
	festival.Location = req.Location
	festival.Description = req.Description
	festival.StartsAt = req.StartsAt
	festival.EndsAt = req.EndsAt
	if err := s.repo.Update(ctx, festival); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(festivalsRefresh(s.repo))
	return festival, nil
}

func (s *festivalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "festival")
	}
	s.notifier.Dispatch(festivalsRefresh(s.repo))
	return nil
}

// AddReview labels the comment's sentiment and tells admins about it.
func (s *festivalService) AddReview(ctx context.Context, festivalID string, caller Caller, req dto.FestivalReviewRequest) (*models.FestivalReview, error) {
	festival, err := s.repo.GetByID(ctx, festivalID)
	if err != nil {
		return nil, notFound(err, "festival")
	}

	review := &models.FestivalReview{
		FestivalID: festival.ID,
		UserID:     caller.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Sentiment:  s.classifier.Classify(req.Comment),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(fanout.NewFestivalReview(review, festival.Name))
	s.notifier.Dispatch(festivalReviewsRefresh(s.repo))
	return review, nil
}

func (s *festivalService) ListReviews(ctx context.Context, festivalID string) ([]models.FestivalReview, error) {
	if _, err := s.repo.GetByID(ctx, festivalID); err != nil {
		return nil, notFound(err, "festival")
	}
	return s.repo.ListReviews(ctx, festivalID)
}
