package service

import (
	"context"
	"errors"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/http-api/repository"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

type NotificationService interface {
	List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, scope models.NotificationScope) (int64, error)
	MarkRead(ctx context.Context, id string, scope models.NotificationScope) (*models.Notification, error)
	MarkAllRead(ctx context.Context, scope models.NotificationScope) (int64, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	notifier Notifier
}

func NewNotificationService(repo repository.NotificationRepository, notifier Notifier) NotificationService {
	return &notificationService{repo: repo, notifier: notifier}
}

func checkScope(scope models.NotificationScope) error {
	if scope.Empty() {
		return fmt.Errorf("%w: role or user_id is required", ErrBadRequest)
	}
	if scope.Role != "" && !scope.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrBadRequest, scope.Role)
	}
	return nil
}

// List returns the records addressed to the user id or the role, newest first.
// limit is clamped to [1, MaxNotificationLimit].
func (s *notificationService) List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", ErrBadRequest)
	}
	limit = min(max(limit, 1), MaxNotificationLimit)

	notifications, err := s.repo.List(ctx, scope, limit, skip)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, scope models.NotificationScope) (int64, error) {
	if err := checkScope(scope); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, scope)
}

// MarkRead marks one record read and pushes fresh unread counts to everyone it targets.
func (s *notificationService) MarkRead(ctx context.Context, id string, scope models.NotificationScope) (*models.Notification, error) {
	if err := checkScope(scope); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: notification id is required", ErrBadRequest)
	}

	notification, err := s.repo.MarkRead(ctx, id, scope)
	if err != nil {
		return nil, notFound(err, "notification")
	}

	ev := fanout.UnreadCounts{TargetRoles: notification.TargetRoles}
	if notification.TargetUserID != nil {
		ev.TargetUserID = *notification.TargetUserID
	}
	s.notifier.Dispatch(ev)
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, scope models.NotificationScope) (int64, error) {
	if err := checkScope(scope); err != nil {
		return 0, err
	}
	updated, err := s.repo.MarkAllRead(ctx, scope)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyScope) {
			return 0, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return 0, err
	}
	if updated > 0 {
		ev := fanout.UnreadCounts{TargetUserID: scope.UserID}
		if scope.Role != "" {
			ev.TargetRoles = []models.Role{scope.Role}
		}
		s.notifier.Dispatch(ev)
	}
	return updated, nil
}
