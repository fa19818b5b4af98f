package repository

import (
	"context"
	"encoding/json"
	"errors"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ErrEmptyScope is returned when a query names neither a role nor a user id.
var ErrEmptyScope = errors.New("notification scope needs a role or a user id")

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error)
	ListUnread(ctx context.Context, scope models.NotificationScope) ([]models.Notification, error)
	CountUnread(ctx context.Context, scope models.NotificationScope) (int64, error)
	MarkRead(ctx context.Context, id string, scope models.NotificationScope) (*models.Notification, error)
	MarkAllRead(ctx context.Context, scope models.NotificationScope) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// scoped restricts a query to records addressed to the user id or containing the role.
func scoped(db *gorm.DB, scope models.NotificationScope) (*gorm.DB, error) {
	switch {
	case scope.UserID != "" && scope.Role != "":
		return db.Where("(target_user_id = ? OR target_roles @> ?::jsonb)", scope.UserID, roleJSON(scope.Role)), nil
	case scope.UserID != "":
		return db.Where("target_user_id = ?", scope.UserID), nil
	case scope.Role != "":
		return db.Where("target_roles @> ?::jsonb", roleJSON(scope.Role)), nil
	}
	return nil, ErrEmptyScope
}

func roleJSON(role models.Role) string {
	raw, _ := json.Marshal([]models.Role{role})
	return string(raw)
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// List returns the newest records first.
func (r *notificationRepository) List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error) {
	q, err := scoped(r.db.WithContext(ctx), scope)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	err = q.Order("timestamp DESC").
		Limit(limit).
		Offset(skip).
		Find(&notifications).Error
	return notifications, err
}

// ListUnread returns every unread record in scope, newest first.
func (r *notificationRepository) ListUnread(ctx context.Context, scope models.NotificationScope) ([]models.Notification, error) {
	q, err := scoped(r.db.WithContext(ctx), scope)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	err = q.Where("read = ?", false).
		Order("timestamp DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, scope models.NotificationScope) (int64, error) {
	q, err := scoped(r.db.WithContext(ctx).Model(&models.Notification{}), scope)
	if err != nil {
		return 0, err
	}
	var count int64
	err = q.Where("read = ?", false).Count(&count).Error
	return count, err
}

// MarkRead flips read to true on a record the scope can see.
// gorm.ErrRecordNotFound covers both a missing id and a record outside the scope.
func (r *notificationRepository) MarkRead(ctx context.Context, id string, scope models.NotificationScope) (*models.Notification, error) {
	if !uuidKey(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var notification models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := scoped(tx, scope)
		if err != nil {
			return err
		}
		if err := q.First(&notification, "id = ?", id).Error; err != nil {
			return err
		}
		if notification.Read {
			return nil
		}
		notification.Read = true
		return tx.Model(&models.Notification{}).
			Where("id = ?", id).
			Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllRead returns how many records changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context, scope models.NotificationScope) (int64, error) {
	q, err := scoped(r.db.WithContext(ctx).Model(&models.Notification{}), scope)
	if err != nil {
		return 0, err
	}
	res := q.Where("read = ?", false).Update("read", true)
	return res.RowsAffected, res.Error
}
