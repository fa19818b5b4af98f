package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrValidation marks a notification or query that breaks the targeting rules.
var ErrValidation = errors.New("validation error")

type NotificationType string

const (
	TypeNewVendor              NotificationType = "new_vendor"
	TypeNewAttendee            NotificationType = "new_attendee"
	TypePaymentAttachment      NotificationType = "payment_attachment"
	TypeStatusUpdate           NotificationType = "status_update"
	TypeNewUser                NotificationType = "new_user"
	TypeFestivalReview         NotificationType = "festival_review"
	TypeNewTicket              NotificationType = "new_ticket"
	TypeTicketStatusUpdate     NotificationType = "ticket_status_update"
	TypeUserVerified           NotificationType = "user_verified"
	TypeBoothAssigned          NotificationType = "booth_assigned"
	TypeNewSale                NotificationType = "new_sale"
	TypeNewReview              NotificationType = "new_review"
	TypeUserLogin              NotificationType = "user_login"
	TypeLoginError             NotificationType = "login_error"
	TypeLoginAttemptUnverified NotificationType = "login_attempt_unverified"
	TypeWelcome                NotificationType = "welcome"
	TypeLoginAttemptInactive   NotificationType = "login_attempt_inactive"
)

var NotificationTypes = []NotificationType{
	TypeNewVendor, TypeNewAttendee, TypePaymentAttachment, TypeStatusUpdate, TypeNewUser,
	TypeFestivalReview, TypeNewTicket, TypeTicketStatusUpdate, TypeUserVerified, TypeBoothAssigned,
	TypeNewSale, TypeNewReview, TypeUserLogin, TypeLoginError, TypeLoginAttemptUnverified,
	TypeWelcome, TypeLoginAttemptInactive,
}

func (t NotificationType) Valid() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Metadata holds display-only fields. Each notification type fills the subset it uses.
type Metadata struct {
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	DocumentType string    `json:"documentType,omitempty"`
	Status       Status    `json:"status,omitempty"`
	Festival     string    `json:"festival,omitempty"`
	Booth        string    `json:"booth,omitempty"`
	Rating       int       `json:"rating,omitempty"`
	Sentiment    Sentiment `json:"sentiment,omitempty"`
	Error        string    `json:"error,omitempty"`
}

type Notification struct {
	ID           string                       `gorm:"primaryKey;type:uuid" json:"id"`
	Type         NotificationType             `gorm:"type:varchar(40);not null;index" json:"type" validate:"notification_type"`
	Message      string                       `gorm:"type:text;not null" json:"message" validate:"required"`
	Timestamp    time.Time                    `gorm:"not null;index:idx_notifications_timestamp,sort:desc" json:"timestamp"`
	Read         bool                         `gorm:"not null;default:false;index" json:"read"`
	EntityID     string                       `gorm:"type:varchar(64);index" json:"entityId,omitempty"`
	TargetRoles  datatypes.JSONSlice[Role]    `gorm:"type:jsonb;not null" json:"targetRoles" validate:"dive,role"`
	TargetUserID *string                      `gorm:"type:varchar(64);index" json:"targetUserId,omitempty"`
	Metadata     datatypes.JSONType[Metadata] `gorm:"type:jsonb" json:"metadata"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns the id and creation time when the caller left them empty.
func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	return
}

// AddressedTo reports whether the record targets the given user id or role.
func (n *Notification) AddressedTo(scope NotificationScope) bool {
	if scope.UserID != "" && n.TargetUserID != nil && *n.TargetUserID == scope.UserID {
		return true
	}
	if scope.Role != "" {
		for _, r := range n.TargetRoles {
			if r == scope.Role {
				return true
			}
		}
	}
	return false
}

// Validate enforces the record invariants: a known type, a message, roles from the
// role set and at least one target.
func (n *Notification) Validate() error {
	if err := validate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: invalid %s", ErrValidation, verrs[0].Field())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(n.TargetRoles) == 0 && (n.TargetUserID == nil || *n.TargetUserID == "") {
		return fmt.Errorf("%w: notification needs target roles or a target user", ErrValidation)
	}
	return nil
}

// UniqueRoles drops repeated roles while keeping first-seen order.
func UniqueRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// NotificationScope selects the records addressed to a user id, a role, or either.
type NotificationScope struct {
	Role   Role
	UserID string
}

func (s NotificationScope) Empty() bool {
	return s.Role == "" && s.UserID == ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		return NotificationType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	return v
}
