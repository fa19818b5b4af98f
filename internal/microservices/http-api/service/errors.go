package service

import (
	"errors"
	"fmt"

	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Notifier receives the events a successful write produces. fanout.Engine satisfies it.
type Notifier interface {
	Dispatch(ev fanout.Event)
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID string
	Role   models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// duplicate translates a unique-index violation into ErrConflict.
func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return err
}

// notFound translates gorm.ErrRecordNotFound into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
