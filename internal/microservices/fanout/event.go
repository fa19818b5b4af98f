package fanout

import (
	"context"

	"festivalhub/internal/microservices/http-api/models"

	"gorm.io/datatypes"
)

// Event is the closed set of facts the engine knows how to fan out.
type Event interface {
	kind() string
}

// FetchFunc produces the current authoritative snapshot of a collection or aggregate.
type FetchFunc func(ctx context.Context) (any, error)

// TargetedNotification persists one Notification Record and pushes it to its targets.
type TargetedNotification struct {
	Type         models.NotificationType
	Message      string
	EntityID     string
	TargetRoles  []models.Role
	TargetUserID string
	Metadata     models.Metadata
}

// ListRefresh re-sends a whole collection as <Collection>Update to every connection.
type ListRefresh struct {
	Collection string
	Fetch      FetchFunc
}

// StatusCounts re-sends an aggregate as <Name>StatusCounts to every connection.
type StatusCounts struct {
	Name  string
	Fetch FetchFunc
}

// UnreadCounts re-sends unread totals to the user and role groups a record was addressed to.
type UnreadCounts struct {
	TargetRoles  []models.Role
	TargetUserID string
}

func (TargetedNotification) kind() string { return "notification" }
func (ListRefresh) kind() string          { return "list_refresh" }
func (StatusCounts) kind() string         { return "status_counts" }
func (UnreadCounts) kind() string         { return "unread_counts" }

// record builds the unsaved Notification Record for this event.
func (n TargetedNotification) record() *models.Notification {
	rec := &models.Notification{
		Type:        n.Type,
		Message:     n.Message,
		EntityID:    n.EntityID,
		TargetRoles: models.UniqueRoles(n.TargetRoles),
	}
	rec.Metadata = datatypes.NewJSONType(n.Metadata)
	if n.TargetUserID != "" {
		userID := n.TargetUserID
		rec.TargetUserID = &userID
	}
	return rec
}
