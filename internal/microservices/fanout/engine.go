package fanout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"festivalhub/internal/metrics"
	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/websocket"
)

var (
	// ErrValidation is returned for a notification without targets or an unknown event.
	ErrValidation = models.ErrValidation
	// ErrDelivery wraps store or fetch failures met while fanning out. The pushes that
	// could still be made were made.
	ErrDelivery = errors.New("delivery failure")
)

// Event names pushed by the engine
const (
	EventUserNotification        = "userNotification"
	EventUserNotificationsUpdate = "userNotificationsUpdate"
	EventRoleNotificationsUpdate = "roleNotificationsUpdate"
	EventUnreadCountUpdate       = "unreadCountUpdate"
	listRefreshSuffix            = "Update"
	statusCountsSuffix           = "StatusCounts"
	roleNotificationSuffix       = "Notification"
	defaultCatchUpLimit          = 50
)

// Broadcaster is the delivery side the engine pushes through: the local Registry or
// the Redis bridge wrapping it.
type Broadcaster interface {
	BroadcastToGroup(group, event string, payload any) int
	BroadcastToAll(event string, payload any) int
	SendTo(connID, event string, payload any) error
}

// NotificationStore is the slice of the notification repository the engine needs.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error)
	ListUnread(ctx context.Context, scope models.NotificationScope) ([]models.Notification, error)
	CountUnread(ctx context.Context, scope models.NotificationScope) (int64, error)
}

// UnreadCountPayload is the body of unreadCountUpdate.
type UnreadCountPayload struct {
	UserID string      `json:"userId,omitempty"`
	Role   models.Role `json:"role,omitempty"`
	Count  int64       `json:"count"`
}

// Engine turns domain events into Notification Records and live pushes.
// It holds no state between calls beyond its collaborators.
type Engine struct {
	store        NotificationStore
	out          Broadcaster
	pool         *WorkerPool
	policies     map[models.NotificationType]Policy
	catchUpLimit int
	logger       *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithCatchUpLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.catchUpLimit = limit
		}
	}
}

func WithPolicies(policies map[models.NotificationType]Policy) Option {
	return func(e *Engine) { e.policies = policies }
}

func NewEngine(store NotificationStore, out Broadcaster, pool *WorkerPool, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		out:          out,
		pool:         pool,
		policies:     DefaultPolicies,
		catchUpLimit: defaultCatchUpLimit,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Publish fans one event out synchronously. Validation failures abort before anything
// is persisted or pushed. Store and fetch failures are returned wrapped in ErrDelivery
// after every push that did not depend on them has been attempted.
func (e *Engine) Publish(ctx context.Context, ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrValidation)
	}
	metrics.FanoutEvents.WithLabelValues(ev.kind()).Inc()

	switch ev := ev.(type) {
	case TargetedNotification:
		return e.publishNotification(ctx, ev)
	case ListRefresh:
		return e.publishSnapshot(ctx, ev.kind(), ev.Collection+listRefreshSuffix, ev.Fetch)
	case StatusCounts:
		return e.publishSnapshot(ctx, ev.kind(), ev.Name+statusCountsSuffix, ev.Fetch)
	case UnreadCounts:
		return e.publishUnreadCounts(ctx, ev)
	default:
		return fmt.Errorf("%w: unsupported event %T", ErrValidation, ev)
	}
}

// Dispatch hands the event to the worker pool and returns immediately.
// Errors are logged by the pool, never returned.
func (e *Engine) Dispatch(ev Event) {
	if ev == nil {
		return
	}
	e.pool.Submit(ev.kind(), func(ctx context.Context) error {
		return e.Publish(ctx, ev)
	})
}

// OnAuthenticated queues a catch-up for a freshly authenticated connection.
// It matches websocket.AuthenticatedHook.
func (e *Engine) OnAuthenticated(connID string, identity websocket.Identity) {
	e.pool.Submit("catch_up", func(ctx context.Context) error {
		return e.CatchUp(ctx, connID, identity)
	})
}

func (e *Engine) publishNotification(ctx context.Context, n TargetedNotification) error {
	rec := n.record()
	if err := rec.Validate(); err != nil {
		metrics.FanoutErrors.WithLabelValues(n.kind(), "validate").Inc()
		return err
	}

	var persistErr error
	if err := e.store.Create(ctx, rec); err != nil {
		metrics.FanoutErrors.WithLabelValues(n.kind(), "persist").Inc()
		persistErr = fmt.Errorf("%w: persist %s notification: %v", ErrDelivery, rec.Type, err)
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now().UTC()
		}
	} else {
		metrics.NotificationsPersisted.WithLabelValues(string(rec.Type)).Inc()
	}

	e.push(rec)
	return persistErr
}

// push sends the record to its user group, each role group and, when the type's
// policy asks for it, to admins as observers.
func (e *Engine) push(rec *models.Notification) {
	reached := 0
	if rec.TargetUserID != nil && *rec.TargetUserID != "" {
		reached += e.out.BroadcastToGroup(websocket.UserGroup(*rec.TargetUserID), EventUserNotification, rec)
	}

	adminTargeted := false
	for _, role := range rec.TargetRoles {
		if role == models.RoleAdmin {
			adminTargeted = true
		}
		reached += e.out.BroadcastToGroup(websocket.RoleGroup(role), string(role)+roleNotificationSuffix, rec)
	}

	if !adminTargeted && e.policyFor(rec.Type).AdminObserver {
		reached += e.out.BroadcastToGroup(websocket.RoleGroup(models.RoleAdmin), string(models.RoleAdmin)+roleNotificationSuffix, rec)
	}

	e.logger.Debug("notification_pushed", "notification_id", rec.ID, "type", rec.Type, "connections", reached)
}

func (e *Engine) policyFor(t models.NotificationType) Policy {
	if p, ok := e.policies[t]; ok {
		return p
	}
	return Policy{AdminObserver: true}
}

func (e *Engine) publishSnapshot(ctx context.Context, kind, event string, fetch FetchFunc) error {
	if fetch == nil {
		return fmt.Errorf("%w: %s has no fetch function", ErrValidation, event)
	}
	result, err := fetch(ctx)
	if err != nil {
		metrics.FanoutErrors.WithLabelValues(kind, "fetch").Inc()
		return fmt.Errorf("%w: fetch %s: %v", ErrDelivery, event, err)
	}
	reached := e.out.BroadcastToAll(event, result)
	e.logger.Debug("snapshot_broadcast", "event", event, "connections", reached)
	return nil
}

func (e *Engine) publishUnreadCounts(ctx context.Context, ev UnreadCounts) error {
	var errs []error

	if ev.TargetUserID != "" {
		count, err := e.store.CountUnread(ctx, models.NotificationScope{UserID: ev.TargetUserID})
		if err != nil {
			errs = append(errs, err)
		} else {
			e.out.BroadcastToGroup(websocket.UserGroup(ev.TargetUserID), EventUnreadCountUpdate,
				UnreadCountPayload{UserID: ev.TargetUserID, Count: count})
		}
	}

	for _, role := range models.UniqueRoles(ev.TargetRoles) {
		count, err := e.store.CountUnread(ctx, models.NotificationScope{Role: role})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.out.BroadcastToGroup(websocket.RoleGroup(role), EventUnreadCountUpdate,
			UnreadCountPayload{Role: role, Count: count})
	}

	if len(errs) > 0 {
		metrics.FanoutErrors.WithLabelValues(ev.kind(), "count").Inc()
		return fmt.Errorf("%w: unread counts: %w", ErrDelivery, errors.Join(errs...))
	}
	return nil
}

// CatchUp pushes notifications and the unread count to one connection only.
// Each list holds every unread record in scope plus the most recent read ones,
// newest first. With a user id it sends userNotificationsUpdate (user or role
// addressed records); it always sends roleNotificationsUpdate for the role alone.
func (e *Engine) CatchUp(ctx context.Context, connID string, identity websocket.Identity) error {
	metrics.FanoutEvents.WithLabelValues("catch_up").Inc()
	scope := models.NotificationScope{Role: identity.Role, UserID: identity.UserID}

	if identity.UserID != "" {
		records, err := e.catchUpRecords(ctx, scope)
		if err != nil {
			metrics.FanoutErrors.WithLabelValues("catch_up", "fetch").Inc()
			return fmt.Errorf("%w: catch-up for user %s: %v", ErrDelivery, identity.UserID, err)
		}
		if err := e.out.SendTo(connID, EventUserNotificationsUpdate, records); err != nil {
			return e.catchUpSendFailed(connID, err)
		}
	}

	roleRecords, err := e.catchUpRecords(ctx, models.NotificationScope{Role: identity.Role})
	if err != nil {
		metrics.FanoutErrors.WithLabelValues("catch_up", "fetch").Inc()
		return fmt.Errorf("%w: catch-up for role %s: %v", ErrDelivery, identity.Role, err)
	}
	if err := e.out.SendTo(connID, EventRoleNotificationsUpdate, roleRecords); err != nil {
		return e.catchUpSendFailed(connID, err)
	}

	count, err := e.store.CountUnread(ctx, scope)
	if err != nil {
		metrics.FanoutErrors.WithLabelValues("catch_up", "count").Inc()
		return fmt.Errorf("%w: unread count: %v", ErrDelivery, err)
	}
	if err := e.out.SendTo(connID, EventUnreadCountUpdate, UnreadCountPayload{
		UserID: identity.UserID, Role: identity.Role, Count: count,
	}); err != nil {
		return e.catchUpSendFailed(connID, err)
	}
	return nil
}

// catchUpRecords merges the unread records in scope with the recent window.
func (e *Engine) catchUpRecords(ctx context.Context, scope models.NotificationScope) ([]models.Notification, error) {
	unread, err := e.store.ListUnread(ctx, scope)
	if err != nil {
		return nil, err
	}
	recent, err := e.store.List(ctx, scope, e.catchUpLimit, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(unread))
	records := make([]models.Notification, 0, len(unread)+len(recent))
	for _, n := range unread {
		seen[n.ID] = struct{}{}
		records = append(records, n)
	}
	for _, n := range recent {
		if _, ok := seen[n.ID]; !ok {
			records = append(records, n)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// A connection that vanished before its catch-up ran is not a failure.
func (e *Engine) catchUpSendFailed(connID string, err error) error {
	if errors.Is(err, websocket.ErrUnknownConnection) {
		e.logger.Debug("catch_up_skipped", "client_id", connID, "reason", "disconnected")
		return nil
	}
	metrics.FanoutErrors.WithLabelValues("catch_up", "push").Inc()
	return fmt.Errorf("%w: catch-up push to %s: %v", ErrDelivery, connID, err)
}
