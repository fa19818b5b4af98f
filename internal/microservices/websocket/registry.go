package websocket

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"festivalhub/internal/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidAuthentication = errors.New("invalid authentication")
	ErrUnknownConnection     = errors.New("unknown connection")
	ErrSendBufferFull        = errors.New("send buffer full")
	ErrConnectionClosed      = errors.New("connection closed")
)

// Connection is the transport side of one live client. Send must not block.
type Connection interface {
	Send(frame []byte) error
	Close()
}

// AuthenticatedHook runs after a connection has joined its groups.
type AuthenticatedHook func(connID string, identity Identity)

type entry struct {
	conn     Connection
	identity *Identity
	groups   map[string]struct{}
}

// Registry maps live connections to the delivery groups they receive broadcasts for.
// Every connect, authenticate and disconnect is a single critical section, so no
// partial membership is ever visible to a broadcast.
type Registry struct {
	mu       sync.RWMutex
	conns    map[string]*entry
	groups   map[string]map[string]struct{}
	hooks    []AuthenticatedHook
	shutdown bool
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		conns:  make(map[string]*entry),
		groups: make(map[string]map[string]struct{}),
		logger: logger,
	}
}

// OnAuthenticated registers a hook fired after every successful authenticate.
func (r *Registry) OnAuthenticated(hook AuthenticatedHook) {
	r.mu.Lock()
	r.hooks = append(r.hooks, hook)
	r.mu.Unlock()
}

// Connect registers an anonymous connection and returns its id.
// After Shutdown the connection is closed straight away and the id is empty.
func (r *Registry) Connect(conn Connection) string {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		conn.Close()
		return ""
	}
	id := uuid.NewString()
	r.conns[id] = &entry{conn: conn, groups: make(map[string]struct{})}
	total := len(r.conns)
	r.mu.Unlock()

	metrics.WSConnectionsActive.Inc()
	r.logger.Debug("client_added", "client_id", id, "total_clients", total)
	return id
}

// Authenticate joins the connection to role:<role> and, when a user id is given,
// user:<userId>. A previous identity's groups are left first, so re-authenticating
// with the same identity is a no-op. A missing or unknown role drops the connection.
func (r *Registry) Authenticate(connID string, identity Identity) error {
	if !identity.Role.Valid() {
		err := fmt.Errorf("%w: role %q is not allowed", ErrInvalidAuthentication, identity.Role)
		r.Reject(connID, err)
		return err
	}

	r.mu.Lock()
	e, ok := r.conns[connID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownConnection
	}
	for group := range e.groups {
		r.leaveLocked(group, connID)
	}
	e.groups = make(map[string]struct{})
	for _, group := range identity.Groups() {
		e.groups[group] = struct{}{}
		members, ok := r.groups[group]
		if !ok {
			members = make(map[string]struct{})
			r.groups[group] = members
		}
		members[connID] = struct{}{}
	}
	id := identity
	e.identity = &id
	conn := e.conn
	hooks := append([]AuthenticatedHook(nil), r.hooks...)
	r.mu.Unlock()

	metrics.WSAuthentications.WithLabelValues("ok").Inc()
	r.logger.Info("client_authenticated", "client_id", connID, "role", identity.Role, "user_id", identity.UserID)

	if frame, err := EncodeFrame(EventAuthenticated, identity); err == nil {
		_ = conn.Send(frame)
	}
	for _, hook := range hooks {
		hook(connID, identity)
	}
	return nil
}

// Reject tells the client why and drops it. Used for every failed authenticate.
func (r *Registry) Reject(connID string, reason error) {
	metrics.WSAuthentications.WithLabelValues("rejected").Inc()
	r.logger.Warn("client_rejected", "client_id", connID, "error", reason)

	r.mu.RLock()
	e, ok := r.conns[connID]
	r.mu.RUnlock()
	if ok {
		if frame, err := EncodeFrame(EventError, errorPayload{Message: reason.Error()}); err == nil {
			_ = e.conn.Send(frame)
		}
	}
	r.Disconnect(connID)
}

// Disconnect removes the connection and all of its memberships. Unknown ids are ignored.
func (r *Registry) Disconnect(connID string) {
	r.mu.Lock()
	e, ok := r.conns[connID]
	if !ok {
		r.mu.Unlock()
		return
	}
	for group := range e.groups {
		r.leaveLocked(group, connID)
	}
	delete(r.conns, connID)
	total := len(r.conns)
	r.mu.Unlock()

	e.conn.Close()
	metrics.WSConnectionsActive.Dec()
	r.logger.Debug("client_removed", "client_id", connID, "total_clients", total)
}

func (r *Registry) leaveLocked(group, connID string) {
	members, ok := r.groups[group]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.groups, group)
	}
}

// BroadcastToGroup delivers to every member of group and returns how many frames were enqueued.
// An empty or unknown group is a no-op.
func (r *Registry) BroadcastToGroup(group, event string, payload any) int {
	r.mu.RLock()
	members := r.groups[group]
	targets := make([]Connection, 0, len(members))
	for connID := range members {
		targets = append(targets, r.conns[connID].conn)
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		return 0
	}
	return r.deliver("group", group, event, payload, targets)
}

// BroadcastToAll delivers to every live connection, authenticated or not.
func (r *Registry) BroadcastToAll(event string, payload any) int {
	r.mu.RLock()
	targets := make([]Connection, 0, len(r.conns))
	for _, e := range r.conns {
		targets = append(targets, e.conn)
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		return 0
	}
	return r.deliver("all", "*", event, payload, targets)
}

// SendTo pushes one frame to a single connection.
func (r *Registry) SendTo(connID, event string, payload any) error {
	r.mu.RLock()
	e, ok := r.conns[connID]
	r.mu.RUnlock()
	if !ok {
		return ErrUnknownConnection
	}

	frame, err := EncodeFrame(event, payload)
	if err != nil {
		metrics.WSDeliveryFailures.WithLabelValues("direct").Inc()
		return fmt.Errorf("encode %s: %w", event, err)
	}
	if err := e.conn.Send(frame); err != nil {
		metrics.WSDeliveryFailures.WithLabelValues("direct").Inc()
		return err
	}
	metrics.WSFramesDelivered.WithLabelValues("direct").Inc()
	return nil
}

func (r *Registry) deliver(scope, target, event string, payload any, targets []Connection) int {
	frame, err := EncodeFrame(event, payload)
	if err != nil {
		metrics.WSDeliveryFailures.WithLabelValues(scope).Add(float64(len(targets)))
		r.logger.Error("broadcast_encode_failed", "event", event, "target", target, "error", err)
		return 0
	}

	delivered := 0
	for _, conn := range targets {
		if err := conn.Send(frame); err != nil {
			metrics.WSDeliveryFailures.WithLabelValues(scope).Inc()
			r.logger.Debug("broadcast_delivery_failed", "event", event, "target", target, "error", err)
			continue
		}
		delivered++
	}
	metrics.WSFramesDelivered.WithLabelValues(scope).Add(float64(delivered))
	return delivered
}

// Identity returns what a connection authenticated as.
func (r *Registry) Identity(connID string) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok || e.identity == nil {
		return Identity{}, false
	}
	return *e.identity, true
}

// GroupSize reports the number of connections in a group.
func (r *Registry) GroupSize(group string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[group])
}

// Count reports the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Shutdown closes every connection and refuses new ones.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	r.shutdown = true
	conns := make([]Connection, 0, len(r.conns))
	for _, e := range r.conns {
		conns = append(conns, e.conn)
	}
	r.conns = make(map[string]*entry)
	r.groups = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	metrics.WSConnectionsActive.Sub(float64(len(conns)))
	r.logger.Info("registry_shutdown", "closed_clients", len(conns))
}
