package fanout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"festivalhub/internal/microservices/http-api/models"
	"festivalhub/internal/microservices/websocket"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// memoryStore is an in-memory NotificationStore with the repository's targeting rules.
type memoryStore struct {
	mu        sync.Mutex
	records   []models.Notification
	seq       int
	createErr error
	listErr   error
}

func (s *memoryStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.seq++
	n.ID = fmt.Sprintf("N%d", s.seq)
	n.Timestamp = time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC)
	s.records = append(s.records, *n)
	return nil
}

func (s *memoryStore) matching(scope models.NotificationScope, unreadOnly bool) []models.Notification {
	var out []models.Notification
	for _, n := range s.records {
		if unreadOnly && n.Read {
			continue
		}
		if n.AddressedTo(scope) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (s *memoryStore) List(_ context.Context, scope models.NotificationScope, limit, skip int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	all := s.matching(scope, false)
	if skip >= len(all) {
		return []models.Notification{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *memoryStore) ListUnread(_ context.Context, scope models.NotificationScope) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.matching(scope, true), nil
}

func (s *memoryStore) CountUnread(_ context.Context, scope models.NotificationScope) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return 0, s.listErr
	}
	return int64(len(s.matching(scope, true))), nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// received is one decoded outbound frame.
type received struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// recordingConn is a websocket.Connection that keeps every frame it is sent.
type recordingConn struct {
	mu     sync.Mutex
	frames []received
	closed bool
}

func (c *recordingConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrConnectionClosed
	}
	var r received
	if err := json.Unmarshal(frame, &r); err != nil {
		return err
	}
	c.frames = append(c.frames, r)
	return nil
}

func (c *recordingConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *recordingConn) events(name string) []received {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []received
	for _, f := range c.frames {
		if f.Event == name {
			out = append(out, f)
		}
	}
	return out
}

// countingBroadcaster records group broadcasts on the way to the real registry.
type countingBroadcaster struct {
	*websocket.Registry
	mu     sync.Mutex
	groups map[string]int
	all    int
}

func newCountingBroadcaster(r *websocket.Registry) *countingBroadcaster {
	return &countingBroadcaster{Registry: r, groups: make(map[string]int)}
}

func (b *countingBroadcaster) BroadcastToGroup(group, event string, payload any) int {
	b.mu.Lock()
	b.groups[group]++
	b.mu.Unlock()
	return b.Registry.BroadcastToGroup(group, event, payload)
}

func (b *countingBroadcaster) BroadcastToAll(event string, payload any) int {
	b.mu.Lock()
	b.all++
	b.mu.Unlock()
	return b.Registry.BroadcastToAll(event, payload)
}

func (b *countingBroadcaster) groupCalls(group string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.groups[group]
}

func (b *countingBroadcaster) totalGroupCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.groups {
		total += n
	}
	return total
}

var errStoreDown = errors.New("store unavailable")
