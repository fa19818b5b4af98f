package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const ( // ping pong(2-way heartbeat) to keep connection alive
	WriteWait      = 10 * time.Second    // max time to write a frame to the peer
	PongWait       = 60 * time.Second    // no pong within this window = dead connection
	PingPeriod     = (PongWait * 9) / 10 // ping before PongWait expires, 10% slack for jitter
	MaxMessageSize = 4096                // inbound frames are tiny control messages
)

// TokenVerifier resolves a bearer token into the identity it was issued for.
type TokenVerifier func(token string) (Identity, error)

// ClientConfig tunes one connection.
type ClientConfig struct {
	SendBuffer int
	RateLimit  rate.Limit
	RateBurst  int
	// Verifier, when set, makes the authenticate token mandatory.
	Verifier TokenVerifier
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.SendBuffer < 1 {
		c.SendBuffer = 256
	}
	if c.RateLimit <= 0 {
		c.RateLimit = rate.Limit(10)
	}
	if c.RateBurst < 1 {
		c.RateBurst = 20
	}
	return c
}

// Client is one gorilla websocket connection registered with the Registry.
type Client struct {
	id       string
	conn     *websocket.Conn
	registry *Registry
	limiter  *rate.Limiter
	verifier TokenVerifier
	logger   *slog.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient wraps an upgraded connection. Call Start to register and run it.
func NewClient(conn *websocket.Conn, registry *Registry, cfg ClientConfig, logger *slog.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		conn:     conn,
		registry: registry,
		limiter:  rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		verifier: cfg.Verifier,
		logger:   logger,
		send:     make(chan []byte, cfg.SendBuffer),
	}
}

// ID returns the registry-assigned connection id.
func (c *Client) ID() string {
	return c.id
}

// Send enqueues a frame without blocking.
func (c *Client) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops the write pump after it flushes what is already queued.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Start registers the client and launches its pumps.
func (c *Client) Start() {
	c.id = c.registry.Connect(c)
	if c.id == "" {
		_ = c.conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump decodes inbound frames until the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.registry.Disconnect(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(PongWait)); err != nil {
		c.logger.Error("ws_set_read_deadline_failed", "client_id", c.id, "error", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("ws_unexpected_close", "client_id", c.id, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.sendError("rate limit exceeded")
			continue
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("malformed frame")
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg InboundMessage) {
	switch msg.Event {
	case EventAuthenticate:
		var payload AuthenticatePayload
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				c.registry.Reject(c.id, fmt.Errorf("%w: malformed payload", ErrInvalidAuthentication))
				return
			}
		}
		identity, err := c.resolveIdentity(payload)
		if err != nil {
			c.registry.Reject(c.id, err)
			return
		}
		_ = c.registry.Authenticate(c.id, identity)

	case EventPing:
		if frame, err := EncodeFrame(EventPong, nil); err == nil {
			_ = c.Send(frame)
		}

	default:
		c.sendError(fmt.Sprintf("unknown event %q", msg.Event))
	}
}

// resolveIdentity checks a claimed identity against the token when tokens are required.
func (c *Client) resolveIdentity(p AuthenticatePayload) (Identity, error) {
	claimed := Identity{UserID: p.UserID, Role: p.Role}
	if c.verifier == nil {
		return claimed, nil
	}
	if p.Token == "" {
		return Identity{}, fmt.Errorf("%w: token required", ErrInvalidAuthentication)
	}
	verified, err := c.verifier(p.Token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidAuthentication, err)
	}
	if claimed.Role != "" && claimed.Role != verified.Role {
		return Identity{}, fmt.Errorf("%w: role does not match token", ErrInvalidAuthentication)
	}
	if claimed.UserID != "" && claimed.UserID != verified.UserID {
		return Identity{}, fmt.Errorf("%w: user does not match token", ErrInvalidAuthentication)
	}
	return verified, nil
}

func (c *Client) sendError(message string) {
	if frame, err := EncodeFrame(EventError, errorPayload{Message: message}); err == nil {
		_ = c.Send(frame)
	}
}

// writePump flushes queued frames and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
				return
			}
			if !ok {
				// Registry closed the client
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("ws_write_failed", "client_id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
