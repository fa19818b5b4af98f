package client

// ws_client.go listens on the festivalhub websocket and prints every pushed event.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Identity struct {
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role"`
	Token  string `json:"token,omitempty"`
}

// WebsocketURL turns the API base URL into the /ws endpoint.
func WebsocketURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Listen authenticates and streams frames to out until ctx ends or the server closes.
// A ping is sent every keepAlive so idle proxies keep the connection open.
func Listen(ctx context.Context, wsURL string, identity Identity, out io.Writer, keepAlive time.Duration) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	auth, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(Frame{Event: "authenticate", Data: auth}); err != nil {
		return err
	}

	frames := make(chan Frame)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- f:
			case <-done:
				return
			}
		}
	}()

	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return nil
		case <-ticker.C:
			if err := conn.WriteJSON(Frame{Event: "ping"}); err != nil {
				return err
			}
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		case f := <-frames:
			PrintFrame(out, f)
			if f.Event == "error" && !strings.Contains(string(f.Data), "rate limit") {
				return fmt.Errorf("server rejected connection: %s", f.Data)
			}
		}
	}
}

func PrintFrame(out io.Writer, f Frame) {
	switch {
	case f.Event == "pong":
		return
	case f.Event == "error":
		color.New(color.FgRed).Fprintf(out, "✗ %s\n", f.Data)
	case f.Event == "authenticated":
		color.New(color.FgGreen).Fprintf(out, "✓ authenticated %s\n", f.Data)
	case strings.HasSuffix(f.Event, "Notification"):
		var n struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(f.Data, &n)
		color.New(color.FgYellow).Fprintf(out, "🔔 [%s] %s\n", n.Type, n.Message)
	default:
		color.New(color.FgCyan).Fprintf(out, "%s ", f.Event)
		fmt.Fprintf(out, "%s\n", f.Data)
	}
}
