package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"festivalhub/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, cfg ClientConfig) (*Registry, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := NewRegistry(testLogger)
	router := gin.New()
	router.GET("/ws", WSHandler(registry, NewUpgrader([]string{"*"}), cfg, testLogger))

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		registry.Shutdown()
		server.Close()
	})
	return registry, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) sentFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f sentFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestWSHandler_AuthenticateAndReceiveGroupBroadcast(t *testing.T) {
	registry, url := setupServer(t, ClientConfig{})
	conn := dial(t, url)
	waitFor(t, func() bool { return registry.Count() == 1 })

	require.NoError(t, conn.WriteJSON(map[string]any{
		"event": "authenticate",
		"data":  map[string]string{"userId": "V1", "role": "vendor"},
	}))
	ack := readFrame(t, conn)
	assert.Equal(t, EventAuthenticated, ack.Event)
	assert.JSONEq(t, `{"userId":"V1","role":"vendor"}`, string(ack.Data))

	waitFor(t, func() bool { return registry.GroupSize("role:vendor") == 1 })
	assert.Equal(t, 1, registry.BroadcastToGroup("user:V1", "userNotification", map[string]string{"id": "N1"}))

	f := readFrame(t, conn)
	assert.Equal(t, "userNotification", f.Event)
	assert.JSONEq(t, `{"id":"N1"}`, string(f.Data))
}

func TestWSHandler_Ping(t *testing.T) {
	_, url := setupServer(t, ClientConfig{})
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "ping"}))
	assert.Equal(t, EventPong, readFrame(t, conn).Event)
}

func TestWSHandler_UnknownEventGetsErrorFrame(t *testing.T) {
	_, url := setupServer(t, ClientConfig{})
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "subscribe"}))
	f := readFrame(t, conn)
	assert.Equal(t, EventError, f.Event)
	assert.Contains(t, string(f.Data), "subscribe")
}

func TestWSHandler_MissingRoleClosesConnection(t *testing.T) {
	registry, url := setupServer(t, ClientConfig{})
	conn := dial(t, url)
	waitFor(t, func() bool { return registry.Count() == 1 })

	require.NoError(t, conn.WriteJSON(map[string]any{
		"event": "authenticate",
		"data":  map[string]string{"userId": "U1"},
	}))

	f := readFrame(t, conn)
	assert.Equal(t, EventError, f.Event)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	assert.True(t, errors.As(err, &closeErr), "server closes after rejecting, got %v", err)
	waitFor(t, func() bool { return registry.Count() == 0 })
}

func TestWSHandler_TokenRequired(t *testing.T) {
	verifier := func(token string) (Identity, error) {
		if token != "good" {
			return Identity{}, errors.New("bad token")
		}
		return Identity{UserID: "A1", Role: models.RoleAdmin}, nil
	}

	t.Run("matching token", func(t *testing.T) {
		registry, url := setupServer(t, ClientConfig{Verifier: verifier})
		conn := dial(t, url)

		require.NoError(t, conn.WriteJSON(map[string]any{
			"event": "authenticate",
			"data":  map[string]string{"role": "admin", "token": "good"},
		}))
		assert.Equal(t, EventAuthenticated, readFrame(t, conn).Event)
		waitFor(t, func() bool { return registry.GroupSize("user:A1") == 1 })
	})

	t.Run("claimed role differs from token", func(t *testing.T) {
		registry, url := setupServer(t, ClientConfig{Verifier: verifier})
		conn := dial(t, url)

		require.NoError(t, conn.WriteJSON(map[string]any{
			"event": "authenticate",
			"data":  map[string]string{"role": "vendor", "token": "good"},
		}))
		assert.Equal(t, EventError, readFrame(t, conn).Event)
		waitFor(t, func() bool { return registry.Count() == 0 })
	})

	t.Run("no token", func(t *testing.T) {
		registry, url := setupServer(t, ClientConfig{Verifier: verifier})
		conn := dial(t, url)

		require.NoError(t, conn.WriteJSON(map[string]any{
			"event": "authenticate",
			"data":  map[string]string{"role": "admin"},
		}))
		assert.Equal(t, EventError, readFrame(t, conn).Event)
		waitFor(t, func() bool { return registry.Count() == 0 })
	})
}

func TestWSHandler_RateLimitedFramesAreRefused(t *testing.T) {
	_, url := setupServer(t, ClientConfig{RateLimit: 0.001, RateBurst: 1})
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "ping"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"event": "ping"}))

	assert.Equal(t, EventPong, readFrame(t, conn).Event)
	f := readFrame(t, conn)
	assert.Equal(t, EventError, f.Event)
	assert.Contains(t, string(f.Data), "rate limit")
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	up := NewUpgrader([]string{"https://festival.example"})

	req := httptest.NewRequest(http.MethodGet, "http://api.example/ws", nil)
	assert.True(t, up.CheckOrigin(req), "no origin header")

	req.Header.Set("Origin", "https://festival.example")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "http://api.example")
	assert.True(t, up.CheckOrigin(req), "same host")
}
