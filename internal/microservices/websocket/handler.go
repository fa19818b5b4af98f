package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NewUpgrader accepts same-origin requests, requests without an Origin header and the
// listed origins. A "*" entry allows any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin) {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// WSHandler upgrades the request and registers an anonymous connection.
// Identity is established afterwards with an authenticate frame.
func WSHandler(registry *Registry, upgrader *websocket.Upgrader, cfg ClientConfig, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error
			logger.Warn("ws_upgrade_failed", "remote_addr", c.ClientIP(), "error", err)
			return
		}

		client := NewClient(conn, registry, cfg, logger)
		client.Start()
	}
}
