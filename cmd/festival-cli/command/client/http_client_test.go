package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"festivalhub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_LoginSendsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)

		_ = json.NewEncoder(w).Encode(dto.AuthResponse{
			AccessToken: "tok",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			User:        &dto.UserResponse{ID: "U1", Role: "vendor"},
		})
	}))
	defer server.Close()

	resp, err := NewHTTPClient(server.URL).Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "U1", resp.User.ID)
}

func TestHTTPClient_NotificationQueriesCarryScopeAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/notifications":
			assert.Equal(t, "vendor", r.URL.Query().Get("role"))
			assert.Equal(t, "V1", r.URL.Query().Get("user_id"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[{"id":"N1","type":"status_update","message":"approved","read":false,"targetRoles":["vendor"]}]`))
		case "/api/notifications/read-all":
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"updated":3}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL)
	items, err := c.ListNotifications(context.Background(), Scope{Role: "vendor", UserID: "V1"}, 5, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "N1", items[0].ID)

	c.SetToken("secret")
	updated, err := c.MarkAllRead(context.Background(), Scope{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestHTTPClient_ErrorBodyIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad request: role or user_id is required"}`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).UnreadCount(context.Background(), Scope{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "role or user_id")
}
