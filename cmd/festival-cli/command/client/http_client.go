package client

// http_client.go talks to the festivalhub REST API.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError carries the status and the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Login(ctx context.Context, request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", request, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, request *dto.RegisterRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", request, &result); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &result, nil
}

// Scope narrows notification queries when no token is set.
type Scope struct {
	Role   string
	UserID string
}

func (s Scope) values() url.Values {
	v := url.Values{}
	if s.Role != "" {
		v.Set("role", s.Role)
	}
	if s.UserID != "" {
		v.Set("user_id", s.UserID)
	}
	return v
}

func (c *HTTPClient) ListNotifications(ctx context.Context, scope Scope, limit, skip int) ([]models.Notification, error) {
	v := scope.values()
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}

	var result []models.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications?"+v.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) UnreadCount(ctx context.Context, scope Scope) (int64, error) {
	var result dto.UnreadCountResponse
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count?"+scope.values().Encode(), nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *HTTPClient) MarkRead(ctx context.Context, id string, scope Scope) (*models.Notification, error) {
	var result models.Notification
	path := "/api/notifications/" + url.PathEscape(id) + "/read?" + scope.values().Encode()
	if err := c.do(ctx, http.MethodPatch, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MarkAllRead(ctx context.Context, scope Scope) (int64, error) {
	var result dto.MarkAllReadResponse
	if err := c.do(ctx, http.MethodPatch, "/api/notifications/read-all?"+scope.values().Encode(), nil, &result); err != nil {
		return 0, err
	}
	return result.Updated, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
			payload.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
