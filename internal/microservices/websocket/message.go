package websocket

import (
	"encoding/json"
	"time"

	"festivalhub/internal/microservices/http-api/models"
)

// Inbound events
const (
	EventAuthenticate = "authenticate"
	EventPing         = "ping"
)

// Outbound control events
const (
	EventAuthenticated = "authenticated"
	EventPong          = "pong"
	EventError         = "error"
)

// Frame is the envelope of every server to client message.
type Frame struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// EncodeFrame marshals one outbound frame. The result is shared by every recipient of a broadcast.
func EncodeFrame(event string, payload any) ([]byte, error) {
	return json.Marshal(Frame{
		Event:     event,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})
}

// InboundMessage is a client to server frame. Data is decoded per event.
type InboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AuthenticatePayload is the body of an authenticate frame.
type AuthenticatePayload struct {
	UserID string      `json:"userId,omitempty"`
	Role   models.Role `json:"role"`
	Token  string      `json:"token,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Identity is what a connection claims to be after authenticate.
type Identity struct {
	UserID string      `json:"userId,omitempty"`
	Role   models.Role `json:"role"`
}

// Groups returns the delivery groups an identity belongs to.
func (id Identity) Groups() []string {
	groups := []string{RoleGroup(id.Role)}
	if id.UserID != "" {
		groups = append(groups, UserGroup(id.UserID))
	}
	return groups
}

// RoleGroup is the delivery group key of everyone authenticated with role r.
func RoleGroup(r models.Role) string {
	return "role:" + string(r)
}

// UserGroup is the delivery group key of every connection of one user.
func UserGroup(userID string) string {
	return "user:" + userID
}
