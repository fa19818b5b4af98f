package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"festivalhub/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const publishTimeout = 2 * time.Second

// bridgeEnvelope is the message shape on the shared Redis channel.
// An empty Group means "every connection".
type bridgeEnvelope struct {
	Origin string          `json:"origin"`
	Group  string          `json:"group,omitempty"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
}

// RedisBridge delivers broadcasts to the local Registry and mirrors them on a Redis
// Pub/Sub channel so other API instances replay them into their own registries.
// Direct sends stay local because connection ids are process-local.
type RedisBridge struct {
	local    *Registry
	client   *redis.Client
	channel  string
	instance string
	breaker  *gobreaker.CircuitBreaker[int64]
	logger   *slog.Logger
}

func NewRedisBridge(local *Registry, client *redis.Client, channel string, logger *slog.Logger) *RedisBridge {
	if logger == nil {
		logger = slog.Default()
	}
	b := &RedisBridge{
		local:    local,
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		logger:   logger,
	}
	b.breaker = gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        "redis-bridge",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BridgeCircuitState.Set(float64(to))
			logger.Warn("bridge_circuit_state_changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return b
}

// BroadcastToGroup delivers locally, then mirrors to the other instances.
func (b *RedisBridge) BroadcastToGroup(group, event string, payload any) int {
	n := b.local.BroadcastToGroup(group, event, payload)
	b.publish(group, event, payload)
	return n
}

// BroadcastToAll delivers locally, then mirrors to the other instances.
func (b *RedisBridge) BroadcastToAll(event string, payload any) int {
	n := b.local.BroadcastToAll(event, payload)
	b.publish("", event, payload)
	return n
}

func (b *RedisBridge) SendTo(connID, event string, payload any) error {
	return b.local.SendTo(connID, event, payload)
}

func (b *RedisBridge) publish(group, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		metrics.BridgeMessages.WithLabelValues("out", "encode_error").Inc()
		b.logger.Error("bridge_encode_failed", "event", event, "error", err)
		return
	}
	body, err := json.Marshal(bridgeEnvelope{Origin: b.instance, Group: group, Event: event, Data: data})
	if err != nil {
		metrics.BridgeMessages.WithLabelValues("out", "encode_error").Inc()
		b.logger.Error("bridge_encode_failed", "event", event, "error", err)
		return
	}

	_, err = b.breaker.Execute(func() (int64, error) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		return b.client.Publish(ctx, b.channel, body).Result()
	})
	if err != nil {
		result := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "circuit_open"
		}
		metrics.BridgeMessages.WithLabelValues("out", result).Inc()
		b.logger.Warn("bridge_publish_failed", "event", event, "group", group, "error", err)
		return
	}
	metrics.BridgeMessages.WithLabelValues("out", "ok").Inc()
}

// Serve subscribes to the channel and replays remote broadcasts locally until ctx ends.
// It satisfies suture.Service, so a dropped subscription is restarted by the supervisor.
func (b *RedisBridge) Serve(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// Ensure subscription is established before reading messages
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.logger.Info("bridge_subscribed", "channel", b.channel, "instance", b.instance)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			b.handle(msg.Payload)
		}
	}
}

func (b *RedisBridge) handle(payload string) {
	var env bridgeEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		metrics.BridgeMessages.WithLabelValues("in", "decode_error").Inc()
		b.logger.Warn("bridge_decode_failed", "error", err)
		return
	}
	if env.Origin == b.instance || env.Event == "" {
		return
	}

	data := env.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if env.Group == "" {
		b.local.BroadcastToAll(env.Event, data)
	} else {
		b.local.BroadcastToGroup(env.Group, env.Event, data)
	}
	metrics.BridgeMessages.WithLabelValues("in", "ok").Inc()
}

func (b *RedisBridge) String() string {
	return "redis-bridge"
}
