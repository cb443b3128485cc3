// Package events moves notifications through Redis: a stream for queued
// delivery and per-user pub/sub channels for live WebSocket clients.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultStream = "notifications:stream"
	DefaultGroup  = "notification-workers"
)

// UserChannel is the pub/sub channel carrying live notifications for one user.
func UserChannel(userID string) string {
	return "notifications:" + userID
}

// LiveMessage is the JSON frame pushed to WebSocket subscribers.
type LiveMessage struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification"`
}

// StreamNotifier queues notification events on a Redis stream for the worker pool.
type StreamNotifier struct {
	rdb    *redis.Client
	stream string
}

func NewStreamNotifier(rdb *redis.Client, stream string) *StreamNotifier {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamNotifier{rdb: rdb, stream: stream}
}

func (n *StreamNotifier) Notify(ctx context.Context, ev services.NotificationEvent) error {
	const op = "StreamNotifier.Notify"

	values, err := EncodeEvent(ev)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode event", err)
	}
	if err := n.rdb.XAdd(ctx, &redis.XAddArgs{Stream: n.stream, Values: values}).Err(); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to enqueue notification", err)
	}
	return nil
}

// EncodeEvent flattens an event into stream field values.
func EncodeEvent(ev services.NotificationEvent) (map[string]any, error) {
	values := map[string]any{
		"user_id": ev.UserID,
		"type":    ev.Type,
		"message": ev.Message,
		"ts_unix": fmt.Sprintf("%d", time.Now().UTC().Unix()),
	}
	if len(ev.Data) > 0 {
		b, err := json.Marshal(ev.Data)
		if err != nil {
			return nil, err
		}
		values["data"] = string(b)
	}
	return values, nil
}

// DecodeEvent is the inverse of EncodeEvent.
func DecodeEvent(values map[string]any) (services.NotificationEvent, error) {
	get := func(k string) string {
		v, ok := values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	ev := services.NotificationEvent{
		UserID:  get("user_id"),
		Type:    get("type"),
		Message: get("message"),
	}
	if ev.UserID == "" || ev.Type == "" {
		return ev, errors.New("event is missing user_id or type")
	}
	if raw := get("data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &ev.Data); err != nil {
			return ev, fmt.Errorf("decode data: %w", err)
		}
	}
	return ev, nil
}

// RedisPublisher pushes stored notifications to the owner's channel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	b, err := json.Marshal(LiveMessage{Type: "notification", Notification: n})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, UserChannel(n.UserID), string(b)).Err()
}
