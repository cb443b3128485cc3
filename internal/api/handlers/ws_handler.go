package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/events"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

type WSHandler struct {
	notifications services.NotificationService
	redis         *redis.Client
	upgrader      websocket.Upgrader
}

// NewWSHandler builds the live notification endpoint. A nil checkOrigin keeps
// the upgrader's same-host default.
func NewWSHandler(notifications services.NotificationService, rdb *redis.Client, checkOrigin func(r *http.Request) bool) *WSHandler {
	return &WSHandler{
		notifications: notifications,
		redis:         rdb,
		upgrader:      websocket.Upgrader{CheckOrigin: checkOrigin},
	}
}

// AllowedOrigins accepts upgrades without an Origin header, from the server's
// own host, or from one of origins. "*" allows any origin, matching CORS.
func AllowedOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	anyOrigin := false
	for _, o := range origins {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		if o == "*" {
			anyOrigin = true
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || anyOrigin {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		return allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // mark_read | mark_all_read | ping
	ID   string `json:"id"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.writeText(b)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

func wsError(err error) gin.H {
	code, msg := utils.CodeInternal, "internal error"
	var ae *utils.AppError
	if errors.As(err, &ae) {
		code, msg = ae.Code, ae.Message
	}
	return gin.H{"type": "error", "code": code, "message": msg}
}

// Notifications streams the caller's new notifications and accepts read receipts.
func (h *WSHandler) Notifications(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if h.redis == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "WSHandler.Notifications", "live notifications are disabled", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe Redis -> WS
	pubsub := h.redis.Subscribe(ctx, events.UserChannel(actor.ID))
	defer pubsub.Close()

	// reader: read receipts from the client
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeJSON(gin.H{"type": "error", "code": utils.CodeInvalidArgument, "message": "invalid json"})
				continue
			}

			switch msg.Type {
			case "mark_read":
				if err := h.notifications.MarkAsRead(ctx, actor, msg.ID); err != nil {
					_ = wc.writeJSON(wsError(err))
					continue
				}
				_ = wc.writeJSON(gin.H{"type": "marked_read", "id": msg.ID})

			case "mark_all_read":
				n, err := h.notifications.MarkAllAsRead(ctx, actor)
				if err != nil {
					_ = wc.writeJSON(wsError(err))
					continue
				}
				_ = wc.writeJSON(gin.H{"type": "marked_all_read", "updated": n})

			case "ping":
				_ = wc.writeJSON(gin.H{"type": "pong"})

			default:
				_ = wc.writeJSON(gin.H{"type": "error", "code": utils.CodeInvalidArgument, "message": "unknown message type"})
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	msgs := pubsub.Channel()

	// writer: Redis Pub/Sub -> WS
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := wc.ping(); err != nil {
				return
			}
		case m, ok := <-msgs:
			if !ok {
				return
			}
			// forward as-is, publishers send JSON
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
