package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	applogger "StockPulse/pkg/logger"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins. In production, restrict this to known origins.
		return true
	},
}

// Handler upgrades HTTP requests to stream connections on the hub.
type Handler struct {
	hub *Hub
	log *applogger.Logger
}

// NewHandler creates the streaming transport handler.
func NewHandler(hub *Hub, log *applogger.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

// ack is the reply to a subscription management message.
type ack struct {
	Type    string   `json:"type"`
	Symbols []string `json:"symbols,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		if h.log != nil {
			h.log.Error("ws upgrade failed", applogger.Error(err))
		}
		return nil
	}

	id, recv := h.hub.Connect()

	go h.writePump(conn, recv)
	go h.readPump(conn, id)
	return nil
}

// readPump consumes subscription management frames until the connection
// drops. A malformed frame earns an error reply on this connection only; the
// connection stays open.
func (h *Handler) readPump(conn *websocket.Conn, id string) {
	defer func() {
		h.hub.Disconnect(id)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				if h.log != nil {
					h.log.Warn("ws unexpected close", applogger.Error(err))
				}
			}
			return
		}

		var sub models.Subscription
		if err := json.Unmarshal(message, &sub); err != nil {
			h.hub.Send(id, ack{Type: "error", Message: "invalid message format"})
			continue
		}

		switch sub.Action {
		case "subscribe":
			h.hub.Subscribe(id, sub.Symbols)
			h.hub.Send(id, ack{Type: "subscription_success", Symbols: sub.Symbols})
		case "unsubscribe":
			h.hub.Unsubscribe(id, sub.Symbols)
			h.hub.Send(id, ack{Type: "unsubscribe_success", Symbols: sub.Symbols})
		default:
			h.hub.Send(id, ack{Type: "error", Message: "unknown action: " + sub.Action})
		}
	}
}

// writePump drains the hub's channel onto the socket and keeps the
// connection alive with pings. Exits when the hub closes the channel or a
// write fails.
func (h *Handler) writePump(conn *websocket.Conn, recv <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-recv:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
