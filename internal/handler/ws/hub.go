package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	drepo "StockPulse/internal/domain/repository"
	applogger "StockPulse/pkg/logger"
)

const sendBufferSize = 64

// Wildcard subscribes a connection to every symbol.
const Wildcard = "*"

// connection is one registered stream consumer. The send channel is the only
// delivery path, so one slow consumer never blocks another.
type connection struct {
	id     string
	send   chan []byte
	mu     sync.RWMutex
	subs   map[string]bool
	closed bool
}

func (c *connection) interested(symbol string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subs[Wildcard] || c.subs[symbol]
}

// Hub is the registry of stream connections and their symbol interest sets.
// All operations are safe for concurrent use. The hub is transport-agnostic;
// the WebSocket handler drains each connection's channel.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]*connection
	metrics drepo.Metrics
	log     *applogger.Logger
}

// NewHub creates an empty hub.
func NewHub(metrics drepo.Metrics, log *applogger.Logger) *Hub {
	return &Hub{
		conns:   make(map[string]*connection),
		metrics: metrics,
		log:     log,
	}
}

// Connect registers a new connection and returns its id and receive channel.
// The channel is closed on Disconnect.
func (h *Hub) Connect() (string, <-chan []byte) {
	c := &connection{
		id:   uuid.NewString(),
		send: make(chan []byte, sendBufferSize),
		subs: make(map[string]bool),
	}

	h.mu.Lock()
	h.conns[c.id] = c
	n := len(h.conns)
	h.mu.Unlock()

	h.setSubscribers(n)
	if h.log != nil {
		h.log.Info("stream client connected",
			applogger.String("conn", c.id),
			applogger.Int("total", n),
		)
	}
	return c.id, c.send
}

// Disconnect removes a connection and closes its channel. Unknown ids are a
// no-op, so transport teardown can race a broadcast safely.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	c, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	n := len(h.conns)
	h.mu.Unlock()

	if !ok {
		return
	}

	// Waits out any in-flight deliver before the channel closes.
	c.mu.Lock()
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	h.setSubscribers(n)
	if h.log != nil {
		h.log.Info("stream client disconnected",
			applogger.String("conn", id),
			applogger.Int("total", n),
		)
	}
}

// Subscribe adds symbols to the connection's interest set. Duplicates are
// idempotent. Returns false for unknown connections.
func (h *Hub) Subscribe(id string, symbols []string) bool {
	c := h.get(id)
	if c == nil {
		return false
	}
	c.mu.Lock()
	for _, s := range symbols {
		if s == "" {
			continue
		}
		c.subs[s] = true
	}
	c.mu.Unlock()
	return true
}

// Unsubscribe removes symbols from the connection's interest set. Symbols
// never subscribed are ignored.
func (h *Hub) Unsubscribe(id string, symbols []string) bool {
	c := h.get(id)
	if c == nil {
		return false
	}
	c.mu.Lock()
	for _, s := range symbols {
		delete(c.subs, s)
	}
	c.mu.Unlock()
	return true
}

// Send delivers a payload to one connection, dropping it when the buffer is
// full. Used for acks and per-connection errors.
func (h *Hub) Send(id string, payload interface{}) {
	c := h.get(id)
	if c == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.deliver(c, data)
}

// Broadcast delivers a payload to every connection interested in the symbol.
// A full send buffer drops the message for that connection only; nobody gets
// disconnected for being slow.
func (h *Hub) Broadcast(symbol string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.log != nil {
			h.log.Error("broadcast marshal failed", applogger.Error(err))
		}
		return
	}

	h.mu.RLock()
	targets := make([]*connection, 0, len(h.conns))
	for _, c := range h.conns {
		if c.interested(symbol) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, data)
	}
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) get(id string) *connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[id]
}

func (h *Hub) deliver(c *connection, data []byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		if h.log != nil {
			h.log.Warn("dropping message for slow stream client",
				applogger.String("conn", c.id),
			)
		}
	}
}

func (h *Hub) setSubscribers(n int) {
	if h.metrics != nil {
		h.metrics.SetSubscribers(n)
	}
}
