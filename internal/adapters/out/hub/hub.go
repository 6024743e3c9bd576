// Package hub fans committed order events out to connected observers.
//
// There are two kinds of observers. Queue observers get a buffered channel
// and pull from it at their own pace (the SSE stream). Push observers are
// persistent connections the hub writes to directly (websockets). Both see
// the same events in publish order.
//
// Publish never blocks: events go into a bounded queue drained by a single
// dispatch routine started with Run. A queue observer whose buffer is full,
// or a connection whose write fails, is dropped; the publisher never learns
// about it. Events published while nobody listens are discarded.
package hub

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	DefaultQueueSize      = 256
	DefaultObserverBuffer = 64
	DefaultWriteTimeout   = 5 * time.Second
)

// Config sizes the hub. Zero values fall back to the defaults.
type Config struct {
	QueueSize      int
	ObserverBuffer int
	WriteTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.ObserverBuffer <= 0 {
		c.ObserverBuffer = DefaultObserverBuffer
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	return c
}

// Conn is the part of a websocket connection the hub needs. *websocket.Conn
// satisfies it.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Stats is a point-in-time view of the hub.
type Stats struct {
	QueueObservers int    `json:"queue_observers"`
	PushObservers  int    `json:"push_observers"`
	Pending        int    `json:"pending"`
	Dropped        uint64 `json:"dropped"`
}

// Hub is safe for concurrent use.
type Hub struct {
	cfg    Config
	logger *slog.Logger
	queue  chan order.Event

	mu      sync.Mutex
	queues  map[string]chan order.Event
	conns   map[string]Conn
	closed  bool
	done    chan struct{}
	closing sync.Once

	dropped atomic.Uint64
}

func New(cfg Config, logger *slog.Logger) *Hub {
	cfg = cfg.withDefaults()
	return &Hub{
		cfg:    cfg,
		logger: logger.With("component", "notification_hub"),
		queue:  make(chan order.Event, cfg.QueueSize),
		queues: make(map[string]chan order.Event),
		conns:  make(map[string]Conn),
		done:   make(chan struct{}),
	}
}

// Publish schedules events for delivery and returns immediately. When the
// dispatch queue is full the remaining events are dropped and logged.
func (h *Hub) Publish(events ...order.Event) {
	for i, event := range events {
		select {
		case <-h.done:
			return
		default:
		}

		select {
		case h.queue <- event:
		default:
			lost := len(events) - i
			h.dropped.Add(uint64(lost))
			h.logger.Warn("dispatch queue full, dropping events",
				"dropped", lost, "order_id", event.OrderID.String())
			return
		}
	}
}

// Subscribe registers a queue observer. The channel is closed when the
// observer falls behind, on Unsubscribe, and on Close.
func (h *Hub) Subscribe() (string, <-chan order.Event) {
	id := uuid.NewString()
	ch := make(chan order.Event, h.cfg.ObserverBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.queues[id] = ch
	h.logger.Debug("queue observer registered", "observer_id", id)
	return id, ch
}

// Unsubscribe removes a queue observer. Unknown ids are ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeQueueLocked(id)
}

// Attach registers a push observer. The hub owns conn from now on and
// closes it when it is detached or a write fails.
func (h *Hub) Attach(conn Conn) string {
	id := uuid.NewString()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = conn.Close()
		return id
	}
	h.conns[id] = conn
	h.logger.Debug("push observer registered", "observer_id", id)
	return id
}

// Detach removes and closes a push observer. Unknown ids are ignored.
func (h *Hub) Detach(id string) {
	h.mu.Lock()
	conn, ok := h.conns[id]
	delete(h.conns, id)
	h.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}

// Run dispatches queued events until ctx is done or the hub is closed. It
// must be started exactly once. When ctx ends the hub is closed.
func (h *Hub) Run(ctx context.Context) {
	h.logger.InfoContext(ctx, "notification hub started")
	defer h.logger.InfoContext(ctx, "notification hub stopped")

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return
		case <-h.done:
			return
		case event := <-h.queue:
			h.dispatch(event)
		}
	}
}

func (h *Hub) dispatch(event order.Event) {
	h.mu.Lock()
	for id, ch := range h.queues {
		select {
		case ch <- event:
		default:
			h.logger.Warn("queue observer fell behind, dropping it", "observer_id", id)
			h.removeQueueLocked(id)
		}
	}
	conns := make(map[string]Conn, len(h.conns))
	for id, conn := range h.conns {
		conns[id] = conn
	}
	h.mu.Unlock()

	// Writes happen outside the lock; only this routine writes data frames.
	for id, conn := range conns {
		if err := h.write(conn, event); err != nil {
			h.logger.Info("push observer write failed, dropping it", "observer_id", id, "error", err)
			h.Detach(id)
		}
	}
}

func (h *Hub) write(conn Conn, event order.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}

// Ping sends a control ping to every push observer and drops the ones that
// fail. WriteControl may run concurrently with the dispatcher's writes.
func (h *Hub) Ping() {
	h.mu.Lock()
	conns := make(map[string]Conn, len(h.conns))
	for id, conn := range h.conns {
		conns[id] = conn
	}
	h.mu.Unlock()

	deadline := time.Now().Add(h.cfg.WriteTimeout)
	for id, conn := range conns {
		if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			h.logger.Info("push observer ping failed, dropping it", "observer_id", id, "error", err)
			h.Detach(id)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		QueueObservers: len(h.queues),
		PushObservers:  len(h.conns),
		Pending:        len(h.queue),
		Dropped:        h.dropped.Load(),
	}
}

// Close deregisters every observer and stops Run. Later publishes are ignored.
func (h *Hub) Close() {
	h.closing.Do(func() {
		h.mu.Lock()
		h.closed = true
		for id := range h.queues {
			h.removeQueueLocked(id)
		}
		conns := h.conns
		h.conns = make(map[string]Conn)
		close(h.done)
		h.mu.Unlock()

		for _, conn := range conns {
			_ = conn.Close()
		}
	})
}

func (h *Hub) removeQueueLocked(id string) {
	ch, ok := h.queues[id]
	if !ok {
		return
	}
	delete(h.queues, id)
	close(ch)
}
