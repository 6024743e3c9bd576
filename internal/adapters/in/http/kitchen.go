package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	sseRetryMillis   = 2000
	socketReadLimit  = 512
	socketPongWindow = 90 * time.Second
)

// KitchenStream handles GET /api/v1/kitchen/stream. Each committed order
// event becomes one "data:" message holding the event as JSON. The stream
// ends when the client leaves or the hub drops the observer; browsers
// reconnect on their own after the advertised retry delay.
func (s *Server) KitchenStream(ctx echo.Context) error {
	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	id, events := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(id)

	logger := s.logger.With("observer_id", id)
	logger.Info("kitchen stream opened")

	fmt.Fprint(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: %d\n\n", sseRetryMillis)
	w.Flush()

	ticker := time.NewTicker(s.keepalive)
	defer ticker.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			logger.Info("kitchen stream closed by client")
			return nil

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return nil
			}
			w.Flush()

		case event, ok := <-events:
			if !ok {
				logger.Info("kitchen stream dropped by hub")
				return nil
			}

			payload, err := json.Marshal(event)
			if err != nil {
				logger.Error("failed to encode order event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// KitchenSocket handles GET /api/v1/kitchen/ws. The hub writes events to the
// connection; incoming messages are read and discarded so pong and close
// frames get processed.
func (s *Server) KitchenSocket(ctx echo.Context) error {
	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return nil
	}

	id := s.notifier.Attach(conn)
	defer s.notifier.Detach(id)
	s.logger.Info("kitchen socket opened", "observer_id", id)

	conn.SetReadLimit(socketReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(socketPongWindow))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketPongWindow))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			s.logger.Info("kitchen socket closed", "observer_id", id, "error", err)
			return nil
		}
	}
}
