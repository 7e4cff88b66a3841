package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	go_json "github.com/goccy/go-json"
)

const (
	sseHeartbeatInterval = 30 * time.Second
	sseWriteTimeout      = 45 * time.Second
)

// alertStream is the push channel: an SSE stream fed by the notification hub
// and the readings fan-out. Closing the connection tears down both
// subscriptions.
func (s *Server) alertStream(c *gin.Context) {
	w := c.Writer
	ctx := c.Request.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	alerts, unsubscribeAlerts := s.hub.Subscribe()
	defer unsubscribeAlerts()

	readings, unsubscribeReadings := s.state.Subscribe()
	defer unsubscribeReadings()

	rc := http.NewResponseController(w)

	if err := writeSSEEvent(rc, w, flusher, "connected", map[string]interface{}{
		"time": time.Now().Format(time.RFC3339),
	}); err != nil {
		log.WithError(err).Warn("sse connected event failed")
		return
	}

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case payload, ok := <-alerts:
			if !ok {
				return
			}
			if err := writeSSEEvent(rc, w, flusher, "alert", payload); err != nil {
				log.WithError(err).Warn("sse alert event failed")
				return
			}

		case r, ok := <-readings:
			if !ok {
				return
			}
			if err := writeSSEEvent(rc, w, flusher, "readings", r); err != nil {
				log.WithError(err).Warn("sse readings event failed")
				return
			}

		case t := <-heartbeat.C:
			if err := writeSSEEvent(rc, w, flusher, "heartbeat", map[string]string{
				"time": t.Format(time.RFC3339),
			}); err != nil {
				return
			}
		}
	}
}

func writeSSEEvent(rc *http.ResponseController, w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	// extend write deadline before each write (ignore if not supported)
	if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	jsonData, err := go_json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	flusher.Flush()
	return nil
}
