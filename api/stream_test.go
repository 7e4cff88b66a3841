package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/background"
	"github.com/aerovital/navigator-api/schema"
)

func TestAlertStream(t *testing.T) {
	state := atmosphere.NewState()
	hub := background.NewHub()

	s := Server{state: state, hub: hub}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", s.alertStream)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		router.ServeHTTP(w, req)
	}()

	// keep publishing until the handler has subscribed and picked one up
	feed := time.NewTicker(10 * time.Millisecond)
	defer feed.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-feed.C:
				_ = hub.Notify(schema.PushPayload{Body: "spike incoming"})
				state.SetReadings(atmosphere.Readings{AQI: 88})
			}
		}
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not tear down on context cancel")
	}

	body := w.Body.String()
	assert.Contains(t, body, "event: connected", "stream must announce itself")
	assert.Contains(t, body, "event: alert", "stream must carry alerts")
	assert.Contains(t, body, "spike incoming", "wrong alert body")
	assert.Contains(t, body, schema.DefaultPushTitle, "alert must carry default title")
	assert.Contains(t, body, "event: readings", "stream must carry readings updates")
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"), "wrong content type")
}
