package background

import (
	"sync"

	"github.com/aerovital/navigator-api/schema"
)

// NotificationCenter delivers alert payloads to whoever is listening.
type NotificationCenter interface {
	Notify(payload schema.PushPayload) error
}

// Hub fans alert payloads out to subscribed delivery channels. The API's
// alert stream subscribes here; a slow or abandoned subscriber never blocks
// delivery to the others.
type Hub struct {
	mu      sync.Mutex
	subs    map[int]chan schema.PushPayload
	nextSub int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan schema.PushPayload),
	}
}

// Notify applies payload defaults and delivers to every subscriber.
func (h *Hub) Notify(payload schema.PushPayload) error {
	payload = payload.ApplyDefaults()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- payload:
		default:
			log.WithField("tag", payload.Tag).Warn("subscriber not draining, alert dropped")
		}
	}
	return nil
}

// Subscribe registers an alert channel. The returned cancel func removes the
// subscription and closes the channel; calling it twice is safe.
func (h *Hub) Subscribe() (<-chan schema.PushPayload, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSub
	h.nextSub++

	ch := make(chan schema.PushPayload, 8)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}
