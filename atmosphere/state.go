package atmosphere

import (
	"sync"

	"github.com/aerovital/navigator-api/consts"
)

// Readings is the display tuple every widget consumes. It is always
// replaced as a whole, never field by field.
type Readings struct {
	AQI         float64 `json:"aqi"`
	PM25        float64 `json:"pm25"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// State holds the latest normalized readings for the process. The polling
// aggregator is the only permitted writer; everything else subscribes or
// takes read-only snapshots. Constructed and injected explicitly so tests
// never share state.
type State struct {
	mu       sync.RWMutex
	readings Readings
	loading  bool

	// recent AQI values, oldest first, feeding the spike baseline
	history []float64

	subs    map[int]chan Readings
	nextSub int
}

func NewState() *State {
	return &State{
		loading: true,
		subs:    make(map[int]chan Readings),
	}
}

// SetReadings replaces the whole tuple atomically and clears the loading
// flag. Single-writer: only the polling aggregator calls this.
func (s *State) SetReadings(r Readings) {
	s.mu.Lock()

	s.readings = r
	s.loading = false

	s.history = append(s.history, r.AQI)
	if len(s.history) > consts.BaselineWindow {
		s.history = s.history[len(s.history)-consts.BaselineWindow:]
	}

	// fan out without blocking the writer; a slow subscriber misses the
	// update and catches the next one
	for _, ch := range s.subs {
		select {
		case ch <- r:
		default:
		}
	}

	s.mu.Unlock()
}

// Current returns the latest readings snapshot and whether the state is
// still waiting for its first successful poll.
func (s *State) Current() (Readings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readings, s.loading
}

// Baseline averages the retained AQI window excluding the most recent
// value, so a fresh spike does not inflate its own baseline. Zero when not
// enough history has accumulated.
func (s *State) Baseline() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) < 2 {
		return 0
	}

	window := s.history[:len(s.history)-1]
	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// Subscribe registers a read-only consumer. The returned cancel function
// must be called to release the subscription.
func (s *State) Subscribe() (<-chan Readings, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan Readings, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}
