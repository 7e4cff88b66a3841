package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/consts"
	"github.com/aerovital/navigator-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "poller")
}

// Fetcher is what the aggregator needs from the data gateway.
type Fetcher interface {
	StartStream(ctx context.Context, lat, lng float64)
	Fetch(ctx context.Context, lat, lng float64) (schema.AtmosphericReading, error)
}

// Aggregator owns the polling lifecycle for the currently bound coordinate
// pair. Binding new coordinates cancels the previous polling task before the
// new one starts, so at most one task polls at any time. The aggregator is
// the sole writer of the atmosphere state.
type Aggregator struct {
	fetcher  Fetcher
	state    *atmosphere.State
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// seq tags each fetch at issue time; applied is the highest committed
	// tag. A completion carrying a stale tag is discarded, so writes are
	// ordered by issue, not by completion.
	seq     uint64
	applied uint64
}

func New(fetcher Fetcher, state *atmosphere.State, interval time.Duration) *Aggregator {
	if interval <= 0 {
		interval = consts.PollInterval
	}
	return &Aggregator{
		fetcher:  fetcher,
		state:    state,
		interval: interval,
	}
}

// Start binds the aggregator to a coordinate pair. Any previous task is
// cancelled first; its in-flight fetch is not aborted but its completion
// will be discarded.
func (a *Aggregator) Start(lat, lng float64) {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.mu.Unlock()

	log.WithFields(logrus.Fields{
		"latitude":  lat,
		"longitude": lng,
	}).Info("binding poller")

	a.wg.Add(1)
	go a.run(ctx, lat, lng)
}

// Stop cancels the current polling task unconditionally and waits for it to
// wind down.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Aggregator) run(ctx context.Context, lat, lng float64) {
	defer a.wg.Done()

	// advisory stream start; failure is not a reason to skip polling
	a.fetcher.StartStream(ctx, lat, lng)

	// first fetch immediately so consumers are not blocked a full interval
	a.poll(ctx, lat, lng)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.poll(ctx, lat, lng)
		}
	}
}

func (a *Aggregator) poll(ctx context.Context, lat, lng float64) {
	seq := atomic.AddUint64(&a.seq, 1)

	reading, err := a.fetcher.Fetch(ctx, lat, lng)
	if err != nil {
		// stale-but-available: the previous reading stays in place
		log.WithError(err).Warn("poll cycle failed; keeping previous reading")
		return
	}

	if ctx.Err() != nil {
		return
	}

	a.commit(seq, reading)
}

func (a *Aggregator) commit(seq uint64, reading schema.AtmosphericReading) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if seq <= a.applied {
		log.WithField("seq", seq).Debug("discarding stale poll completion")
		return
	}
	a.applied = seq

	a.state.SetReadings(atmosphere.Readings{
		AQI:         reading.AQI,
		PM25:        reading.PM25,
		Temperature: reading.Temperature,
		Humidity:    reading.Humidity,
	})
}
