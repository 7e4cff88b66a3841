package poller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/poller"
	"github.com/aerovital/navigator-api/schema"
)

type call struct {
	lat, lng float64
}

type fakeGateway struct {
	mu      sync.Mutex
	calls   []call
	started []call
	reading schema.AtmosphericReading
	err     error

	// optional gate: when set, Fetch blocks until the gate closes
	gate chan struct{}
}

func (f *fakeGateway) StartStream(_ context.Context, lat, lng float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, call{lat, lng})
}

func (f *fakeGateway) Fetch(_ context.Context, lat, lng float64) (schema.AtmosphericReading, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{lat, lng})
	gate := f.gate
	reading, err := f.reading, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return reading, err
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestImmediateFirstFetch(t *testing.T) {
	gw := &fakeGateway{reading: schema.AtmosphericReading{AQI: 90, PM25: 30, Temperature: 22, Humidity: 40}}
	state := atmosphere.NewState()

	// interval far longer than the test: only the immediate fetch can fire
	a := poller.New(gw, state, time.Hour)
	a.Start(20.59, 78.96)
	defer a.Stop()

	assert.Eventually(t, func() bool {
		_, loading := state.Current()
		return !loading
	}, time.Second, 5*time.Millisecond, "first fetch did not happen immediately")

	readings, _ := state.Current()
	assert.Equal(t, float64(90), readings.AQI, "wrong aqi")
	assert.Equal(t, 1, len(gw.started), "stream start not invoked")
}

func TestPeriodicPolling(t *testing.T) {
	gw := &fakeGateway{reading: schema.AtmosphericReading{AQI: 50}}
	state := atmosphere.NewState()

	a := poller.New(gw, state, 10*time.Millisecond)
	a.Start(1.2, 3.4)
	defer a.Stop()

	assert.Eventually(t, func() bool {
		return gw.callCount() >= 3
	}, time.Second, 5*time.Millisecond, "ticker did not drive repeated polls")
}

func TestRetargetCancelsPriorPoller(t *testing.T) {
	gw := &fakeGateway{reading: schema.AtmosphericReading{AQI: 50}}
	state := atmosphere.NewState()

	a := poller.New(gw, state, 15*time.Millisecond)
	a.Start(1.0, 1.0)

	assert.Eventually(t, func() bool {
		return gw.callCount() >= 1
	}, time.Second, time.Millisecond, "first epoch never polled")

	a.Start(2.0, 2.0)
	defer a.Stop()

	// let several intervals elapse, then require every subsequent poll to
	// target only the new coordinates
	assert.Eventually(t, func() bool {
		return gw.callCount() >= 4
	}, time.Second, time.Millisecond, "second epoch never polled")

	// allow a possible already-ticked stale cycle to drain before sampling
	time.Sleep(30 * time.Millisecond)
	mark := gw.callCount()
	time.Sleep(60 * time.Millisecond)

	gw.mu.Lock()
	tail := gw.calls[mark:]
	gw.mu.Unlock()

	for _, c := range tail {
		assert.Equal(t, call{2.0, 2.0}, c, "stale coordinate epoch still polling")
	}
}

func TestFailedPollKeepsPreviousReading(t *testing.T) {
	gw := &fakeGateway{reading: schema.AtmosphericReading{AQI: 70}}
	state := atmosphere.NewState()

	a := poller.New(gw, state, 10*time.Millisecond)
	a.Start(1.2, 3.4)

	assert.Eventually(t, func() bool {
		_, loading := state.Current()
		return !loading
	}, time.Second, time.Millisecond, "first fetch did not land")

	gw.mu.Lock()
	gw.err = errors.New("provider down")
	gw.mu.Unlock()

	before := gw.callCount()
	assert.Eventually(t, func() bool {
		return gw.callCount() > before+1
	}, time.Second, time.Millisecond, "polling stopped after failure")

	readings, loading := state.Current()
	assert.False(t, loading, "loading must stay cleared")
	assert.Equal(t, float64(70), readings.AQI, "failed cycle cleared the cached reading")
}

func TestStopCancelsUnconditionally(t *testing.T) {
	gw := &fakeGateway{reading: schema.AtmosphericReading{AQI: 10}}
	state := atmosphere.NewState()

	a := poller.New(gw, state, 5*time.Millisecond)
	a.Start(1.2, 3.4)

	assert.Eventually(t, func() bool {
		return gw.callCount() >= 1
	}, time.Second, time.Millisecond, "poller never ran")

	a.Stop()
	mark := gw.callCount()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, mark, gw.callCount(), "poller kept running after Stop")
}

// A fetch issued before a retarget must not overwrite data fetched after
// it, even when it completes later.
func TestStaleCompletionDiscarded(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{
		reading: schema.AtmosphericReading{AQI: 111},
		gate:    gate,
	}
	state := atmosphere.NewState()

	a := poller.New(gw, state, time.Hour)
	a.Start(1.0, 1.0)

	assert.Eventually(t, func() bool {
		return gw.callCount() == 1
	}, time.Second, time.Millisecond, "first fetch not in flight")

	// retarget while the first fetch is stuck; the second epoch fetches a
	// different value and commits first
	gw.mu.Lock()
	gw.gate = nil
	gw.reading = schema.AtmosphericReading{AQI: 222}
	gw.mu.Unlock()

	a.Start(2.0, 2.0)
	defer a.Stop()

	assert.Eventually(t, func() bool {
		readings, _ := state.Current()
		return readings.AQI == 222
	}, time.Second, time.Millisecond, "second epoch never committed")

	// release the stalled first fetch; its completion is stale and must be
	// discarded
	close(gate)
	time.Sleep(20 * time.Millisecond)

	readings, _ := state.Current()
	assert.Equal(t, float64(222), readings.AQI, "stale completion overwrote fresh data")
}
