package atmosphere_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerovital/navigator-api/atmosphere"
)

func TestInitialStateIsLoading(t *testing.T) {
	s := atmosphere.NewState()

	readings, loading := s.Current()
	assert.True(t, loading, "fresh state must be loading")
	assert.Equal(t, atmosphere.Readings{}, readings, "fresh state must hold zero readings")
}

func TestSetReadingsReplacesTupleAndClearsLoading(t *testing.T) {
	s := atmosphere.NewState()

	s.SetReadings(atmosphere.Readings{AQI: 120, PM25: 45, Temperature: 31, Humidity: 60})

	readings, loading := s.Current()
	assert.False(t, loading, "loading must clear on first write")
	assert.Equal(t, float64(120), readings.AQI, "wrong aqi")
	assert.Equal(t, float64(45), readings.PM25, "wrong pm25")

	// a later write supersedes the whole tuple
	s.SetReadings(atmosphere.Readings{AQI: 80, PM25: 20, Temperature: 25, Humidity: 55})
	readings, _ = s.Current()
	assert.Equal(t, float64(80), readings.AQI, "stale aqi survived replacement")
	assert.Equal(t, float64(25), readings.Temperature, "stale temperature survived replacement")
}

func TestBaselineExcludesLatest(t *testing.T) {
	s := atmosphere.NewState()

	assert.Equal(t, float64(0), s.Baseline(), "baseline without history")

	s.SetReadings(atmosphere.Readings{AQI: 100})
	assert.Equal(t, float64(0), s.Baseline(), "baseline needs at least two samples")

	s.SetReadings(atmosphere.Readings{AQI: 110})
	s.SetReadings(atmosphere.Readings{AQI: 300})

	// window is {100, 110}; the spike itself is excluded
	assert.Equal(t, float64(105), s.Baseline(), "wrong baseline")
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s := atmosphere.NewState()

	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetReadings(atmosphere.Readings{AQI: 77})

	select {
	case r := <-ch:
		assert.Equal(t, float64(77), r.AQI, "wrong published aqi")
	default:
		t.Fatal("subscriber did not receive the update")
	}
}

func TestCancelledSubscriberIsDropped(t *testing.T) {
	s := atmosphere.NewState()

	ch, cancel := s.Subscribe()
	cancel()
	cancel() // second cancel is a no-op

	_, open := <-ch
	assert.False(t, open, "channel must be closed after cancel")

	// must not panic with no subscribers left
	s.SetReadings(atmosphere.Readings{AQI: 10})
}
