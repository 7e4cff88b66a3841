package background

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/aerovital/navigator-api/atmosphere"
	"github.com/aerovital/navigator-api/consts"
	"github.com/aerovital/navigator-api/schema"
	"github.com/aerovital/navigator-api/score"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "background")
}

const (
	// TagSpikeCheck is the periodic spike detection job.
	TagSpikeCheck = "check-aqi-spike"

	// TagHealthSync is the deferred health data sync job. Delivery of
	// queued health records is not implemented yet; the job exists so the
	// tag is registered and resolves without error.
	TagHealthSync = "sync-health-data"

	spikeCheckInterval = 5 * time.Minute
	healthSyncInterval = 15 * time.Minute
)

// Manager runs the periodic background jobs: AQI spike detection against the
// rolling baseline, and the health data sync placeholder.
type Manager struct {
	scheduler *gocron.Scheduler
	state     *atmosphere.State
	notifier  NotificationCenter
}

func NewManager(state *atmosphere.State, notifier NotificationCenter) *Manager {
	return &Manager{
		scheduler: gocron.NewScheduler(time.UTC),
		state:     state,
		notifier:  notifier,
	}
}

// Start registers the jobs and runs the scheduler asynchronously.
func (m *Manager) Start() error {
	if _, err := m.scheduler.Every(spikeCheckInterval).Tag(TagSpikeCheck).Do(m.checkSpike); err != nil {
		return err
	}
	if _, err := m.scheduler.Every(healthSyncInterval).Tag(TagHealthSync).Do(m.syncHealthData); err != nil {
		return err
	}

	m.scheduler.StartAsync()
	log.Info("background jobs scheduled")
	return nil
}

// Stop halts the scheduler. Running jobs finish; no new ones start.
func (m *Manager) Stop() {
	m.scheduler.Stop()
}

// CheckSpikeNow runs one spike check outside the schedule. Wired to the
// readings fan-out so a sudden deterioration alerts without waiting for the
// next tick.
func (m *Manager) CheckSpikeNow() {
	m.checkSpike()
}

func (m *Manager) checkSpike() {
	readings, loading := m.state.Current()
	if loading {
		return
	}

	baseline := m.state.Baseline()
	if !score.CheckAQISpike(baseline, readings.AQI) {
		return
	}

	log.WithFields(logrus.Fields{
		"baseline": baseline,
		"current":  readings.AQI,
	}).Warn("aqi spike detected")

	payload := schemaSpikePayload(readings.AQI)
	if err := m.notifier.Notify(payload); err != nil {
		log.WithError(err).Error("spike alert delivery failed")
	}
}

func (m *Manager) syncHealthData() {
	// queued health records would upload here once a backing queue exists
	log.Debug("health data sync: nothing queued")
}

func schemaSpikePayload(aqi float64) schema.PushPayload {
	return schema.PushPayload{
		Body:               fmt.Sprintf("Air quality deteriorating rapidly. AQI is now %.0f.", aqi),
		Tag:                "aqi-alert",
		RequireInteraction: aqi >= consts.HazardousAQI,
	}
}
