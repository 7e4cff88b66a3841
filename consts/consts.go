package consts

import "time"

const (
	// PollInterval is the cadence of the readings aggregator for a bound
	// coordinate pair.
	PollInterval = 60 * time.Second

	// ProviderTimeout applies to every outbound call to an air-quality
	// provider.
	ProviderTimeout = 10 * time.Second

	// GeocodeTimeout bounds a reverse-geocoding lookup. Exceeding it is a
	// soft failure, not an error surfaced to clients.
	GeocodeTimeout = 5 * time.Second

	// MaxAQI is the upper bound of the normalized AQI scale.
	MaxAQI = 500

	// HazardousAQI is the absolute level treated as a spike regardless of
	// the recent baseline.
	HazardousAQI = 250

	// SpikeRatio is the minimum current/baseline ratio that counts as a
	// pollution spike.
	SpikeRatio = 1.1

	// BaselineWindow is how many recent readings feed the spike baseline.
	BaselineWindow = 10
)

// The fallback provider does not supply temperature or humidity, and its
// pollutant fields may be absent. These placeholders keep the normalized
// reading shape complete. Documented limitation of the provider, not a bug.
const (
	FallbackTemperature = 20.0
	FallbackHumidity    = 50.0
	FallbackAQI         = 25.0
	FallbackPM25        = 10.0
)
