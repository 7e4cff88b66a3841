package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/aerovital/navigator-api/external/openmeteo"
	"github.com/aerovital/navigator-api/external/pathway"
	"github.com/aerovital/navigator-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gateway")
}

// ErrAllProvidersFailed - neither the primary nor the fallback provider
// produced a reading. The previously cached reading stays in place.
var ErrAllProvidersFailed = errors.New("all air-quality providers failed")

// Gateway normalizes the primary streaming provider and the public fallback
// into one reading shape. Every transport failure is absorbed at this
// boundary and converted into a typed error; nothing propagates as a panic
// or an untyped failure.
type Gateway struct {
	primary  pathway.Pathway
	fallback openmeteo.AirQuality

	group singleflight.Group
}

func New(primary pathway.Pathway, fallback openmeteo.AirQuality) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
	}
}

// StartStream asks the primary provider to begin streaming for the given
// coordinates. The result is advisory; failures (including a missing
// configuration) are logged and swallowed.
func (g *Gateway) StartStream(ctx context.Context, lat, lng float64) {
	if err := g.primary.StartStream(ctx, lat, lng); err != nil {
		if errors.Is(err, pathway.ErrNotConfigured) {
			log.Debug("primary provider not configured; stream start skipped")
			return
		}
		log.WithError(err).Warn("primary stream start failed")
	}
}

// Fetch returns the current normalized reading for a coordinate pair,
// preferring the primary provider and falling back on any failure.
// Concurrent fetches for the same coordinates are collapsed into one
// upstream call.
func (g *Gateway) Fetch(ctx context.Context, lat, lng float64) (schema.AtmosphericReading, error) {
	key := fmt.Sprintf("%.4f:%.4f", lat, lng)

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		return g.fetch(ctx, lat, lng)
	})
	if err != nil {
		return schema.AtmosphericReading{}, err
	}

	return result.(schema.AtmosphericReading), nil
}

func (g *Gateway) fetch(ctx context.Context, lat, lng float64) (schema.AtmosphericReading, error) {
	primary, primaryErr := g.primary.StreamRisks(ctx, lat, lng, nil)
	if primaryErr == nil {
		return schema.AtmosphericReading{
			AQI:         primary.AQI,
			PM25:        primary.PM25,
			Temperature: primary.Temperature,
			Humidity:    primary.Humidity,
			Latitude:    lat,
			Longitude:   lng,
			Source:      "Pathway",
			Timestamp:   time.Now().UnixMilli(),
		}, nil
	}

	if !errors.Is(primaryErr, pathway.ErrNotConfigured) {
		log.WithError(primaryErr).Warn("primary provider failed; using fallback")
	}

	fallback, fallbackErr := g.fallback.Get(ctx, lat, lng)
	if fallbackErr != nil {
		log.WithError(fallbackErr).Error("fallback provider failed")
		return schema.AtmosphericReading{}, ErrAllProvidersFailed
	}

	return schema.AtmosphericReading{
		AQI:         fallback.AQI,
		PM25:        fallback.PM25,
		PM10:        fallback.PM10,
		NO2:         fallback.NO2,
		SO2:         fallback.SO2,
		CO:          fallback.CO,
		O3:          fallback.O3,
		Temperature: fallback.Temperature,
		Humidity:    fallback.Humidity,
		Latitude:    lat,
		Longitude:   lng,
		Source:      fallback.Source,
		Timestamp:   time.Now().UnixMilli(),
	}, nil
}
