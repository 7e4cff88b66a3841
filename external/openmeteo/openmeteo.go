package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/aerovital/navigator-api/consts"
)

const (
	defaultURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// SourceTag marks readings that came from the fallback provider.
	SourceTag = "Open-Meteo"

	currentFields = "european_aqi,pm2_5,pm10,nitrogen_dioxide,sulphur_dioxide,carbon_monoxide,ozone"
)

var errNoCurrentBlock = fmt.Errorf("response has no current block")

// AirQuality is the public fallback air-quality provider, keyed by
// coordinates only. It never requires configuration.
type AirQuality interface {
	Get(ctx context.Context, lat, lng float64) (Reading, error)
}

// Reading - the fallback provider's measurements mapped into the normalized
// shape. Temperature and humidity are fixed placeholders because the
// provider does not supply them.
type Reading struct {
	AQI         float64
	PM25        float64
	PM10        float64
	NO2         float64
	SO2         float64
	CO          float64
	O3          float64
	Temperature float64
	Humidity    float64
	Source      string
}

type client struct {
	url        string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// New returns a fallback provider client. An empty url selects the public
// endpoint.
func New(u string) AirQuality {
	if u == "" {
		u = defaultURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-air-quality",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &client{
		url: u,
		httpClient: &http.Client{
			Timeout: consts.ProviderTimeout,
		},
		circuit: cb,
	}
}

func (c *client) Get(ctx context.Context, lat, lng float64) (Reading, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lng))
	values.Set("current", currentFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.url, values.Encode()), nil)
	if err != nil {
		return Reading{}, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload struct {
			Current *struct {
				EuropeanAQI     float64 `json:"european_aqi"`
				PM25            float64 `json:"pm2_5"`
				PM10            float64 `json:"pm10"`
				NitrogenDioxide float64 `json:"nitrogen_dioxide"`
				SulphurDioxide  float64 `json:"sulphur_dioxide"`
				CarbonMonoxide  float64 `json:"carbon_monoxide"`
				Ozone           float64 `json:"ozone"`
			} `json:"current"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		if payload.Current == nil {
			return nil, errNoCurrentBlock
		}

		r := Reading{
			AQI:         payload.Current.EuropeanAQI,
			PM25:        payload.Current.PM25,
			PM10:        payload.Current.PM10,
			NO2:         payload.Current.NitrogenDioxide,
			SO2:         payload.Current.SulphurDioxide,
			CO:          payload.Current.CarbonMonoxide,
			O3:          payload.Current.Ozone,
			Temperature: consts.FallbackTemperature,
			Humidity:    consts.FallbackHumidity,
			Source:      SourceTag,
		}
		if r.AQI == 0 {
			r.AQI = consts.FallbackAQI
		}
		if r.PM25 == 0 {
			r.PM25 = consts.FallbackPM25
		}

		return r, nil
	})
	if err != nil {
		return Reading{}, err
	}

	return result.(Reading), nil
}
