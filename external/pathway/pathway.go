package pathway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aerovital/navigator-api/consts"
	"github.com/aerovital/navigator-api/schema"
)

var (
	// ErrNotConfigured - the provider base URL is absent. Callers treat this
	// as a non-fatal "not configured" result and fall back.
	ErrNotConfigured  = fmt.Errorf("pathway endpoint not configured")
	errResponseStatus = fmt.Errorf("response success not ok")
)

// Pathway is the primary streaming air-quality provider.
type Pathway interface {
	StartStream(ctx context.Context, lat, lng float64) error
	StreamRisks(ctx context.Context, lat, lng float64, profile *schema.UserProfile) (Reading, error)
	DetectSpike(ctx context.Context, lat, lng float64) (bool, error)
}

// Reading - the provider's normalized current readings
type Reading struct {
	AQI         float64 `json:"aqi"`
	PM25        float64 `json:"pm25"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

type envelope struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Risks   Reading `json:"risks"`
	Spike   bool    `json:"spike"`
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a pathway client for the given base URL. An empty base URL is
// allowed and short-circuits every call to ErrNotConfigured.
func New(baseURL string) Pathway {
	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: consts.ProviderTimeout,
		},
	}
}

func (c *client) StartStream(ctx context.Context, lat, lng float64) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	query := fmt.Sprintf("%s/api/aqi/stream/start?%s", c.baseURL, coordValues(lat, lng).Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *client) StreamRisks(ctx context.Context, lat, lng float64, profile *schema.UserProfile) (Reading, error) {
	if c.baseURL == "" {
		return Reading{}, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]interface{}{
		"lat":          lat,
		"lon":          lng,
		"user_profile": profile,
	})
	if err != nil {
		return Reading{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/risk/stream", bytes.NewReader(body))
	if err != nil {
		return Reading{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return Reading{}, err
	}

	return resp.Risks, nil
}

func (c *client) DetectSpike(ctx context.Context, lat, lng float64) (bool, error) {
	if c.baseURL == "" {
		return false, ErrNotConfigured
	}

	query := fmt.Sprintf("%s/api/spike/detect?%s", c.baseURL, coordValues(lat, lng).Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.do(req)
	if err != nil {
		return false, err
	}

	return resp.Spike, nil
}

func (c *client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var e envelope
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return nil, err
	}

	if !e.Success {
		return nil, errResponseStatus
	}

	return &e, nil
}

func coordValues(lat, lng float64) url.Values {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lng))
	return values
}
