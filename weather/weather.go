package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-carewatch/types"
)

// feedResponse mirrors the WAQI city feed payload. The aqi field is loosely
// typed upstream (a number, or "-" when the station has no reading), so it
// is decoded as an interface and narrowed at the boundary.
type feedResponse struct {
	Status string   `json:"status"`
	Data   feedData `json:"data"`
}

type feedData struct {
	Aqi         interface{} `json:"aqi"`
	DominentPol string      `json:"dominentpol"`
	Iaqi        struct {
		Temp     measurement `json:"t"`
		Humidity measurement `json:"h"`
		Wind     measurement `json:"w"`
	} `json:"iaqi"`
	Time struct {
		ISO string `json:"iso"`
	} `json:"time"`
}

type measurement struct {
	V float64 `json:"v"`
}

// Client fetches environmental readings from the AQI provider.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Credentialed reports whether the client has an API key to call with.
func (c *Client) Credentialed() bool {
	return c.APIKey != ""
}

// Fetch retrieves the current reading for a location. Transport failures and
// non-success replies map onto the upstream error taxonomy; callers are
// expected to substitute the offline fallback snapshot on any error.
func (c *Client) Fetch(ctx context.Context, location string) (types.EnvironmentalSnapshot, error) {
	var snapshot types.EnvironmentalSnapshot

	if !c.Credentialed() {
		return snapshot, fmt.Errorf("no weather api key configured: %w", types.ErrUpstreamUnavailable)
	}

	endpoint := fmt.Sprintf("%s/feed/%s/?token=%s", c.BaseURL, url.PathEscape(location), url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return snapshot, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return snapshot, fmt.Errorf("weather fetch for %s: %v: %w", location, err, types.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return snapshot, fmt.Errorf("weather fetch for %s: %w", location, types.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return snapshot, fmt.Errorf("weather provider returned status %s: %w", resp.Status, types.ErrUpstreamUnavailable)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return snapshot, fmt.Errorf("error decoding weather response: %w", types.ErrMalformedResponse)
	}
	if feed.Status != "ok" {
		return snapshot, fmt.Errorf("weather provider status %q: %w", feed.Status, types.ErrUpstreamUnavailable)
	}

	observedAt := time.Now()
	if t, err := time.Parse(time.RFC3339, feed.Data.Time.ISO); err == nil {
		observedAt = t
	}

	snapshot = types.EnvironmentalSnapshot{
		Location:    location,
		AQI:         narrowAqi(feed.Data.Aqi),
		Temperature: feed.Data.Iaqi.Temp.V,
		Humidity:    int(feed.Data.Iaqi.Humidity.V),
		WindSpeed:   feed.Data.Iaqi.Wind.V,
		Description: describe(feed.Data.DominentPol),
		ObservedAt:  observedAt,
	}
	return snapshot, nil
}

// narrowAqi converts the loosely typed upstream aqi field into an optional
// integer. Anything that is not a number means the reading is unknown.
func narrowAqi(raw interface{}) *int {
	if f, ok := raw.(float64); ok {
		v := int(f)
		return &v
	}
	return nil
}

func describe(dominentPol string) string {
	if dominentPol == "" {
		return "No dominant pollutant reported"
	}
	return fmt.Sprintf("Dominant pollutant: %s", dominentPol)
}
