// Package openweather implements service.WeatherService using the
// OpenWeatherMap current weather endpoint.
package openweather

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"wtask/internal/service"
)

// APITimeout is the timeout for a lookup.
const APITimeout = 10 * time.Second

// ErrLookupFailed is the single failure message for any lookup error.
const ErrLookupFailed = "city not found or weather service unavailable"

// Client implements service.WeatherService.
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	http    *http.Client
	log     *slog.Logger
}

// New creates a weather client. httpClient may be nil.
func New(baseURL, apiKey, lang string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		lang:    lang,
		http:    httpClient,
		log:     log,
	}
}

// current is the subset of the /weather response we read.
type current struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Lookup returns the current weather for city. Every failure, including an
// unknown city, is reported as the same KindRequestFailed error.
func (c *Client) Lookup(ctx context.Context, city string) (service.Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return service.Snapshot{}, service.Validation("weather lookup", "city required")
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	if c.lang != "" {
		q.Set("lang", c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return service.Snapshot{}, lookupFailed(0, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("weather request failed", "city", city, "err", err)
		return service.Snapshot{}, lookupFailed(0, err)
	}
	defer resp.Body.Close()
	c.log.Debug("weather request", "city", city, "status", resp.StatusCode)

	if err := googleapi.CheckResponse(resp); err != nil {
		var status int
		if gerr, ok := err.(*googleapi.Error); ok {
			status = gerr.Code
		}
		return service.Snapshot{}, lookupFailed(status, err)
	}

	var body current
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return service.Snapshot{}, lookupFailed(resp.StatusCode, err)
	}

	snap := service.Snapshot{Place: body.Name, TempC: body.Main.Temp}
	if len(body.Weather) > 0 {
		snap.Description = body.Weather[0].Description
	}
	return snap, nil
}

func lookupFailed(status int, err error) error {
	return &service.Error{
		Kind:    service.KindRequestFailed,
		Op:      "weather lookup",
		Status:  status,
		Message: ErrLookupFailed,
		Err:     err,
	}
}
