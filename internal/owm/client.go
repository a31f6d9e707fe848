package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	units          = "metric"

	msgCityNotFound     = "City not found"
	msgWeatherNotFound  = "Weather data not found"
	msgForecastNotFound = "Forecast data not found"
)

// WeatherClient defines the read operations against the weather provider
type WeatherClient interface {
	// FetchCurrentByName retrieves current conditions for a city name
	FetchCurrentByName(ctx context.Context, city string) (*models.CurrentWeather, error)

	// FetchCurrentByCoordinates retrieves current conditions for a lat/lon
	FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error)

	// FetchForecastByName retrieves the 5 day / 3 hour forecast for a city name
	FetchForecastByName(ctx context.Context, city string) (*models.ForecastResponse, error)
}

// Config holds the client settings
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64 // requests per second, <= 0 disables limiting
	Burst     int
}

// Client implements WeatherClient using the OpenWeatherMap 2.5 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a new OpenWeatherMap client
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	limiter := rate.NewLimiter(rate.Inf, cfg.Burst)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

// FetchCurrentByName retrieves current conditions for a city name
func (c *Client) FetchCurrentByName(ctx context.Context, city string) (*models.CurrentWeather, error) {
	params := url.Values{}
	params.Set("q", city)

	var cw models.CurrentWeather
	if err := c.get(ctx, "weather", "/weather", params, msgCityNotFound, &cw); err != nil {
		return nil, err
	}
	return &cw, nil
}

// FetchCurrentByCoordinates retrieves current conditions for a lat/lon
func (c *Client) FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var cw models.CurrentWeather
	if err := c.get(ctx, "weather-coords", "/weather", params, msgWeatherNotFound, &cw); err != nil {
		return nil, err
	}
	return &cw, nil
}

// FetchForecastByName retrieves the 5 day / 3 hour forecast for a city name
func (c *Client) FetchForecastByName(ctx context.Context, city string) (*models.ForecastResponse, error) {
	params := url.Values{}
	params.Set("q", city)

	var fr models.ForecastResponse
	if err := c.get(ctx, "forecast", "/forecast", params, msgForecastNotFound, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}

// get performs one GET and decodes the JSON body into out. Any failure is
// reported as a *RequestError carrying msg.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, msg string, out any) error {
	params.Set("appid", c.apiKey)
	params.Set("units", units)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	fail := func(kind Kind, status int, err error) error {
		reqErr := &RequestError{Op: op, Message: msg, Kind: kind, Status: status, Err: err}
		slog.Debug("weather request failed", "op", op, "detail", reqErr.Detail())
		return reqErr
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fail(KindTransport, 0, fmt.Errorf("rate limit wait canceled: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	// Error bodies are not parsed; the status alone decides.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(KindNotFound, resp.StatusCode, fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(KindTransport, 0, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

var _ WeatherClient = (*Client)(nil)
