package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	ipAPIURL  = "http://ip-api.com/json/?fields=status,message,lat,lon,city"
	userAgent = "WeatherTerminal/1.0"
)

// IPLocator approximates the device position from its public IP address
type IPLocator struct {
	url        string
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
	minGap   time.Duration
}

// NewIPLocator creates a new IP-based locator
func NewIPLocator() *IPLocator {
	return &IPLocator{
		url: ipAPIURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		minGap: time.Second,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"` // "success" or "fail"
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// Locate implements Locator
func (l *IPLocator) Locate(ctx context.Context) (Position, error) {
	// The free endpoint is rate limited; space out repeated presses.
	l.mu.Lock()
	if !l.lastCall.IsZero() {
		if elapsed := time.Since(l.lastCall); elapsed < l.minGap {
			select {
			case <-time.After(l.minGap - elapsed):
			case <-ctx.Done():
				l.mu.Unlock()
				return Position{}, ctx.Err()
			}
		}
	}
	l.lastCall = time.Now()
	l.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Position{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("%w: lookup returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Position{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	if result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = "lookup failed"
		}
		return Position{}, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	return Position{Latitude: result.Lat, Longitude: result.Lon}, nil
}
