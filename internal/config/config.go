package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/owm"
)

type Config struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	DBPath             string
	HTTPTimeout        time.Duration
	RateLimit          float64 // requests per second
	Locator            string  // "ip", "off" or "lat,lon"
	LogFile            string
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory. Variables already set win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("reading .env", "error", err)
	}

	timeout := 10 * time.Second
	if v := os.Getenv("WEATHER_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	rateLimit := 1.0
	if v := os.Getenv("WEATHER_RATE_LIMIT"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 {
			rateLimit = r
		}
	}

	baseURL := os.Getenv("OPENWEATHER_BASE_URL")
	if baseURL == "" {
		baseURL = owm.DefaultBaseURL
	}

	dbPath := os.Getenv("WEATHER_DB_PATH")
	if dbPath == "" {
		dbPath = database.DBPath()
	}

	locator := os.Getenv("WEATHER_LOCATOR")
	if locator == "" {
		locator = "ip"
	}

	return Config{
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: baseURL,
		DBPath:             dbPath,
		HTTPTimeout:        timeout,
		RateLimit:          rateLimit,
		Locator:            locator,
		LogFile:            os.Getenv("WEATHER_LOG_FILE"),
	}
}

// Validate reports settings the application cannot start without
func (c Config) Validate() error {
	if c.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is not set")
	}
	return nil
}

// OWM returns the weather client settings
func (c Config) OWM() owm.Config {
	return owm.Config{
		BaseURL:   c.OpenWeatherBaseURL,
		APIKey:    c.OpenWeatherAPIKey,
		Timeout:   c.HTTPTimeout,
		RateLimit: c.RateLimit,
	}
}
