package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/owm"
)

// Message types for async operations. Results of a search carry the
// generation that issued them so stale replies can be dropped.

// recentLoadedMsg is sent when the recent city list has been read
type recentLoadedMsg struct {
	cities []string
}

// recentSavedMsg is sent after a searched city has been stored
type recentSavedMsg struct {
	gen    int
	city   string
	cities []string
}

// startupSearchMsg requests a name search right after start
type startupSearchMsg struct {
	city string
}

// startupLocateMsg requests a location search right after start
type startupLocateMsg struct{}

// locatedMsg is sent when the device position is known
type locatedMsg struct {
	gen int
	pos geolocation.Position
	err error
}

// currentFetchedMsg is sent when current conditions have been fetched
type currentFetchedMsg struct {
	gen        int
	query      string // city typed by the user; empty for location searches
	byLocation bool
	weather    *models.CurrentWeather
	err        error
}

// forecastFetchedMsg is sent when the forecast has been fetched
type forecastFetchedMsg struct {
	gen      int
	forecast *models.ForecastResponse
	err      error
}

// loadRecentCities reads the persisted city list in the background
func loadRecentCities(store CityStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return recentLoadedMsg{cities: store.List()}
	}
}

// saveRecentCity records a successfully searched city
func saveRecentCity(store CityStore, gen int, city string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return recentSavedMsg{gen: gen, city: city}
		}
		store.Add(city)
		return recentSavedMsg{gen: gen, city: city, cities: store.List()}
	}
}

// locateDevice resolves the device position in the background
func locateDevice(locator geolocation.Locator, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		pos, err := locator.Locate(ctx)
		return locatedMsg{gen: gen, pos: pos, err: err}
	}
}

// fetchCurrentByName fetches current conditions for a city
func fetchCurrentByName(client owm.WeatherClient, gen int, city string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		weather, err := client.FetchCurrentByName(ctx, city)
		return currentFetchedMsg{gen: gen, query: city, weather: weather, err: err}
	}
}

// fetchCurrentByPosition fetches current conditions for a position
func fetchCurrentByPosition(client owm.WeatherClient, gen int, pos geolocation.Position, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		weather, err := client.FetchCurrentByCoordinates(ctx, pos.Latitude, pos.Longitude)
		return currentFetchedMsg{gen: gen, byLocation: true, weather: weather, err: err}
	}
}

// fetchForecast fetches the multi-day forecast for a city
func fetchForecast(client owm.WeatherClient, gen int, city string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		forecast, err := client.FetchForecastByName(ctx, city)
		return forecastFetchedMsg{gen: gen, forecast: forecast, err: err}
	}
}
