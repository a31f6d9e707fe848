package ui

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// Fakes

type fakeClient struct {
	weather     *models.CurrentWeather
	forecast    *models.ForecastResponse
	currentErr  error
	coordsErr   error
	forecastErr error
	calls       []string
}

func (f *fakeClient) FetchCurrentByName(ctx context.Context, city string) (*models.CurrentWeather, error) {
	f.calls = append(f.calls, "current:"+city)
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	w := *f.weather
	return &w, nil
}

func (f *fakeClient) FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	f.calls = append(f.calls, fmt.Sprintf("coords:%g,%g", lat, lon))
	if f.coordsErr != nil {
		return nil, f.coordsErr
	}
	w := *f.weather
	return &w, nil
}

func (f *fakeClient) FetchForecastByName(ctx context.Context, city string) (*models.ForecastResponse, error) {
	f.calls = append(f.calls, "forecast:"+city)
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.forecast, nil
}

type memStore struct {
	cities []string
}

func (s *memStore) List() []string {
	return slices.Clone(s.cities)
}

func (s *memStore) Add(city string) {
	if !slices.Contains(s.cities, city) {
		s.cities = append(s.cities, city)
	}
}

type fakeLocator struct {
	pos geolocation.Position
	err error
}

func (f fakeLocator) Locate(ctx context.Context) (geolocation.Position, error) {
	return f.pos, f.err
}

// Fixtures

func londonWeather() *models.CurrentWeather {
	return &models.CurrentWeather{
		Name:    "London",
		Main:    models.MainReadings{Temp: 14.2, Humidity: 81},
		Weather: []models.Conditions{{Description: "light rain", Icon: "10d"}},
		Wind:    models.Wind{Speed: 4.1},
	}
}

// threeDayForecast covers the rest of today plus three full days in 3 hour steps.
func threeDayForecast() *models.ForecastResponse {
	fr := &models.ForecastResponse{}
	start := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	for t := start; t.Before(end); t = t.Add(3 * time.Hour) {
		fr.List = append(fr.List, models.ForecastPoint{
			Dt:      t.Unix(),
			Main:    models.MainReadings{Temp: float64(t.Day()) + float64(t.Hour())/100, Humidity: 60},
			Weather: []models.Conditions{{Description: fmt.Sprintf("day %d", t.Day()), Icon: "02d"}},
			Wind:    models.Wind{Speed: 3},
		})
	}
	return fr
}

func newTestModel(client *fakeClient, store CityStore, locator geolocation.Locator) Model {
	m := NewModel(Options{
		Client:  client,
		Store:   store,
		Locator: locator,
		Now:     func() time.Time { return testNow },
	})
	m.width = 120
	m.height = 40
	return m
}

// Driving helpers

// run executes cmd and feeds every application message it yields back into
// the model until no work is left. Framework messages (blink, spinner ticks,
// quit) are dropped.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case recentLoadedMsg, recentSavedMsg, startupSearchMsg, startupLocateMsg,
			locatedMsg, currentFetchedMsg, forecastFetchedMsg:
			updated, next := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, next)
		}
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model), cmd
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}
