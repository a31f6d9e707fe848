package ui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/recent"
)

// newProviderServer serves canned OpenWeatherMap responses for London and
// answers 404 for every other city.
func newProviderServer(t *testing.T) *httptest.Server {
	t.Helper()

	day := func(offset int) int64 {
		return testNow.Add(time.Duration(offset) * 24 * time.Hour).Unix()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "London" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
			return
		}
		fmt.Fprint(w, `{"name":"London","main":{"temp":14.2,"humidity":81},
			"weather":[{"description":"light rain","icon":"10d"}],"wind":{"speed":4.1}}`)
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "London" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"city":{"name":"London"},"list":[
			{"dt":%d,"main":{"temp":15,"humidity":70},"weather":[{"description":"today","icon":"01d"}],"wind":{"speed":2}},
			{"dt":%d,"main":{"temp":16,"humidity":65},"weather":[{"description":"clear sky","icon":"01d"}],"wind":{"speed":3}},
			{"dt":%d,"main":{"temp":12,"humidity":90},"weather":[{"description":"moderate rain","icon":"10d"}],"wind":{"speed":6}}
		]}`, testNow.Add(3*time.Hour).Unix(), day(1), day(2))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newIntegrationModel(t *testing.T) (Model, *recent.Store) {
	t.Helper()

	srv := newProviderServer(t)
	store, err := recent.Open(filepath.Join(t.TempDir(), "weather.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client := owm.New(owm.Config{BaseURL: srv.URL, APIKey: "test-key"})
	m := NewModel(Options{
		Client: client,
		Store:  store,
		Now:    func() time.Time { return testNow },
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), store
}

func TestIntegration_SearchFlow(t *testing.T) {
	m, store := newIntegrationModel(t)
	m = run(t, m, m.Init())

	m = typeText(m, "London")
	m, cmd := press(m, tea.KeyEnter)
	m = run(t, m, cmd)

	if m.state != StateDisplay {
		t.Fatalf("Expected StateDisplay, got %v (error %q)", m.state, m.errText)
	}

	view := m.View()
	for _, want := range []string{"London", "14.2°C", "light rain", "81%", "4.1 m/s", "clear sky", "moderate rain"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "today") {
		t.Error("Expected today's forecast point to be skipped")
	}
	if len(m.forecast) != 2 {
		t.Errorf("Expected 2 forecast days, got %d", len(m.forecast))
	}

	if got := store.List(); !slices.Equal(got, []string{"London"}) {
		t.Errorf("Expected London to be persisted, got %v", got)
	}

	// The stored city is now offered back as a suggestion
	m.searchInput.SetValue("")
	m = typeText(m, "lon")
	if !slices.Equal(m.suggestions.Items(), []string{"London"}) {
		t.Errorf("Expected London suggestion, got %v", m.suggestions.Items())
	}
}

func TestIntegration_CityNotFound(t *testing.T) {
	m, store := newIntegrationModel(t)

	m = typeText(m, "Nowhereville")
	m, cmd := press(m, tea.KeyEnter)
	m = run(t, m, cmd)

	if m.errText != "Error: City not found" {
		t.Errorf("Expected 'Error: City not found', got %q", m.errText)
	}
	if len(m.forecast) != 0 {
		t.Error("Expected forecast to be empty")
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected nothing persisted, got %v", got)
	}
	if !strings.Contains(m.View(), "Error: City not found") {
		t.Error("Expected the error in the view")
	}
}
