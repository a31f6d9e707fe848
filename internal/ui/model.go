package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/suggest"
)

const (
	msgInputMissing   = "Please enter a city name"
	msgGeoUnsupported = "Geolocation is not supported by this terminal."
)

// Click zones
const (
	zoneInput        = "search-input"
	zoneSearchButton = "search-button"
	zoneLocateButton = "locate-button"
)

func suggestionZone(i int) string {
	return fmt.Sprintf("suggestion-%d", i)
}

// AppState represents the current state of the application
type AppState int

const (
	StateIdle    AppState = iota // Nothing searched yet
	StateLoading                 // Waiting on location or weather data
	StateDisplay                 // Current conditions and forecast shown
	StateError                   // Last interaction failed
)

// CityStore is the persisted recent-city history
type CityStore interface {
	List() []string
	Add(city string)
}

// Options wires the model's collaborators
type Options struct {
	Client  owm.WeatherClient
	Store   CityStore
	Locator geolocation.Locator // nil when the device cannot be located

	Timeout time.Duration // per request, defaults to 10s
	Now     func() time.Time

	InitialCity   string // searched right after start
	LocateOnStart bool
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int

	// Search
	searchInput textinput.Model
	suggestions *suggest.Controller
	cities      []string

	// Collaborators
	client  owm.WeatherClient
	store   CityStore
	locator geolocation.Locator
	timeout time.Duration
	now     func() time.Time

	// generation identifies the latest search; older results are ignored
	generation int

	// Data
	current   *models.Snapshot
	forecast  []models.ForecastEntry
	errText   string
	updatedAt time.Time

	spinner spinner.Model
	zones   *zone.Manager

	initialCity   string
	locateOnStart bool
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a city name (e.g. London)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 48

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		state:         StateIdle,
		searchInput:   ti,
		suggestions:   suggest.New(),
		client:        opts.Client,
		store:         opts.Store,
		locator:       opts.Locator,
		timeout:       opts.Timeout,
		now:           opts.Now,
		spinner:       s,
		zones:         zone.New(),
		initialCity:   strings.TrimSpace(opts.InitialCity),
		locateOnStart: opts.LocateOnStart,
	}
}

// Init loads the recent cities and runs any startup search
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, loadRecentCities(m.store)}

	switch {
	case m.initialCity != "":
		city := m.initialCity
		cmds = append(cmds, func() tea.Msg { return startupSearchMsg{city: city} })
	case m.locateOnStart:
		cmds = append(cmds, func() tea.Msg { return startupLocateMsg{} })
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recentLoadedMsg:
		m.cities = msg.cities
		return m, nil

	case startupSearchMsg:
		m.searchInput.SetValue(msg.city)
		m.searchInput.CursorEnd()
		return m.startSearch()

	case startupLocateMsg:
		return m.startLocate()

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case locatedMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.showError(errorText(msg.err))
			return m, nil
		}
		return m, fetchCurrentByPosition(m.client, msg.gen, msg.pos, m.timeout)

	case currentFetchedMsg:
		return m.handleCurrent(msg)

	case recentSavedMsg:
		if msg.cities != nil {
			m.cities = msg.cities
		}
		if msg.gen != m.generation {
			return m, nil
		}
		return m, fetchForecast(m.client, msg.gen, msg.city, m.timeout)

	case forecastFetchedMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.showError(errorText(msg.err))
			return m, nil
		}
		m.forecast = models.BucketByDay(msg.forecast.List, m.now())
		m.state = StateDisplay
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleCurrent renders current conditions and schedules the next step
func (m Model) handleCurrent(msg currentFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.generation {
		return m, nil
	}
	if msg.err != nil {
		m.showError(errorText(msg.err))
		return m, nil
	}

	snap := msg.weather.Snapshot()
	m.current = &snap
	m.updatedAt = m.now()

	// Location searches look the forecast up by the name the provider
	// reported and are not added to the history.
	if msg.byLocation {
		return m, fetchForecast(m.client, msg.gen, msg.weather.Name, m.timeout)
	}
	return m, saveRecentCity(m.store, msg.gen, msg.query)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.suggestions.Hide()
		return m, nil

	case "ctrl+l":
		return m.startLocate()

	case "down", "ctrl+n":
		m.suggestions.Next()
		return m, nil

	case "up", "ctrl+p":
		m.suggestions.Prev()
		return m, nil

	case "enter":
		if _, ok := m.suggestions.Highlighted(); ok {
			return m.chooseSuggestion(m.suggestions.Cursor())
		}
		return m.startSearch()
	}

	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.suggestions.Update(after, m.cities)
	}
	return m, cmd
}

// handleMouse maps left clicks onto the buttons and the suggestion list.
// A click anywhere else outside the input closes the list.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i := range m.suggestions.Items() {
		if m.clicked(suggestionZone(i), msg) {
			return m.chooseSuggestion(i)
		}
	}

	switch {
	case m.clicked(zoneSearchButton, msg):
		return m.startSearch()
	case m.clicked(zoneLocateButton, msg):
		return m.startLocate()
	case m.clicked(zoneInput, msg):
		return m, m.searchInput.Focus()
	}

	m.suggestions.Hide()
	return m, nil
}

func (m Model) clicked(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// chooseSuggestion copies suggestion i into the input and searches for it
func (m Model) chooseSuggestion(i int) (tea.Model, tea.Cmd) {
	city, ok := m.suggestions.Select(i)
	if !ok {
		return m, nil
	}
	m.searchInput.SetValue(city)
	m.searchInput.CursorEnd()
	return m.startSearch()
}

// startSearch begins a name search for the input text
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.suggestions.Hide()
	m.generation++

	city := strings.TrimSpace(m.searchInput.Value())
	if city == "" {
		m.showError(msgInputMissing)
		return m, nil
	}

	m.beginLoading()
	return m, tea.Batch(
		m.spinner.Tick,
		fetchCurrentByName(m.client, m.generation, city, m.timeout),
	)
}

// startLocate begins a search for the device's own position
func (m Model) startLocate() (tea.Model, tea.Cmd) {
	m.suggestions.Hide()
	m.generation++

	if m.locator == nil {
		m.showError(msgGeoUnsupported)
		return m, nil
	}

	m.beginLoading()
	return m, tea.Batch(
		m.spinner.Tick,
		locateDevice(m.locator, m.generation, m.timeout),
	)
}

// beginLoading clears the previous result and error
func (m *Model) beginLoading() {
	m.state = StateLoading
	m.errText = ""
	m.current = nil
	m.forecast = nil
}

// showError replaces the current conditions with message and clears the forecast
func (m *Model) showError(message string) {
	m.state = StateError
	m.errText = message
	m.current = nil
	m.forecast = nil
}

func errorText(err error) string {
	return "Error: " + err.Error()
}

// SetCurrent sets the displayed current conditions
func (m *Model) SetCurrent(s models.Snapshot) {
	m.current = &s
	m.updatedAt = m.now()
}

// SetForecast sets the displayed forecast entries
func (m *Model) SetForecast(entries []models.ForecastEntry) {
	m.forecast = entries
}

// SetRecentCities replaces the cities offered as suggestions
func (m *Model) SetRecentCities(cities []string) {
	m.cities = cities
}

// SetState sets the application state
func (m *Model) SetState(state AppState) {
	m.state = state
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	title := titleStyle.Render("☂ Weather Terminal")
	subtitle := mutedStyle.Render("Current conditions & forecast from OpenWeatherMap")
	sections = append(sections, title, subtitle, "")

	searchBox := m.zones.Mark(zoneInput, searchBoxStyle.Render(m.searchInput.View()))
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.zones.Mark(zoneSearchButton, buttonStyle.Render("Search")),
		m.zones.Mark(zoneLocateButton, buttonStyle.Render("Locate me")),
	)
	sections = append(sections, searchBox, buttons)

	if m.suggestions.Visible() {
		sections = append(sections, m.renderSuggestions())
	}

	if m.state == StateLoading {
		sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Fetching weather...")))
	}

	if m.errText != "" {
		sections = append(sections, "", errorStyle.Render("✗ "+m.errText))
	}

	if m.current != nil {
		sections = append(sections, "", sectionBoxStyle.Render(renderCurrent(*m.current, m.now())))
	}

	if len(m.forecast) > 0 {
		sections = append(sections,
			sectionHeaderStyle.Render("FORECAST"),
			renderForecast(m.forecast, m.width),
		)
	}

	if m.state == StateDisplay && !m.updatedAt.IsZero() {
		sections = append(sections, mutedStyle.Render("Updated "+humanize.Time(m.updatedAt)))
	}

	help := helpStyle.Render("Enter: Search • ↑/↓: Suggestions • Ctrl+L: Locate me • Esc: Close list • Ctrl+C: Quit")
	sections = append(sections, help)

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderSuggestions renders the suggestion list under the input
func (m Model) renderSuggestions() string {
	items := m.suggestions.Items()
	lines := make([]string, len(items))
	for i, city := range items {
		line := valueStyle.Render(city)
		if i == m.suggestions.Cursor() {
			line = highlightStyle.Render(city)
		}
		lines[i] = m.zones.Mark(suggestionZone(i), line)
	}
	return suggestionBoxStyle.Render(strings.Join(lines, "\n"))
}
