package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

// demoClient serves canned weather for a few cities without network access
type demoClient struct {
	cities map[string]models.Conditions
}

func (d demoClient) FetchCurrentByName(ctx context.Context, city string) (*models.CurrentWeather, error) {
	cond, ok := d.cities[city]
	if !ok {
		return nil, &owm.RequestError{Op: "weather", Message: "City not found", Kind: owm.KindNotFound, Status: 404}
	}
	return &models.CurrentWeather{
		Name:    city,
		Main:    models.MainReadings{Temp: 14.2, Humidity: 81},
		Weather: []models.Conditions{cond},
		Wind:    models.Wind{Speed: 4.1},
		Dt:      time.Now().Unix(),
	}, nil
}

func (d demoClient) FetchCurrentByCoordinates(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	return d.FetchCurrentByName(ctx, "London")
}

func (d demoClient) FetchForecastByName(ctx context.Context, city string) (*models.ForecastResponse, error) {
	if _, ok := d.cities[city]; !ok {
		return nil, &owm.RequestError{Op: "forecast", Message: "Forecast data not found", Kind: owm.KindNotFound, Status: 404}
	}

	icons := []string{"01d", "03d", "10d", "04d", "02d"}
	fr := &models.ForecastResponse{}
	fr.City.Name = city
	start := time.Now().Truncate(3 * time.Hour)
	for i := range 40 {
		t := start.Add(time.Duration(i) * 3 * time.Hour)
		day := i / 8
		fr.List = append(fr.List, models.ForecastPoint{
			Dt:      t.Unix(),
			Main:    models.MainReadings{Temp: 11 + float64((day*7)%6) + float64(i%8)/4, Humidity: 55 + (i*7)%40},
			Weather: []models.Conditions{{Description: d.cities[city].Description, Icon: icons[day%len(icons)]}},
			Wind:    models.Wind{Speed: 2 + float64(i%5)},
		})
	}
	return fr, nil
}

// This demo shows the UI with mock data
func main() {
	client := demoClient{cities: map[string]models.Conditions{
		"London": {Description: "light rain", Icon: "10d"},
		"Paris":  {Description: "clear sky", Icon: "01d"},
		"Tokyo":  {Description: "few clouds", Icon: "02d"},
		"Lisbon": {Description: "scattered clouds", Icon: "03d"},
	}}

	m := ui.NewModel(ui.Options{
		Client:      client,
		Locator:     geolocation.StaticLocator{Position: geolocation.Position{Latitude: 51.5074, Longitude: -0.1278}},
		InitialCity: "London",
	})
	m.SetRecentCities([]string{"London", "Paris", "Tokyo", "Lisbon"})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
