package models

import (
	"fmt"
	"time"
)

// Conditions is the "weather[]" element of an OpenWeatherMap payload
type Conditions struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // e.g. "10d"
}

// MainReadings is the "main" object of an OpenWeatherMap payload
type MainReadings struct {
	Temp      float64 `json:"temp"` // Celsius (units=metric)
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"` // percent
}

// Wind is the "wind" object of an OpenWeatherMap payload
type Wind struct {
	Speed float64 `json:"speed"` // m/s (units=metric)
	Deg   int     `json:"deg"`
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather is the response of the /weather endpoint
type CurrentWeather struct {
	Name    string       `json:"name"`
	Coord   Coordinates  `json:"coord"`
	Main    MainReadings `json:"main"`
	Weather []Conditions `json:"weather"`
	Wind    Wind         `json:"wind"`
	Dt      int64        `json:"dt"`
}

// Snapshot flattens the response into the values shown on screen
func (c *CurrentWeather) Snapshot() Snapshot {
	s := Snapshot{
		Name:      c.Name,
		TempC:     c.Main.Temp,
		Humidity:  c.Main.Humidity,
		WindSpeed: c.Wind.Speed,
	}
	if len(c.Weather) > 0 {
		s.Description = c.Weather[0].Description
		s.Icon = c.Weather[0].Icon
	}
	return s
}

// Snapshot is a single point-in-time weather reading for a location
type Snapshot struct {
	Name        string
	TempC       float64
	Description string
	Humidity    int
	WindSpeed   float64
	Icon        string
}

// IconURL returns the provider-hosted image for an icon code
func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", code)
}

// IconGlyph maps an icon code ("01d", "10n", ...) to a terminal glyph
func IconGlyph(code string) string {
	if len(code) < 2 {
		return "·"
	}
	night := len(code) > 2 && code[2] == 'n'

	switch code[:2] {
	case "01":
		if night {
			return "☾"
		}
		return "☀"
	case "02":
		return "⛅"
	case "03", "04":
		return "☁"
	case "09", "10":
		return "☂"
	case "11":
		return "⚡"
	case "13":
		return "❄"
	case "50":
		return "≋"
	default:
		return "·"
	}
}

// ForecastPoint is one 3-hour step of the /forecast response
type ForecastPoint struct {
	Dt      int64        `json:"dt"` // unix seconds
	Main    MainReadings `json:"main"`
	Weather []Conditions `json:"weather"`
	Wind    Wind         `json:"wind"`
}

// Time returns the point's timestamp in loc
func (p ForecastPoint) Time(loc *time.Location) time.Time {
	return time.Unix(p.Dt, 0).In(loc)
}

// ForecastResponse is the response of the /forecast endpoint
type ForecastResponse struct {
	List []ForecastPoint `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}
