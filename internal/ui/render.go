package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// renderCurrent renders the current conditions panel
func renderCurrent(s models.Snapshot, now time.Time) string {
	var lines []string

	lines = append(lines,
		titleStyle.Render(fmt.Sprintf("%s %s", iconLink(s.Icon), s.Name)),
		mutedStyle.Render(now.Format("Monday, January 2, 2006")),
		"",
		field("Temperature:", tempStyle.Render(formatNumber(s.TempC)+"°C")),
		field("Weather:", s.Description),
		field("Humidity:", strconv.Itoa(s.Humidity)+"%"),
		field("Wind Speed:", formatNumber(s.WindSpeed)+" m/s"),
	)

	return strings.Join(lines, "\n")
}

// renderForecast renders one card per day, wrapped to fit width, followed
// by a temperature trend line. Returns "" for no entries.
func renderForecast(entries []models.ForecastEntry, width int) string {
	if len(entries) == 0 {
		return ""
	}

	cards := make([]string, len(entries))
	for i, e := range entries {
		cards[i] = renderForecastCard(e)
	}

	perRow := width / (cardWidth + 3) // border + margin
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}

	if trend := renderTrend(entries); trend != "" {
		rows = append(rows, labelStyle.Render("Temperature trend"), trend)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderForecastCard renders a single forecast day
func renderForecastCard(e models.ForecastEntry) string {
	lines := []string{
		valueStyle.Bold(true).Render(e.Date.Format("Mon, Jan 2")),
		fmt.Sprintf("%s %s", iconLink(e.Icon), e.Description),
		field("Temp:", tempStyle.Render(formatNumber(e.TempC)+"°C")),
		field("Humidity:", strconv.Itoa(e.Humidity)+"%"),
		field("Wind:", formatNumber(e.WindSpeed)+" m/s"),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// renderTrend draws a sparkline of the daily temperatures. Values are
// shifted so the coldest day sits just above the baseline.
func renderTrend(entries []models.ForecastEntry) string {
	if len(entries) < 2 {
		return ""
	}

	temps := make([]float64, len(entries))
	for i, e := range entries {
		temps[i] = e.TempC
	}
	lowest := slices.Min(temps)
	for i := range temps {
		temps[i] = temps[i] - lowest + 1
	}

	sl := sparkline.New(len(temps)*4, 3)
	for _, t := range temps {
		// Widen each day so the line reads at card scale
		sl.PushAll([]float64{t, t, t, t})
	}
	sl.Draw()
	return sl.View()
}

// field renders a "Label: value" line
func field(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value)
}

// iconLink renders the icon glyph as a terminal hyperlink to the provider image
func iconLink(code string) string {
	glyph := models.IconGlyph(code)
	url := models.IconURL(code)
	if url == "" {
		return glyph
	}
	return ansi.SetHyperlink(url) + glyph + ansi.ResetHyperlink()
}

// formatNumber prints v without trailing zeros (14.2, 15, -3.75)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
