package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for errors
	colorWarm    = lipgloss.Color("#FFD93D") // Yellow for temperatures
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	tempStyle = lipgloss.NewStyle().
			Foreground(colorWarm).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 2)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(52)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorBorder).
			Padding(0, 2).
			MarginRight(1)

	suggestionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1).
				Width(52)

	// Section header styles
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Padding(0, 1).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(cardWidth).
			MarginRight(1)
)

// cardWidth is the inner width of one forecast card
const cardWidth = 22
