package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/owm"
	"github.com/ngmaloney/weather-terminal/internal/recent"
	"github.com/ngmaloney/weather-terminal/internal/ui"
)

func main() {
	city := flag.String("city", "", "Search for a city on start (e.g., London)")
	locate := flag.Bool("locate", false, "Search for the current location on start")
	flag.Parse()

	if *city != "" && *locate {
		fmt.Println("Error: --city and --locate cannot be used together.")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "weather")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	store, err := recent.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	locator, err := geolocation.FromSetting(cfg.Locator)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	slog.Info("starting", "db", cfg.DBPath, "locator", cfg.Locator)

	m := ui.NewModel(ui.Options{
		Client:        owm.New(cfg.OWM()),
		Store:         store,
		Locator:       locator,
		Timeout:       cfg.HTTPTimeout,
		InitialCity:   *city,
		LocateOnStart: *locate,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
