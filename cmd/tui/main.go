// Package main provides the terminal user interface for the stock tracker.
// Type a ticker, fetch its quote and one-month history, and inspect the
// closing prices on a themeable line chart.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stocktracker/pkg/config"
	"stocktracker/pkg/database"
	"stocktracker/services/market"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var archive snapshotArchiver
	if cfg.ArchiveEnabled() {
		db, err := database.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		archive = market.NewStore(db.DB)
	}

	// Logging to stderr would draw over the alt screen
	logFile, err := tea.LogToFile(cfg.LogFile, "tracker")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	p := tea.NewProgram(
		initialModel(cfg, market.NewFetcher(cfg), archive),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
