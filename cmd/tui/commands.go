package main

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"stocktracker/services/market"
)

// command is what a UI event means to the tracker. Key and mouse events are
// translated into commands, and dispatch is the only place they take effect.
type command interface {
	isCommand()
}

type (
	fetchRequested struct{ ticker string }
	themeToggled   struct{ dark bool }
	focusMoved     struct{ delta int }
	hoverMoved     struct{ col, row int } // relative to the chart's top-left
	hoverStepped   struct{ delta int }
	hoverCleared   struct{}
	quitRequested  struct{}
)

func (fetchRequested) isCommand() {}
func (themeToggled) isCommand()   {}
func (focusMoved) isCommand()     {}
func (hoverMoved) isCommand()     {}
func (hoverStepped) isCommand()   {}
func (hoverCleared) isCommand()   {}
func (quitRequested) isCommand()  {}

// Messages produced by background commands
type snapshotMsg struct {
	ticker   string
	snapshot *market.Snapshot
	err      error
}

type archivedMsg struct {
	ticker string
	saved  int
	err    error
}

// snapshotFetcher is satisfied by *market.Fetcher.
type snapshotFetcher interface {
	FetchSnapshot(ctx context.Context, ticker string) (*market.Snapshot, error)
}

// snapshotArchiver is satisfied by *market.Store.
type snapshotArchiver interface {
	SaveSnapshot(ctx context.Context, snap *market.Snapshot) (int, error)
}

func fetchSnapshot(f snapshotFetcher, ticker string) tea.Cmd {
	return func() tea.Msg {
		snap, err := f.FetchSnapshot(context.Background(), ticker)
		return snapshotMsg{ticker: ticker, snapshot: snap, err: err}
	}
}

func archiveSnapshot(a snapshotArchiver, snap *market.Snapshot) tea.Cmd {
	return func() tea.Msg {
		n, err := a.SaveSnapshot(context.Background(), snap)
		if err != nil {
			log.Printf("Archive error for %s: %v", snap.Symbol, err)
		}
		return archivedMsg{ticker: snap.Symbol, saved: n, err: err}
	}
}
