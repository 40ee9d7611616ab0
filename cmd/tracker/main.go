// Package main provides the headless command line for the stock tracker.
// It shares the fetcher and archive with the TUI.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"stocktracker/pkg/config"
	"stocktracker/pkg/database"
	"stocktracker/pkg/format"
	"stocktracker/services/market"
)

const defaultHistoryDays = 30

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, cleaning up...")
		cancel()
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	command, args := os.Args[1], os.Args[2:]

	switch command {
	case "quote":
		if len(args) != 1 {
			log.Fatalf("Usage: tracker quote <symbol>")
		}
		if err := showQuote(ctx, os.Stdout, market.NewFetcher(cfg), args[0]); err != nil {
			log.Fatalf("quote failed: %v", err)
		}
	case "archive":
		if len(args) == 0 {
			log.Fatalf("Usage: tracker archive <symbol>...")
		}
		withStore(ctx, cfg, func(_ *database.DB, store *market.Store) error {
			return archiveSymbols(ctx, market.NewFetcher(cfg), store, args)
		})
	case "history":
		if len(args) < 1 || len(args) > 2 {
			log.Fatalf("Usage: tracker history <symbol> [days]")
		}
		days := defaultHistoryDays
		if len(args) == 2 {
			if days, err = strconv.Atoi(args[1]); err != nil {
				log.Fatalf("Invalid days %q: %v", args[1], err)
			}
		}
		withStore(ctx, cfg, func(_ *database.DB, store *market.Store) error {
			return showHistory(ctx, os.Stdout, store, args[0], days)
		})
	case "status":
		withStore(ctx, cfg, func(db *database.DB, store *market.Store) error {
			return showStatus(ctx, os.Stdout, db, store)
		})
	default:
		log.Printf("Unknown command: %s", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: tracker <command>

Commands:
  quote <symbol>            Fetch and print the current quote and last month of closes
  archive <symbol>...       Fetch symbols and store their closes in the database
  history <symbol> [days]   Print archived closes (default 30 days)
  status                    Show what the archive holds`)
}

// withStore opens the archive, runs fn and exits on failure.
func withStore(ctx context.Context, cfg *config.Config, fn func(*database.DB, *market.Store) error) {
	if !cfg.ArchiveEnabled() {
		log.Fatalf("DATABASE_URL is not set")
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := fn(db, market.NewStore(db.DB)); err != nil {
		db.Close()
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

type snapshotFetcher interface {
	FetchSnapshot(ctx context.Context, ticker string) (*market.Snapshot, error)
}

func showQuote(ctx context.Context, w io.Writer, f snapshotFetcher, symbol string) error {
	snap, err := f.FetchSnapshot(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}

	for _, line := range snap.InfoLines() {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	return writeCloses(w, snap.Currency, snap.Closes)
}

func writeCloses(w io.Writer, currency string, closes []market.PricePoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Date\tClose (%s)\t\n", currency)
	for _, p := range closes {
		fmt.Fprintf(tw, "%s\t%s\t\n", format.Date(p.Date), format.Decimal(p.Close))
	}
	return tw.Flush()
}

func archiveSymbols(ctx context.Context, f snapshotFetcher, store *market.Store, symbols []string) error {
	total := 0
	var failed int

	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap, err := f.FetchSnapshot(ctx, symbol)
		if err != nil {
			log.Printf("Fetch error for %s: %v", symbol, err)
			failed++
			continue
		}

		saved, err := store.SaveSnapshot(ctx, snap)
		if err != nil {
			log.Printf("Store error for %s: %v", symbol, err)
			failed++
			continue
		}
		total += saved
	}

	log.Printf("Archived %d closes for %d of %d symbols", total, len(symbols)-failed, len(symbols))
	if failed == len(symbols) {
		return fmt.Errorf("failed to archive any symbol")
	}
	return nil
}

func showHistory(ctx context.Context, w io.Writer, store *market.Store, symbol string, days int) error {
	closes, err := store.GetHistorical(ctx, symbol, days)
	if err != nil {
		return err
	}
	if len(closes) == 0 {
		fmt.Fprintf(w, "No archived closes for %s in the last %d days\n", symbol, days)
		return nil
	}
	return writeCloses(w, market.DefaultCurrency, closes)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type archiveSummarizer interface {
	Summary(ctx context.Context) ([]market.TickerSummary, error)
}

func showStatus(ctx context.Context, w io.Writer, db healthChecker, store archiveSummarizer) error {
	if err := db.HealthCheck(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "Database: connected")

	summary, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		fmt.Fprintln(w, "Archive is empty")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Ticker\tCompany\tCloses\tLatest")
	for _, s := range summary {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Ticker, s.Company, s.Closes, format.Date(s.LatestDay))
	}
	return tw.Flush()
}
