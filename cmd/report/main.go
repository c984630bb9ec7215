package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/export"
	"shareit/internal/logging"
)

// report is a one-shot tool: it exports bookings overlapping the given
// period into an xlsx file and exits.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var fromStr, toStr string
	flag.StringVar(&fromStr, "from", "", "period start, YYYY-MM-DD (default: 30 days ago)")
	flag.StringVar(&toStr, "to", "", "period end, YYYY-MM-DD (default: today)")
	flag.Parse()

	from, to, err := parsePeriod(fromStr, toStr)
	if err != nil {
		return err
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	logger := baseLogger.With().Str("component", "report").Logger()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	exporter := export.NewExporter(db, cfg.Exports.Path, &logger)

	path, err := exporter.BookingsReport(context.Background(), from, to)
	if err != nil {
		return fmt.Errorf("export bookings: %w", err)
	}

	fmt.Println(path)
	return nil
}

func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date: %w", err)
		}
		// Make the end date inclusive.
		to = to.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("-from must be before -to")
	}
	return from, to, nil
}
