// Command backfill runs the historical stat backfill once and exits non-zero
// when the run is recorded as a failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/athlete-hub/internal/app"
	"github.com/riskibarqy/athlete-hub/internal/config"
	"github.com/riskibarqy/athlete-hub/internal/usecase"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
)

func main() {
	numSeasons := flag.Int("seasons", 0, "number of seasons ending with the current one (0 uses JOB_BACKFILL_SEASONS)")
	seasonList := flag.String("season-list", "", "comma separated seasons, e.g. 2022,2023; overrides -seasons")
	flag.Parse()

	seasons, err := parseSeasonList(*seasonList)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := usecase.ValidateNumSeasons(*numSeasons); err != nil {
		fmt.Fprintln(os.Stderr, "-seasons:", err)
		os.Exit(2)
	}

	os.Exit(run(seasons, *numSeasons))
}

func run(seasons []int, numSeasons int) int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// The scheduler belongs to the API process.
	cfg.SchedulerEnabled = false

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "command", "backfill")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}()

	entry := a.Jobs.HistoricalBackfillStats(ctx, seasons, numSeasons)
	logger.Info("backfill finished",
		"success", entry.Success,
		"message", entry.Message,
		"run_id", entry.RunID,
	)
	if !entry.Success {
		return 1
	}
	return 0
}

func parseSeasonList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		season, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", part, err)
		}
		if season < usecase.MinSeason {
			return nil, fmt.Errorf("invalid season %d", season)
		}
		out = append(out, season)
	}
	return out, nil
}
