package main

import (
	"fmt"
	"time"

	"github.com/pthm-cable/physarum/config"
	"github.com/pthm-cable/physarum/game"
	"github.com/pthm-cable/physarum/telemetry"
)

// RunResult is one sweep row: the last stats window of a headless run.
type RunResult struct {
	Policy  string  `csv:"policy"`
	Seed    int64   `csv:"seed"`
	Ticks   int32   `csv:"ticks"`
	WallSec float64 `csv:"wall_sec"`

	telemetry.WindowStats
}

// runOne runs a headless game for ticks frames with the given policy and seed.
// base is not modified.
func runOne(base *config.Config, policy string, seed int64, ticks int32, windowSec float64) (RunResult, error) {
	cfg := *base
	cfg.Swarm.DepositPolicy = policy
	if err := cfg.Finalize(); err != nil {
		return RunResult{}, fmt.Errorf("policy %q: %w", policy, err)
	}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: windowSec,
		Config:         &cfg,
	})
	defer g.Unload()

	start := time.Now()
	for g.Tick() < ticks {
		g.UpdateHeadless()
	}

	return RunResult{
		Policy:      policy,
		Seed:        seed,
		Ticks:       g.Tick(),
		WallSec:     time.Since(start).Seconds(),
		WindowStats: g.LastStats(),
	}, nil
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
