package game

import (
	"log/slog"
)

// logStartup records the run parameters once.
func (g *Game) logStartup() {
	slog.Info("simulation initialized",
		"agents", len(g.agents),
		"field_w", g.field.W,
		"field_h", g.field.H,
		"policy", g.policy,
		"chunks", g.parallel.numChunks,
		"seed", g.seed,
		"decay_rate", g.field.DecayRate,
		"deposit_value", g.field.DepositValue,
	)
}

// LogState writes a one-line summary of the field and the current window.
func (g *Game) LogState() {
	cur := g.collector.Current()
	slog.Info("state",
		"tick", g.tick,
		"paused", g.paused,
		"steps_per_update", g.stepsPerUpdate,
		"field_mass", g.field.Mass(),
		"field_peak", g.field.Peak(),
		"window_steps", cur.Steps(),
		"window_bounces", cur.Bounces,
		"perf", g.perfCollector.Stats(),
	)
}
