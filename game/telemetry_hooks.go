package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/physarum/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleRadii(), g.sampleField())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if over := g.perfCollector.TakeOverBudget(); over > 0 && g.logStats {
		slog.Warn("frames over budget", "tick", g.tick, "count", over)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sampleRadii returns every agent's distance from the spawn center.
func (g *Game) sampleRadii() []float64 {
	cx := float64(g.cfg.Derived.FieldW32 / 2)
	cy := float64(g.cfg.Derived.FieldH32 / 2)

	radii := make([]float64, 0, len(g.agents))
	query := g.agentFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		radii = append(radii, math.Hypot(float64(pos.X)-cx, float64(pos.Y)-cy))
	}
	return radii
}

// sampleField reads out the post-decay field.
func (g *Game) sampleField() telemetry.FieldStats {
	return telemetry.FieldStats{
		Mass:     float64(g.field.Mass()),
		Peak:     float64(g.field.Peak()),
		Cells:    len(g.field.Cells),
		Coverage: g.field.Coverage(float32(g.cfg.Telemetry.CoverageThreshold)),
	}
}

// saveSnapshot writes the current state to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot captures agents and field at the current tick.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	agents := make([]telemetry.AgentState, len(g.agents))
	query := g.agentFilter.Query()
	for query.Next() {
		pos, heading, agent := query.Get()
		agents[agent.Index] = telemetry.AgentState{
			Index:   agent.Index,
			X:       pos.X,
			Y:       pos.Y,
			Heading: heading.Angle,
		}
	}

	field := make([]float32, len(g.field.Cells))
	g.field.CopyTo(field)

	return &telemetry.Snapshot{
		Version:       telemetry.SnapshotVersion,
		RNGSeed:       g.seed,
		FieldWidth:    g.field.W,
		FieldHeight:   g.field.H,
		DepositPolicy: g.policy,
		Tick:          g.tick,
		Agents:        agents,
		Field:         field,
		Bookmark:      bookmark,
	}
}

// SaveSnapshot writes the current state to dir, outside of any bookmark.
func (g *Game) SaveSnapshot(dir string) (string, error) {
	return telemetry.SaveSnapshot(g.createSnapshot(nil), dir)
}
