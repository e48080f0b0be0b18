package game

import (
	"log/slog"

	"github.com/pthm-cable/physarum/config"
	"github.com/pthm-cable/physarum/systems"
	"github.com/pthm-cable/physarum/telemetry"
)

// simulationStep advances one frame: every agent steps and deposits, then
// the field decays exactly once. When render is set the post-decay field is
// colorized into the display buffer, so a cell deposited this frame shows
// deposit*decay rather than the raw deposit value.
func (g *Game) simulationStep(render bool) {
	perf := g.perfCollector
	perf.StartTick()

	switch g.policy {
	case config.PolicyImmediate:
		perf.StartPhase(telemetry.PhaseSenseMove)
		g.stepImmediate()
	default:
		perf.StartPhase(telemetry.PhaseSnapshot)
		g.snapshotAgents()

		perf.StartPhase(telemetry.PhaseSenseMove)
		g.computeIntents()

		perf.StartPhase(telemetry.PhaseDeposit)
		g.applyIntents()
	}

	perf.StartPhase(telemetry.PhaseDecay)
	g.field.Decay()
	g.tick++

	if render && g.pixels != nil {
		perf.StartPhase(telemetry.PhaseRender)
		if err := colorizeParallel(g.field, g.pixels, g.parallel.numChunks); err != nil {
			slog.Error("colorize failed", "error", err)
		} else {
			g.rendered = true
		}
	}

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(g.frameTally)
	g.frameTally = telemetry.Tally{}
	g.flushTelemetry()

	perf.EndTick()
}

// stepImmediate processes agents in index order, each reading the field as
// left by every earlier agent's deposit this frame.
func (g *Game) stepImmediate() {
	for _, e := range g.agents {
		pos := g.posMap.Get(e)
		heading := g.headingMap.Get(e)
		res := systems.StepAgent(pos, heading, g.field, &g.params, g.jitter)
		g.field.Deposit(res.CellX, res.CellY)
		tallyStep(&g.frameTally, res)
	}
}
