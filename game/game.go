// Package game owns the trail field and the agent swarm and advances them
// one frame at a time.
package game

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/physarum/components"
	"github.com/pthm-cable/physarum/config"
	"github.com/pthm-cable/physarum/systems"
	"github.com/pthm-cable/physarum/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool    // Output stats via slog
	StatsWindowSec float64 // Stats window size in seconds (0 = use config)
	SnapshotDir    string  // Directory for bookmark snapshots (empty = disabled)
	OutputDir      string  // Directory for CSV output (empty = disabled)
	Headless       bool    // Skip colorizing the display buffer
	StepsPerUpdate int     // Frames per Update call

	// Config overrides the global config when non-nil.
	Config *config.Config
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	seed int64

	world       *ecs.World
	agentMapper *ecs.Map3[components.Position, components.Heading, components.Agent]
	agentFilter *ecs.Filter3[components.Position, components.Heading, components.Agent]
	posMap      *ecs.Map1[components.Position]
	headingMap  *ecs.Map1[components.Heading]

	// Agent index -> entity; fixed after spawn
	agents []ecs.Entity

	field  *systems.Field
	params systems.SwarmParams
	policy string

	// Jitter for the sequential immediate policy
	jitter *systems.RandJitter

	parallel *parallelState

	// Display buffer, refreshed on render frames
	pixels   []color.RGBA
	rendered bool

	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
	lastStats        telemetry.WindowStats
	frameTally       telemetry.Tally
}

// NewGameWithOptions creates a game with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		world:          world,
		agentMapper:    ecs.NewMap3[components.Position, components.Heading, components.Agent](world),
		agentFilter:    ecs.NewFilter3[components.Position, components.Heading, components.Agent](world),
		posMap:         ecs.NewMap1[components.Position](world),
		headingMap:     ecs.NewMap1[components.Heading](world),
		field:          systems.NewField(cfg.Field.Width, cfg.Field.Height),
		params:         systems.SwarmParamsFromConfig(cfg),
		policy:         cfg.Swarm.DepositPolicy,
		jitter:         systems.NewRandJitter(opts.Seed),
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
	}
	g.field.SetParams(cfg.Derived.DecayRate32, cfg.Derived.DepositValue32)
	g.parallel = newParallelState(cfg.Swarm.Workers, opts.Seed)

	if !opts.Headless {
		g.pixels = make([]color.RGBA, cfg.Field.Width*cfg.Field.Height)
	}

	// Telemetry
	statsTicks := cfg.Derived.StatsTicks
	if opts.StatsWindowSec > 0 {
		statsTicks = int32(opts.StatsWindowSec * float64(cfg.Screen.TargetFPS))
	}
	dt := float32(1) / float32(max(cfg.Screen.TargetFPS, 1))
	budget := time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, budget)
	g.collector = telemetry.NewCollector(statsTicks, dt)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.spawnAgents()
	g.logStartup()

	return g
}

// spawnAgents creates the fixed population on a circle around the field center.
func (g *Game) spawnAgents() {
	n := g.cfg.Swarm.Agents
	cx := g.cfg.Derived.FieldW32 / 2
	cy := g.cfg.Derived.FieldH32 / 2
	radius := float32(g.cfg.Swarm.SpawnRadius)

	g.agents = make([]ecs.Entity, n)
	for k, pl := range systems.CirclePlacement(n, cx, cy, radius) {
		pos, heading := pl.Pos, pl.Heading
		agent := components.Agent{Index: uint32(k)}
		g.agents[k] = g.agentMapper.NewEntity(&pos, &heading, &agent)
	}
}

// Reset clears the field and returns every agent to its spawn placement.
// Jitter sources and bookmark state are reset so a reset run replays the original.
func (g *Game) Reset() {
	n := len(g.agents)
	cx := g.cfg.Derived.FieldW32 / 2
	cy := g.cfg.Derived.FieldH32 / 2
	radius := float32(g.cfg.Swarm.SpawnRadius)

	for k, e := range g.agents {
		pos, heading := systems.PlaceInCircle(k, n, cx, cy, radius)
		*g.posMap.Get(e) = pos
		*g.headingMap.Get(e) = heading
	}
	g.field.Reset()
	g.jitter = systems.NewRandJitter(g.seed)
	g.parallel.reseed(g.seed)
	g.tick = 0
	g.collector.Reset(0)
	g.bookmarkDetector.Reset()
	g.rendered = false

	slog.Info("simulation reset", "agents", n)
}

// Update runs stepsPerUpdate frames unless paused, colorizing after the last.
func (g *Game) Update() {
	if g.paused {
		return
	}
	g.advance(g.stepsPerUpdate, !g.headless)
}

// UpdateHeadless runs stepsPerUpdate frames without colorizing.
func (g *Game) UpdateHeadless() {
	g.advance(g.stepsPerUpdate, false)
}

// Step runs exactly one frame, even when paused.
func (g *Game) Step() {
	g.advance(1, !g.headless)
}

func (g *Game) advance(n int, render bool) {
	for i := 0; i < n; i++ {
		g.simulationStep(render && i == n-1)
	}
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// Field returns the trail field. Callers must treat it as read-only.
func (g *Game) Field() *systems.Field {
	return g.field
}

// Pixels returns the display buffer from the most recent render frame and
// whether one has been produced since the last reset.
func (g *Game) Pixels() ([]color.RGBA, bool) {
	return g.pixels, g.rendered
}

// AgentCount returns the fixed number of agents.
func (g *Game) AgentCount() int {
	return len(g.agents)
}

// Agent returns the state of the agent with index i.
func (g *Game) Agent(i int) (components.Position, components.Heading) {
	e := g.agents[i]
	return *g.posMap.Get(e), *g.headingMap.Get(e)
}

// Params returns the motion constants in use.
func (g *Game) Params() systems.SwarmParams {
	return g.params
}

// Policy returns the deposit policy name.
func (g *Game) Policy() string {
	return g.policy
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes Update.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns the frames run per Update call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the frames per Update call, at least 1.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(n, 1)
}

// PerfStats returns timing statistics over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records presented-frame timing for FPS display.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// LastStats returns the most recently flushed window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// SetStatsCallback registers fn to receive every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}
