package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of a simulation frame.
type Phase uint8

// Phases of a frame, in execution order.
const (
	PhaseSnapshot  Phase = iota // copy agent state out of the ECS
	PhaseSenseMove              // sense, steer, move, bounce
	PhaseDeposit                // write back agents and deposit trail
	PhaseDecay                  // field decay
	PhaseRender                 // colorize the field for display
	PhaseTelemetry              // window stats and output
	numPhases
)

var phaseNames = [numPhases]string{
	"snapshot", "sense_move", "deposit", "decay", "render", "telemetry",
}

// String returns the phase's log/CSV key.
func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// AllPhases returns every phase in execution order.
func AllPhases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [numPhases]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	inPhase    bool
	lastPhase  Phase

	// Soft real-time budget; frames slower than this are counted, not dropped
	budget     time.Duration
	overBudget int

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
// budget: target frame time; zero disables budget tracking.
func NewPerfCollector(windowSize int, budget time.Duration) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		budget:     budget,
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	if p.inPhase {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
	p.inPhase = true
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.inPhase {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
	p.current.TickDuration = now.Sub(p.tickStart)

	if p.budget > 0 && p.current.TickDuration > p.budget {
		p.overBudget++
	}

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records presented-frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// TakeOverBudget returns the number of frames over budget since the last call
// and resets the count.
func (p *PerfCollector) TakeOverBudget() int {
	n := p.overBudget
	p.overBudget = 0
	return n
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame step timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations) and share of the average frame
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frames in the window slower than the budget
	OverBudget int

	// Presented frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var totalTick time.Duration
	var phaseSum [numPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration

		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}
		if p.budget > 0 && s.TickDuration > p.budget {
			stats.OverBudget++
		}
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)
	stats.AvgTickDuration = avgTick
	if avgTick > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(avgTick)
	}

	for ph, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		name := Phase(ph).String()
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[name] = avg
		if avgTick > 0 {
			stats.PhasePct[name] = float64(avg) / float64(avgTick) * 100
		}
	}

	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"over_budget", s.OverBudget,
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range AllPhases() {
		name := phase.String()
		if pct, ok := s.PhasePct[name]; ok && pct > 0.1 {
			attrs = append(attrs, name+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Int("over_budget", s.OverBudget),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	OverBudget   int     `csv:"over_budget"`
	FPS          float64 `csv:"fps"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
	SenseMovePct float64 `csv:"sense_move_pct"`
	DepositPct   float64 `csv:"deposit_pct"`
	DecayPct     float64 `csv:"decay_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		OverBudget:   s.OverBudget,
		FPS:          s.FPS,
		SnapshotPct:  s.PhasePct[PhaseSnapshot.String()],
		SenseMovePct: s.PhasePct[PhaseSenseMove.String()],
		DepositPct:   s.PhasePct[PhaseDeposit.String()],
		DecayPct:     s.PhasePct[PhaseDecay.String()],
		RenderPct:    s.PhasePct[PhaseRender.String()],
		TelemetryPct: s.PhasePct[PhaseTelemetry.String()],
	}
}
