package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Agents int `csv:"agents"`

	// Steering decisions during window
	TurnsStraight int     `csv:"turns_straight"`
	TurnsLeft     int     `csv:"turns_left"`
	TurnsRight    int     `csv:"turns_right"`
	Ties          int     `csv:"ties"`
	Bounces       int     `csv:"bounces"`
	TurnRate      float64 `csv:"turn_rate"`

	// Trail field (sampled at window end, after decay)
	FieldMass     float64 `csv:"field_mass"`
	FieldPeak     float64 `csv:"field_peak"`
	FieldMean     float64 `csv:"field_mean"`
	FieldCoverage float64 `csv:"field_coverage"`

	// Distance of agents from the spawn center
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`
}

// FieldStats is a readout of the trail field at a point in time.
type FieldStats struct {
	Mass     float64
	Peak     float64
	Cells    int
	Coverage float64 // fraction of cells above the coverage threshold
}

// Mean returns the average cell value.
func (f FieldStats) Mean() float64 {
	if f.Cells == 0 {
		return 0
	}
	return f.Mass / float64(f.Cells)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpreadStats returns mean, population standard deviation and
// percentiles of values. values is not modified.
func ComputeSpreadStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Int("turns_straight", s.TurnsStraight),
		slog.Int("turns_left", s.TurnsLeft),
		slog.Int("turns_right", s.TurnsRight),
		slog.Int("ties", s.Ties),
		slog.Int("bounces", s.Bounces),
		slog.Float64("turn_rate", s.TurnRate),
		slog.Float64("field_mass", s.FieldMass),
		slog.Float64("field_peak", s.FieldPeak),
		slog.Float64("field_mean", s.FieldMean),
		slog.Float64("field_coverage", s.FieldCoverage),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p50", s.RadiusP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.Agents,
		"turns_left", s.TurnsLeft,
		"turns_right", s.TurnsRight,
		"ties", s.Ties,
		"bounces", s.Bounces,
		"turn_rate", s.TurnRate,
		"field_mass", s.FieldMass,
		"field_peak", s.FieldPeak,
		"field_coverage", s.FieldCoverage,
		"radius_mean", s.RadiusMean,
		"radius_std", s.RadiusStd,
		"radius_p10", s.RadiusP10,
		"radius_p50", s.RadiusP50,
		"radius_p90", s.RadiusP90,
	)
}
