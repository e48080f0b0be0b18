package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpreadStats(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean, std, p10, p50, p90 := ComputeSpreadStats(values)

	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(std-2) > 1e-9 {
		t.Errorf("std = %v, want 2 (population)", std)
	}
	if math.Abs(p50-4.5) > 1e-9 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}
	if values[0] != 2 || values[7] != 9 {
		t.Error("input slice was modified")
	}
}

func TestComputeSpreadStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeSpreadStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(60, 1.0/60)

	if c.ShouldFlush(59) {
		t.Error("should not flush before a full window")
	}
	if !c.ShouldFlush(60) {
		t.Error("expected flush at window end")
	}

	c.Record(Tally{Straight: 6, Left: 2, Right: 1, Ties: 1, Bounces: 3})
	c.Record(Tally{Left: 1, Right: 1})

	field := FieldStats{Mass: 90, Peak: 0.9, Cells: 900, Coverage: 0.1}
	stats := c.Flush(60, []float64{1, 2, 3}, field)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 60 {
		t.Errorf("window = [%d, %d], want [0, 60]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-6 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.TurnsLeft != 3 || stats.TurnsRight != 2 || stats.Ties != 1 || stats.Bounces != 3 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if math.Abs(stats.TurnRate-5.0/12.0) > 1e-9 {
		t.Errorf("turn rate = %v, want 5/12", stats.TurnRate)
	}
	if math.Abs(stats.FieldMean-0.1) > 1e-9 {
		t.Errorf("field mean = %v, want 0.1", stats.FieldMean)
	}
	if stats.Agents != 3 || stats.RadiusMean != 2 {
		t.Errorf("agents=%d radius_mean=%v", stats.Agents, stats.RadiusMean)
	}

	// Counters reset and the next window starts at the flush tick
	if c.Current() != (Tally{}) {
		t.Errorf("expected counters reset, got %+v", c.Current())
	}
	if c.ShouldFlush(100) || !c.ShouldFlush(120) {
		t.Error("next window should end at tick 120")
	}
}

func TestFieldStatsMeanEmpty(t *testing.T) {
	if (FieldStats{Mass: 3}).Mean() != 0 {
		t.Error("mean of a zero-cell field should be 0")
	}
}
