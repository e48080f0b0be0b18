package telemetry

// Tally counts per-agent step outcomes. Workers keep one each and merge.
type Tally struct {
	Straight int
	Left     int
	Right    int
	Ties     int
	Bounces  int
}

// Add merges o into t.
func (t *Tally) Add(o Tally) {
	t.Straight += o.Straight
	t.Left += o.Left
	t.Right += o.Right
	t.Ties += o.Ties
	t.Bounces += o.Bounces
}

// Steps is the number of agent steps counted.
func (t Tally) Steps() int {
	return t.Straight + t.Left + t.Right + t.Ties
}

// Collector accumulates step outcomes within windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32
	tally           Tally
}

// NewCollector creates a new stats collector.
// windowTicks: frames per stats window
// dt: seconds per frame (used for tick-to-time conversion)
func NewCollector(windowTicks int32, dt float32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: windowTicks,
		dt:                  dt,
	}
}

// Record adds a frame's tally to the current window.
func (c *Collector) Record(t Tally) {
	c.tally.Add(t)
}

// Current returns the counts accumulated so far in this window.
func (c *Collector) Current() Tally {
	return c.tally
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// radii are agent distances from the spawn center; field is the post-decay
// readout of the trail field.
func (c *Collector) Flush(currentTick int32, radii []float64, field FieldStats) WindowStats {
	var turnRate float64
	if steps := c.tally.Steps(); steps > 0 {
		turnRate = float64(c.tally.Left+c.tally.Right) / float64(steps)
	}

	mean, std, p10, p50, p90 := ComputeSpreadStats(radii)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Agents: len(radii),

		TurnsStraight: c.tally.Straight,
		TurnsLeft:     c.tally.Left,
		TurnsRight:    c.tally.Right,
		Ties:          c.tally.Ties,
		Bounces:       c.tally.Bounces,
		TurnRate:      turnRate,

		FieldMass:     field.Mass,
		FieldPeak:     field.Peak,
		FieldMean:     field.Mean(),
		FieldCoverage: field.Coverage,

		RadiusMean: mean,
		RadiusStd:  std,
		RadiusP10:  p10,
		RadiusP50:  p50,
		RadiusP90:  p90,
	}

	c.windowStartTick = currentTick
	c.tally = Tally{}

	return stats
}

// Reset discards the current window and restarts it at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.tally = Tally{}
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
