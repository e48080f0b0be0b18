package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/physarum/components"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		s    SensorReadings
		want Decision
	}{
		{"forward dominates", SensorReadings{Left: 0.2, Forward: 0.5, Right: 0.1}, DecisionStraight},
		{"left strongest", SensorReadings{Left: 0.5, Forward: 0.1, Right: 0.1}, DecisionLeft},
		{"right strongest", SensorReadings{Left: 0.1, Forward: 0.1, Right: 0.5}, DecisionRight},
		{"forward ties left", SensorReadings{Left: 0.5, Forward: 0.5, Right: 0.1}, DecisionLeft},
		{"all zero", SensorReadings{}, DecisionTie},
		{"sides equal above forward", SensorReadings{Left: 0.4, Forward: 0.1, Right: 0.4}, DecisionTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.s); got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestSteerPriority(t *testing.T) {
	const turn = 0.4
	const r = 0.03

	// Forward dominates: only the jitter term applies
	got, d := Steer(1.0, SensorReadings{Left: 0.2, Forward: 0.5, Right: 0.1}, turn, r)
	if d != DecisionStraight || !near(got, 1.0+r) {
		t.Errorf("forward case: got %v (%v), want %v", got, d, 1.0+r)
	}

	// Left dominates: heading decreases by turn + r
	got, d = Steer(1.0, SensorReadings{Left: 0.5, Forward: 0.1, Right: 0.1}, turn, r)
	if d != DecisionLeft || !near(got, 1.0-(turn+r)) {
		t.Errorf("left case: got %v (%v), want %v", got, d, 1.0-(turn+r))
	}

	// Right dominates: heading increases by turn + r
	got, d = Steer(1.0, SensorReadings{Left: 0.1, Forward: 0.1, Right: 0.5}, turn, r)
	if d != DecisionRight || !near(got, 1.0+turn+r) {
		t.Errorf("right case: got %v (%v), want %v", got, d, 1.0+turn+r)
	}

	// Tie: jitter only
	got, d = Steer(1.0, SensorReadings{}, turn, r)
	if d != DecisionTie || !near(got, 1.0+r) {
		t.Errorf("tie case: got %v (%v), want %v", got, d, 1.0+r)
	}
}

func TestSteerJitterAddsToTurn(t *testing.T) {
	// A negative jitter shrinks a left turn rather than flipping its sign
	got, _ := Steer(0, SensorReadings{Left: 1}, 0.4, -0.05)
	if !near(got, -0.35) {
		t.Errorf("expected -0.35, got %v", got)
	}
}

func TestBounceReflection(t *testing.T) {
	pos := components.Position{X: 799.9, Y: 400}
	heading := components.Heading{Angle: 0}

	Move(&pos, heading.Angle, 0.7)
	if pos.X <= 800 {
		t.Fatalf("expected move to cross x=800, got %v", pos.X)
	}

	if !Bounce(&pos, &heading, 800, 800) {
		t.Fatal("expected bounce")
	}
	if pos.X != 800 || pos.Y != 400 {
		t.Errorf("expected clamp to (800, 400), got (%v, %v)", pos.X, pos.Y)
	}
	if !near(heading.Angle, math.Pi) {
		t.Errorf("expected heading pi, got %v", heading.Angle)
	}
}

func TestBounceCornerAddsPiOnce(t *testing.T) {
	pos := components.Position{X: -1, Y: 801}
	heading := components.Heading{Angle: 0.25}

	if !Bounce(&pos, &heading, 800, 800) {
		t.Fatal("expected bounce")
	}
	if pos.X != 0 || pos.Y != 800 {
		t.Errorf("expected clamp to (0, 800), got (%v, %v)", pos.X, pos.Y)
	}
	if !near(heading.Angle, 0.25+math.Pi) {
		t.Errorf("expected heading %v, got %v", 0.25+math.Pi, heading.Angle)
	}
}

func TestBounceClosedInterval(t *testing.T) {
	// Touching an edge exactly counts as a hit
	pos := components.Position{X: 0, Y: 10}
	heading := components.Heading{}
	if !Bounce(&pos, &heading, 800, 800) {
		t.Error("expected x == 0 to bounce")
	}

	pos = components.Position{X: 10, Y: 10}
	heading = components.Heading{Angle: 1}
	if Bounce(&pos, &heading, 800, 800) {
		t.Error("interior point should not bounce")
	}
	if heading.Angle != 1 {
		t.Errorf("interior heading changed to %v", heading.Angle)
	}
}

func TestStepAgentDeposit(t *testing.T) {
	f := NewField(800, 800)
	p := DefaultSwarmParams()
	j := &SequenceJitter{Units: []float32{0.5}, Tris: []int{0}}

	pos := components.Position{X: 100, Y: 100}
	heading := components.Heading{Angle: 0}

	res := StepAgent(&pos, &heading, f, &p, j)

	if !near(pos.X, 100.7) || pos.Y != 100 {
		t.Errorf("expected (100.7, 100), got (%v, %v)", pos.X, pos.Y)
	}
	if res.CellX != 100 || res.CellY != 100 {
		t.Errorf("expected deposit cell (100,100), got (%d,%d)", res.CellX, res.CellY)
	}
	if res.Decision != DecisionTie {
		t.Errorf("expected tie on empty field, got %v", res.Decision)
	}
	// StepAgent leaves the field untouched
	if f.Mass() != 0 {
		t.Error("StepAgent must not write the field")
	}
}

func TestStepAgentFollowsTrail(t *testing.T) {
	f := NewField(800, 800)
	p := DefaultSwarmParams()
	j := &SequenceJitter{Units: []float32{0.5}, Tris: []int{0}}

	// Trail under the left sensor: angle - pi/5 from heading 0
	pos := components.Position{X: 400, Y: 400}
	lx := pos.X + cos32(-p.SensorAngle)*p.SensorDistance
	ly := pos.Y + sin32(-p.SensorAngle)*p.SensorDistance
	f.DepositAt(lx, ly)

	heading := components.Heading{Angle: 0}
	res := StepAgent(&pos, &heading, f, &p, j)

	if res.Decision != DecisionLeft {
		t.Fatalf("expected left turn, got %v", res.Decision)
	}
	if !near(heading.Angle, -0.4) {
		t.Errorf("expected heading -0.4, got %v", heading.Angle)
	}
}

func TestStepAgentWobble(t *testing.T) {
	f := NewField(800, 800)
	p := DefaultSwarmParams()

	for _, tri := range []int{-1, 0, 1} {
		j := &SequenceJitter{Units: []float32{0.5}, Tris: []int{tri}}
		pos := components.Position{X: 400, Y: 400}
		heading := components.Heading{Angle: 0.5}
		StepAgent(&pos, &heading, f, &p, j)

		want := 0.5 + float32(tri)*0.1
		if !near(heading.Angle, want) {
			t.Errorf("tri=%d: expected heading %v, got %v", tri, want, heading.Angle)
		}
	}
}

func TestStepAgentBoundsInvariant(t *testing.T) {
	f := NewField(800, 800)
	p := DefaultSwarmParams()
	j := NewRandJitter(7)

	agents := []components.Position{{X: 0, Y: 0}, {X: 800, Y: 800}, {X: 799.9, Y: 400}, {X: 400, Y: 0.1}, {X: 1, Y: 799}}
	headings := []components.Heading{{Angle: -2.3}, {Angle: 0.7}, {Angle: 0}, {Angle: -1.5}, {Angle: 2.9}}

	for frame := 0; frame < 2000; frame++ {
		for i := range agents {
			res := StepAgent(&agents[i], &headings[i], f, &p, j)
			f.Deposit(res.CellX, res.CellY)

			a := agents[i]
			if a.X < 0 || a.X > 800 || a.Y < 0 || a.Y > 800 {
				t.Fatalf("frame %d agent %d out of bounds: (%v, %v)", frame, i, a.X, a.Y)
			}
			if h := headings[i].Angle; h < -math.Pi-eps || h > math.Pi+eps {
				t.Fatalf("frame %d agent %d heading not wrapped: %v", frame, i, h)
			}
			if f.At(res.CellX, res.CellY) != 0.9 {
				t.Fatalf("frame %d agent %d: deposit cell not 0.9", frame, i)
			}
		}
		f.Decay()
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{math.Pi + 0.5, -math.Pi + 0.5},
		{-math.Pi - 0.5, math.Pi - 0.5},
		{2, 2},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if !near(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		// Wrapping must not change the direction
		if !near(cos32(got), cos32(tt.in)) || !near(sin32(got), sin32(tt.in)) {
			t.Errorf("NormalizeAngle(%v) changed direction", tt.in)
		}
	}
}
