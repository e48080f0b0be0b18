package systems

import (
	"math"

	"github.com/pthm-cable/physarum/components"
	"github.com/pthm-cable/physarum/config"
)

// SwarmParams holds the motion constants shared by every agent.
type SwarmParams struct {
	MoveSpeed      float32
	SensorAngle    float32 // radians
	SensorDistance float32
	TurnSpeed      float32
	RandomStrength float32
	WobbleStep     float32

	// Bounds; positions are kept in the closed box [0,Width]x[0,Height]
	Width, Height float32
}

// DefaultSwarmParams returns the reference constants for an 800x800 field.
func DefaultSwarmParams() SwarmParams {
	return SwarmParams{
		MoveSpeed:      0.7,
		SensorAngle:    math.Pi / 5,
		SensorDistance: 8,
		TurnSpeed:      0.4,
		RandomStrength: 0.1,
		WobbleStep:     0.1,
		Width:          800,
		Height:         800,
	}
}

// SwarmParamsFromConfig builds SwarmParams from the loaded config.
func SwarmParamsFromConfig(cfg *config.Config) SwarmParams {
	return SwarmParams{
		MoveSpeed:      float32(cfg.Swarm.MoveSpeed),
		SensorAngle:    cfg.Derived.SensorAngle32,
		SensorDistance: float32(cfg.Swarm.SensorDistance),
		TurnSpeed:      float32(cfg.Swarm.TurnSpeed),
		RandomStrength: float32(cfg.Swarm.RandomStrength),
		WobbleStep:     float32(cfg.Swarm.WobbleStep),
		Width:          cfg.Derived.FieldW32,
		Height:         cfg.Derived.FieldH32,
	}
}

// Move advances a position by speed along angle.
func Move(pos *components.Position, angle, speed float32) {
	pos.X += speed * cos32(angle)
	pos.Y += speed * sin32(angle)
}

// Bounce clamps pos into [0,w]x[0,h]. Touching or crossing an edge on either
// axis counts as a hit; any hit reverses the heading by adding Pi exactly once.
// Returns true if the agent bounced.
func Bounce(pos *components.Position, heading *components.Heading, w, h float32) bool {
	hit := false
	if pos.X >= w {
		pos.X = w
		hit = true
	}
	if pos.X <= 0 {
		pos.X = 0
		hit = true
	}
	if pos.Y >= h {
		pos.Y = h
		hit = true
	}
	if pos.Y <= 0 {
		pos.Y = 0
		hit = true
	}
	if hit {
		heading.Angle += math.Pi
	}
	return hit
}

// StepResult describes the outcome of one agent step.
type StepResult struct {
	CellX, CellY int // deposit cell, already clamped
	Decision     Decision
	Bounced      bool
}

// StepAgent runs sense, steer, move, bounce and wobble for one agent and
// returns the cell it should deposit into. It reads the field but never
// writes it; the caller applies the deposit according to its policy.
func StepAgent(pos *components.Position, heading *components.Heading, f *Field, p *SwarmParams, j Jitter) StepResult {
	readings := Sense(f, pos.X, pos.Y, heading.Angle, p.SensorAngle, p.SensorDistance)

	r := (j.Unit() - 0.5) * p.RandomStrength
	angle, decision := Steer(heading.Angle, readings, p.TurnSpeed, r)
	heading.Angle = angle

	Move(pos, heading.Angle, p.MoveSpeed)
	bounced := Bounce(pos, heading, p.Width, p.Height)

	heading.Angle += float32(j.Tri()) * p.WobbleStep
	heading.Angle = NormalizeAngle(heading.Angle)

	ix, iy := f.CellIndex(pos.X, pos.Y)
	return StepResult{CellX: ix, CellY: iy, Decision: decision, Bounced: bounced}
}
