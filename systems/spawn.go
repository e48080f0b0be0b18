package systems

import (
	"math"

	"github.com/pthm-cable/physarum/components"
)

// PlaceInCircle returns the seed position and heading of agent k of n:
// placed at angle 2*pi*k/n on a circle of the given radius, facing the center.
// It is a pure function of its arguments.
func PlaceInCircle(k, n int, cx, cy, radius float32) (components.Position, components.Heading) {
	theta := float64(k) / float64(n) * 2 * math.Pi
	pos := components.Position{
		X: float32(float64(cx) + math.Cos(theta)*float64(radius)),
		Y: float32(float64(cy) + math.Sin(theta)*float64(radius)),
	}
	// Heading is taken from the stored position so it points exactly at the center.
	angle := math.Atan2(float64(cy-pos.Y), float64(cx-pos.X))
	return pos, components.Heading{Angle: float32(angle)}
}

// Placement is one agent's seed state.
type Placement struct {
	Pos     components.Position
	Heading components.Heading
}

// CirclePlacement returns the seed state for all n agents in index order.
func CirclePlacement(n int, cx, cy, radius float32) []Placement {
	out := make([]Placement, n)
	for k := range out {
		out[k].Pos, out[k].Heading = PlaceInCircle(k, n, cx, cy, radius)
	}
	return out
}
