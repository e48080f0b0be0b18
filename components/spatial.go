package components

// Position represents an agent's position in field coordinates.
type Position struct {
	X, Y float32
}

// Heading represents an agent's direction of travel.
type Heading struct {
	Angle float32 // radians, kept in [-pi, pi]
}
