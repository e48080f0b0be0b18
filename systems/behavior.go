package systems

// Decision records which steering branch an agent took.
type Decision uint8

const (
	DecisionStraight Decision = iota // forward strictly strongest
	DecisionLeft
	DecisionRight
	DecisionTie // no clear winner; jitter only
)

func (d Decision) String() string {
	switch d {
	case DecisionStraight:
		return "straight"
	case DecisionLeft:
		return "left"
	case DecisionRight:
		return "right"
	default:
		return "tie"
	}
}

// Decide picks the steering branch for a set of readings.
func Decide(s SensorReadings) Decision {
	switch {
	case s.Forward > s.Left && s.Forward > s.Right:
		return DecisionStraight
	case s.Left > s.Right:
		return DecisionLeft
	case s.Right > s.Left:
		return DecisionRight
	default:
		return DecisionTie
	}
}

// Steer returns the new heading for the readings and jitter r.
// Turns move by turnSpeed+r (jitter added to the turn); straight and tie move by r alone.
func Steer(angle float32, s SensorReadings, turnSpeed, r float32) (float32, Decision) {
	d := Decide(s)
	switch d {
	case DecisionLeft:
		angle -= turnSpeed + r
	case DecisionRight:
		angle += turnSpeed + r
	default:
		angle += r
	}
	return angle, d
}
