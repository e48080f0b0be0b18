package systems

import (
	"math"
	"testing"
)

func TestSenseSensorPlacement(t *testing.T) {
	const angle = math.Pi / 5

	tests := []struct {
		name         string
		cellX, cellY int
		want         SensorReadings
	}{
		{"forward", 108, 100, SensorReadings{Forward: 0.9}},
		// 8*cos(36deg) = 6.47, 8*sin(36deg) = 4.70; y grows downward so left is up
		{"left", 106, 95, SensorReadings{Left: 0.9}},
		{"right", 106, 104, SensorReadings{Right: 0.9}},
		{"behind", 92, 100, SensorReadings{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(200, 200)
			f.Deposit(tt.cellX, tt.cellY)

			got := Sense(f, 100, 100, 0, angle, 8)
			if got != tt.want {
				t.Errorf("Sense = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSenseClampsAtEdge(t *testing.T) {
	f := NewField(800, 800)
	f.Deposit(799, 400)

	// Forward sensor lands at x=806, which clamps onto the last column
	got := Sense(f, 798, 400.5, 0, math.Pi/5, 8)
	if got.Forward != f.DepositValue {
		t.Errorf("forward = %v, want clamped read of %v", got.Forward, f.DepositValue)
	}
}

func TestSenseDoesNotWrite(t *testing.T) {
	f := NewField(50, 50)
	f.Deposit(30, 25)
	before := f.Mass()

	Sense(f, 25, 25, 0, math.Pi/5, 8)
	if f.Mass() != before {
		t.Errorf("field mass changed from %v to %v", before, f.Mass())
	}
}
