package systems

import (
	"math"
	"testing"
)

func TestPlaceInCircleSeed(t *testing.T) {
	pos, heading := PlaceInCircle(0, 8, 400, 400, 5)

	if pos.X != 405 || pos.Y != 400 {
		t.Errorf("expected agent 0 at (405, 400), got (%v, %v)", pos.X, pos.Y)
	}
	if heading.Angle != float32(math.Pi) {
		t.Errorf("expected heading pi, got %v", heading.Angle)
	}
}

func TestPlaceInCircleFacesCenter(t *testing.T) {
	const n = 8
	for k := 0; k < n; k++ {
		pos, heading := PlaceInCircle(k, n, 400, 400, 5)

		// Distance from center is the radius
		dx := float64(pos.X - 400)
		dy := float64(pos.Y - 400)
		if r := math.Hypot(dx, dy); math.Abs(r-5) > 1e-4 {
			t.Errorf("agent %d at radius %v, want 5", k, r)
		}

		// One step along the heading moves closer to the center
		nx := float64(pos.X) + math.Cos(float64(heading.Angle))
		ny := float64(pos.Y) + math.Sin(float64(heading.Angle))
		if d := math.Hypot(nx-400, ny-400); math.Abs(d-4) > 1e-4 {
			t.Errorf("agent %d heading %v does not face center (dist after step %v)", k, heading.Angle, d)
		}
	}
}

func TestPlaceInCircleDeterministic(t *testing.T) {
	a := CirclePlacement(1000, 400, 400, 5)
	b := CirclePlacement(1000, 400, 400, 5)

	if len(a) != 1000 {
		t.Fatalf("expected 1000 placements, got %d", len(a))
	}
	for k := range a {
		if a[k] != b[k] {
			t.Fatalf("placement %d differs between runs: %+v vs %+v", k, a[k], b[k])
		}
		pos, heading := PlaceInCircle(k, 1000, 400, 400, 5)
		if a[k].Pos != pos || a[k].Heading != heading {
			t.Fatalf("placement %d differs from PlaceInCircle", k)
		}
	}
}
