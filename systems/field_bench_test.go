package systems

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/physarum/components"
)

func benchField() *Field {
	f := NewField(800, 800)
	for i := range f.Cells {
		f.Cells[i] = float32(i%97) * 0.009
	}
	return f
}

// Benchmark decay with a plain scalar loop
func BenchmarkDecayScalar(b *testing.B) {
	f := benchField()
	rate := f.DecayRate

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range f.Cells {
			f.Cells[i] *= rate
		}
	}
}

// Benchmark decay through blas32.Scal
func BenchmarkDecayBLAS(b *testing.B) {
	f := benchField()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Decay()
	}
}

func BenchmarkMass(b *testing.B) {
	f := benchField()

	b.ResetTimer()
	var total float32
	for n := 0; n < b.N; n++ {
		total = f.Mass()
	}
	_ = total
}

func BenchmarkColorize(b *testing.B) {
	f := benchField()
	dst := make([]color.RGBA, len(f.Cells))

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Colorize(dst)
	}
}

func BenchmarkStepAgent(b *testing.B) {
	f := benchField()
	p := DefaultSwarmParams()
	j := NewRandJitter(1)
	placements := CirclePlacement(4096, 400, 400, 50)

	pos := make([]components.Position, len(placements))
	heading := make([]components.Heading, len(placements))
	for i, pl := range placements {
		pos[i], heading[i] = pl.Pos, pl.Heading
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i := n % len(pos)
		res := StepAgent(&pos[i], &heading[i], f, &p, j)
		f.Deposit(res.CellX, res.CellY)
	}
}
