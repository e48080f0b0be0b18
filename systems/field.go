package systems

import (
	"gonum.org/v1/gonum/blas/blas32"
)

// Default trail parameters.
const (
	DefaultDecayRate    float32 = 0.98
	DefaultDepositValue float32 = 0.9
)

// Field is a fixed-size grid of trail intensity in [0,1].
// Cells are stored row-major: index = y*W + x.
type Field struct {
	W, H int

	// Cells holds the trail intensity. Never reallocated.
	Cells []float32

	DecayRate    float32 // multiplier applied by Decay
	DepositValue float32 // value written by Deposit

	// blas view over Cells, built once
	vec blas32.Vector
}

// NewField creates a zeroed field with the default decay and deposit values.
func NewField(w, h int) *Field {
	cells := make([]float32, w*h)
	return &Field{
		W: w, H: h,
		Cells:        cells,
		DecayRate:    DefaultDecayRate,
		DepositValue: DefaultDepositValue,
		vec:          blas32.Vector{N: len(cells), Inc: 1, Data: cells},
	}
}

// SetParams overrides the decay multiplier and deposit value.
func (f *Field) SetParams(decayRate, depositValue float32) {
	f.DecayRate = decayRate
	f.DepositValue = depositValue
}

// CellIndex truncates (x, y) toward zero and clamps each axis into the grid.
// Clamping an already in-range cell returns it unchanged.
func (f *Field) CellIndex(x, y float32) (ix, iy int) {
	ix = clampInt(int(x), 0, f.W-1)
	iy = clampInt(int(y), 0, f.H-1)
	return ix, iy
}

// Deposit writes DepositValue into cell (ix, iy). It overwrites rather than adds.
// The caller must pass in-range indices.
func (f *Field) Deposit(ix, iy int) {
	f.Cells[iy*f.W+ix] = f.DepositValue
}

// DepositAt deposits into the cell containing (x, y), clamped to the grid.
func (f *Field) DepositAt(x, y float32) {
	ix, iy := f.CellIndex(x, y)
	f.Deposit(ix, iy)
}

// Sample returns the intensity of the cell containing (x, y), clamped to the grid.
// This is a point sample; there is no interpolation.
func (f *Field) Sample(x, y float32) float32 {
	ix, iy := f.CellIndex(x, y)
	return f.Cells[iy*f.W+ix]
}

// At returns the intensity at integer cell (ix, iy).
func (f *Field) At(ix, iy int) float32 {
	return f.Cells[iy*f.W+ix]
}

// Decay multiplies every cell by DecayRate in place.
// Must run exactly once per frame, after all of that frame's deposits.
func (f *Field) Decay() {
	blas32.Scal(f.DecayRate, f.vec)
}

// Reset zeroes every cell.
func (f *Field) Reset() {
	clear(f.Cells)
}

// Data returns the row-major intensity grid. Callers must not modify it.
func (f *Field) Data() []float32 {
	return f.Cells
}

// CopyTo copies the grid into dst and returns the number of cells copied.
func (f *Field) CopyTo(dst []float32) int {
	return copy(dst, f.Cells)
}

// GridSize returns the grid dimensions.
func (f *Field) GridSize() (int, int) {
	return f.W, f.H
}

// Mass returns the sum of all cell intensities.
func (f *Field) Mass() float32 {
	// Cells are never negative, so the absolute sum is the plain sum.
	return blas32.Asum(f.vec)
}

// Peak returns the highest cell intensity.
func (f *Field) Peak() float32 {
	if len(f.Cells) == 0 {
		return 0
	}
	return f.Cells[blas32.Iamax(f.vec)]
}

// Coverage returns the fraction of cells whose intensity exceeds threshold.
func (f *Field) Coverage(threshold float32) float64 {
	if len(f.Cells) == 0 {
		return 0
	}
	n := 0
	for _, v := range f.Cells {
		if v > threshold {
			n++
		}
	}
	return float64(n) / float64(len(f.Cells))
}
