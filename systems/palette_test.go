package systems

import (
	"image/color"
	"testing"
)

func TestTrailColor(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want color.RGBA
	}{
		{"zero", 0, color.RGBA{0, 0, 0, 0}},
		{"one", 1, color.RGBA{R: 214, G: 255, B: 255, A: 255}},
		{"quarter", 0.25, color.RGBA{R: 63, G: 15, B: 127, A: 63}},
		{"below range clamps", -1, color.RGBA{0, 0, 0, 0}},
		{"above range clamps", 3, color.RGBA{R: 214, G: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrailColor(tt.in); got != tt.want {
				t.Errorf("TrailColor(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackRGBA(t *testing.T) {
	got := PackRGBA(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78})
	if got != 0x12345678 {
		t.Errorf("PackRGBA = %#x, want 0x12345678", got)
	}
}

func TestDisplayBuffersAgree(t *testing.T) {
	f := NewField(4, 3)
	f.Deposit(1, 2)
	f.Cells[5] = 0.4

	rgba := make([]color.RGBA, 12)
	packed := make([]uint32, 12)
	f.Colorize(rgba)
	f.ToDisplayBuffer(packed)

	for i := range rgba {
		if PackRGBA(rgba[i]) != packed[i] {
			t.Errorf("cell %d: colorize %+v, packed %#x", i, rgba[i], packed[i])
		}
	}
	if rgba[2*4+1] != TrailColor(0.9) {
		t.Errorf("expected deposit color at row-major index, got %+v", rgba[9])
	}
}
