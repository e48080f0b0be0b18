package systems

import (
	"image/color"
	"math"
)

// TrailColor maps an intensity in [0,1] to a display color.
// Channels: r = sin(i), g = i*i, b = sqrt(i), a = i, each scaled to 255 and truncated.
func TrailColor(i float32) color.RGBA {
	i = clamp01(i)
	return color.RGBA{
		R: uint8(float32(math.Sin(float64(i))) * 255),
		G: uint8(i * i * 255),
		B: uint8(float32(math.Sqrt(float64(i))) * 255),
		A: uint8(i * 255),
	}
}

// PackRGBA packs a color as a 32-bit RGBA8888 pixel (red in the high byte).
func PackRGBA(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// ColorizeRows fills dst rows [y0, y1) from the field. dst is row-major W*H.
func (f *Field) ColorizeRows(dst []color.RGBA, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := y * f.W
		for x := 0; x < f.W; x++ {
			dst[row+x] = TrailColor(f.Cells[row+x])
		}
	}
}

// Colorize fills dst with the display color of every cell.
func (f *Field) Colorize(dst []color.RGBA) {
	f.ColorizeRows(dst, 0, f.H)
}

// ToDisplayBuffer fills dst with packed RGBA8888 pixels, one per cell, row-major.
func (f *Field) ToDisplayBuffer(dst []uint32) {
	for i, v := range f.Cells {
		dst[i] = PackRGBA(TrailColor(v))
	}
}
