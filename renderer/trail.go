// Package renderer draws the trail field with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TrailRenderer keeps the colorized field in a GPU texture, one texel per cell.
type TrailRenderer struct {
	tex         rl.Texture2D
	texW, texH  int
	initialized bool
}

// NewTrailRenderer creates a trail renderer. Call Init once the window exists.
func NewTrailRenderer() *TrailRenderer {
	return &TrailRenderer{}
}

// Init creates the field texture (must be called after the raylib window is created).
func (r *TrailRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}

	r.texW = gridW
	r.texH = gridH

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.SetTextureWrap(r.tex, rl.WrapClamp)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads a colorized frame. pixels must hold gridW*gridH entries.
func (r *TrailRenderer) Update(pixels []color.RGBA) {
	if !r.initialized || len(pixels) != r.texW*r.texH {
		return
	}
	rl.UpdateTexture(r.tex, pixels)
}

// SetSmooth toggles bilinear filtering when zoomed in.
func (r *TrailRenderer) SetSmooth(smooth bool) {
	if !r.initialized {
		return
	}
	if smooth {
		rl.SetTextureFilter(r.tex, rl.FilterBilinear)
	} else {
		rl.SetTextureFilter(r.tex, rl.FilterPoint)
	}
}

// Draw renders the field texture into the destination rectangle in screen space.
func (r *TrailRenderer) Draw(dstX, dstY, dstW, dstH float32) {
	if !r.initialized {
		return
	}

	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: dstX, Y: dstY, Width: dstW, Height: dstH}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// DrawBounds outlines the field rectangle.
func (r *TrailRenderer) DrawBounds(dstX, dstY, dstW, dstH float32, c color.RGBA) {
	rl.DrawRectangleLinesEx(rl.Rectangle{X: dstX, Y: dstY, Width: dstW, Height: dstH}, 1, c)
}

// Unload frees GPU resources.
func (r *TrailRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
