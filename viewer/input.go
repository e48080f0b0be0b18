package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/physarum/ui"
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.game.SetPaused(!v.game.Paused())
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.game.Step()
	}

	// Steps-per-update control with < > keys (comma and period)
	speed := v.game.StepsPerUpdate()
	if rl.IsKeyPressed(rl.KeyComma) && speed > 1 {
		v.game.SetStepsPerUpdate(speed - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && speed < maxSpeed {
		v.game.SetStepsPerUpdate(speed + 1)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		v.reset()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		v.snapshot()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.controls.Toggle()
	}

	v.handleOverlayKeys()
	v.handleCameraInput()
}

// handleOverlayKeys checks for overlay toggle key presses.
func (v *Viewer) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		v.overlays.HandleKeyPress(key)
	}

	if smooth := v.overlays.IsEnabled(ui.OverlaySmooth); smooth != v.smooth {
		v.smooth = smooth
		v.trail.SetSmooth(smooth)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	v.camera.Resize(w, h)
	v.inspector.SetPosition(int32(w)-230, int32(h)-330)
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	// Screen-space pan; the camera converts to world units
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panSpeed)
	}

	// Drag with the right mouse button
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.camera.Pan(-d.X, -d.Y)
	}

	// Zoom toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		v.camera.ZoomAt(1+wheel*0.1, m.X, m.Y)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}
