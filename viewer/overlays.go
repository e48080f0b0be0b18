package viewer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/physarum/ui"
)

// maxDrawnAgents bounds the agent overlay; larger swarms are sampled by stride.
const maxDrawnAgents = 2000

// sensorOverlayZoom is the zoom above which sampled agents also show their sensors.
const sensorOverlayZoom = 4

// drawActiveOverlays renders all currently enabled field overlays.
func (v *Viewer) drawActiveOverlays() {
	for _, id := range v.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayAgents:
			v.drawAgents()
		case ui.OverlayBounds:
			x, y, w, h := v.camera.DestRect()
			v.trail.DrawBounds(x, y, w, h, rl.Color{R: 90, G: 200, B: 130, A: 200})
		case ui.OverlayCellProbe:
			v.drawCellProbe()
		}
	}
}

// drawAgents marks a stride sample of agents with a heading tick.
func (v *Viewer) drawAgents() {
	n := v.game.AgentCount()
	stride := max(n/maxDrawnAgents, 1)
	zoom := v.camera.Zoom
	params := v.game.Params()
	showSensors := zoom >= sensorOverlayZoom

	dot := rl.Color{R: 255, G: 120, B: 60, A: 220}
	sensor := rl.Color{R: 120, G: 180, B: 255, A: 160}
	tick := max(3, 0.7*zoom)

	for i := 0; i < n; i += stride {
		pos, heading := v.game.Agent(i)
		sx, sy := v.camera.WorldToScreen(pos.X, pos.Y)
		if sx < 0 || sy < 0 || sx > v.screenWidth || sy > v.screenHeight {
			continue
		}

		c, s := cosSin(heading.Angle)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 1.5, dot)
		rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: sx + c*tick, Y: sy + s*tick}, dot)

		if !showSensors {
			continue
		}
		for _, off := range [3]float32{-params.SensorAngle, 0, params.SensorAngle} {
			sc, ss := cosSin(heading.Angle + off)
			px, py := v.camera.WorldToScreen(pos.X+sc*params.SensorDistance, pos.Y+ss*params.SensorDistance)
			rl.DrawCircleV(rl.Vector2{X: px, Y: py}, 2, sensor)
		}
	}
}

// drawCellProbe highlights the cell under the cursor and shows its readout.
func (v *Viewer) drawCellProbe() {
	m := rl.GetMousePosition()
	wx, wy := v.camera.ScreenToWorld(m.X, m.Y)
	if !v.camera.Contains(wx, wy) {
		return
	}

	f := v.game.Field()
	cx, cy := f.CellIndex(wx, wy)

	data := ui.SampleProbe(f, cx, cy)
	for i := 0; i < v.game.AgentCount(); i++ {
		pos, _ := v.game.Agent(i)
		if ax, ay := f.CellIndex(pos.X, pos.Y); ax == cx && ay == cy {
			data.AgentsInCell++
		}
	}

	sx, sy := v.camera.WorldToScreen(float32(cx), float32(cy))
	size := max(v.camera.Zoom, 2)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}, 1, rl.Yellow)

	v.inspector.Draw(data)
}

func cosSin(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(c), float32(s)
}
