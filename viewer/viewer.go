// Package viewer drives a Game inside a raylib window: it uploads the
// colorized field, draws panels and overlays, and maps input to game controls.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/physarum/camera"
	"github.com/pthm-cable/physarum/game"
	"github.com/pthm-cable/physarum/renderer"
	"github.com/pthm-cable/physarum/ui"
)

// maxSpeed caps steps per update from the keyboard and slider.
const maxSpeed = 10

const controlsLegend = "[Space] Pause  [N] Step  [,/.] Speed  [R] Reset  [S] Snapshot  [C] Overlays  [Arrows/Wheel] Camera  [Home] Fit  [F11] Fullscreen"

// Viewer owns the window-side state for one Game.
type Viewer struct {
	game        *game.Game
	snapshotDir string

	screenWidth, screenHeight float32

	camera *camera.Camera
	trail  *renderer.TrailRenderer

	overlays   *ui.OverlayRegistry
	controls   *ui.ControlsPanel
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	statsPanel *ui.StatsPanel
	inspector  *ui.Inspector

	smooth bool
}

// New creates a viewer for g. The raylib window must already be open.
// snapshotDir receives manual snapshots; empty means the working directory.
func New(g *game.Game, snapshotDir string) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	fw, fh := g.Field().GridSize()

	v := &Viewer{
		game:         g,
		snapshotDir:  snapshotDir,
		screenWidth:  w,
		screenHeight: h,
		camera:       camera.New(w, h, float32(fw), float32(fh)),
		trail:        renderer.NewTrailRenderer(),
		overlays:     ui.NewOverlayRegistry(),
		controls:     ui.NewControlsPanel(10, 160, 220),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(10, 160, 260),
		statsPanel:   ui.NewStatsPanel(int32(w)-270, 10, 260),
		inspector:    ui.NewInspector(int32(w)-230, int32(h)-330, 220),
	}
	v.trail.Init(fw, fh)
	return v
}

// Update handles input and advances the game.
func (v *Viewer) Update() {
	v.handleInput()
	v.game.Update()
	if pixels, ok := v.game.Pixels(); ok {
		v.trail.Update(pixels)
	}
}

// Draw renders one window frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	x, y, w, h := v.camera.DestRect()
	v.trail.Draw(x, y, w, h)

	v.drawActiveOverlays()
	v.drawPanels()

	rl.EndDrawing()
	v.game.RecordFrame()
}

// drawPanels renders the HUD and any enabled panels.
func (v *Viewer) drawPanels() {
	if v.overlays.IsEnabled(ui.OverlayHUD) {
		fw, fh := v.game.Field().GridSize()
		act := v.hud.Draw(ui.HUDData{
			Title:        "Physarum",
			Agents:       v.game.AgentCount(),
			FieldW:       fw,
			FieldH:       fh,
			Policy:       v.game.Policy(),
			Tick:         v.game.Tick(),
			Speed:        v.game.StepsPerUpdate(),
			MaxSpeed:     maxSpeed,
			FPS:          v.game.PerfStats().FPS,
			Paused:       v.game.Paused(),
			ScreenWidth:  int32(v.screenWidth),
			ScreenHeight: int32(v.screenHeight),
		})
		v.applyHUDAction(act)
		v.hud.DrawControls(int32(v.screenWidth), int32(v.screenHeight), controlsLegend)
	}

	panelY := int32(160)
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.SetPosition(10, panelY)
		v.perfPanel.Draw(v.game.PerfStats())
		panelY += 200
	}
	if v.controls.IsVisible() {
		v.controls.SetPosition(10, panelY)
		v.controls.Draw(v.overlays)
	}
	if v.overlays.IsEnabled(ui.OverlayStats) {
		v.statsPanel.SetPosition(int32(v.screenWidth)-v.statsPanel.Width()-10, 10)
		v.statsPanel.Draw(v.game.LastStats())
	}
}

func (v *Viewer) applyHUDAction(act ui.HUDAction) {
	if act.TogglePause {
		v.game.SetPaused(!v.game.Paused())
	}
	if act.Step {
		v.game.Step()
	}
	if act.Reset {
		v.reset()
	}
	if act.Snapshot {
		v.snapshot()
	}
	if act.Speed != v.game.StepsPerUpdate() {
		v.game.SetStepsPerUpdate(act.Speed)
	}
}

func (v *Viewer) reset() {
	v.game.Reset()
	v.camera.Reset()
}

func (v *Viewer) snapshot() {
	dir := v.snapshotDir
	if dir == "" {
		dir = "."
	}
	path, err := v.game.SaveSnapshot(dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", v.game.Tick())
}

// Unload frees GPU resources. The game is left to the caller.
func (v *Viewer) Unload() {
	v.trail.Unload()
}
