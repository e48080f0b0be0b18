package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/physarum/systems"
	"github.com/pthm-cable/physarum/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Agents       int
	FieldW       int
	FieldH       int
	Policy       string
	Tick         int32
	Speed        int
	MaxSpeed     int
	FPS          float64
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUDAction reports which HUD buttons were pressed this frame.
type HUDAction struct {
	TogglePause bool
	Step        bool
	Reset       bool
	Snapshot    bool
	Speed       int // requested steps per update
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD text and run controls and returns the requested actions.
func (h *HUD) Draw(data HUDData) HUDAction {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Agents: %d | Field: %dx%d | Deposit: %s", data.Agents, data.FieldW, data.FieldH, data.Policy),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %.0f", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, h.renderer.Theme.SectionHeader)

	return h.drawButtons(data)
}

func (h *HUD) drawButtons(data HUDData) HUDAction {
	act := HUDAction{Speed: data.Speed}

	x, y := float32(10), float32(100)
	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Run"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 70, Height: 24}, pauseLabel) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + 76, Y: y, Width: 70, Height: 24}, "Step") {
		act.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 152, Y: y, Width: 70, Height: 24}, "Reset") {
		act.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + 228, Y: y, Width: 80, Height: 24}, "Snapshot") {
		act.Snapshot = true
	}

	maxSpeed := max(data.MaxSpeed, 1)
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 50, Y: y + 32, Width: 200, Height: 16},
		"Speed", fmt.Sprintf("%dx", data.Speed),
		float32(data.Speed), 1, float32(maxSpeed),
	)
	act.Speed = min(max(int(speed+0.5), 1), maxSpeed)

	return act
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewSystemRegistry(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	categories := p.registry.Categories()
	lines := len(p.registry.All()) + len(categories) + 4
	height := int32(lines)*(r.Theme.LineHeight+2) + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	contentW := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Frame Timing")
	y = r.DrawLabelValue(x, y, "Avg tick", stats.AvgTickDuration.Round(time.Microsecond).String(), contentW)
	y = r.DrawLabelValue(x, y, "Max tick", stats.MaxTickDuration.Round(time.Microsecond).String(), contentW)
	y = r.DrawLabelValue(x, y, "Over budget", fmt.Sprintf("%d", stats.OverBudget), contentW)

	for _, cat := range categories {
		y = r.DrawSectionHeader(x, y, phaseCategoryLabel(cat))
		for _, info := range p.registry.ByCategory(cat) {
			y = r.DrawPercentBar(x, y, info.Name, stats.PhasePct[info.ID], contentW)
		}
	}
}

func phaseCategoryLabel(cat string) string {
	switch cat {
	case "sim":
		return "Simulation"
	case "output":
		return "Output"
	default:
		return cat
	}
}

// StatsPanel renders the most recent stats window through field descriptors.
type StatsPanel struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		panel:    windowStatsPanel(width),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Width returns the panel width.
func (s *StatsPanel) Width() int32 {
	return s.panel.Width
}

// Draw renders the panel for one window.
func (s *StatsPanel) Draw(stats telemetry.WindowStats) {
	r := s.renderer
	padding := r.Theme.Padding

	lines := 0
	for _, sec := range s.panel.Sections {
		lines += len(sec.Fields) + 1
	}
	height := int32(lines)*(r.Theme.LineHeight+2) + padding*2
	r.DrawPanel(s.x, s.y, s.panel.Width, height)

	y := s.y + padding
	for _, sec := range s.panel.Sections {
		y = r.DrawSection(s.x+padding, y, sec, stats, s.panel.Width-padding*2)
	}
}

func windowStats(d any) telemetry.WindowStats {
	return d.(telemetry.WindowStats)
}

func statText(format string, get func(telemetry.WindowStats) any) FieldDescriptor {
	return FieldDescriptor{
		Widget:     WidgetText,
		TextGetter: func(d any) string { return fmt.Sprintf(format, get(windowStats(d))) },
	}
}

func labeled(label string, fd FieldDescriptor) FieldDescriptor {
	fd.Label = label
	fd.ID = label
	return fd
}

// windowStatsPanel lays out WindowStats.
func windowStatsPanel(width int32) PanelDescriptor {
	return PanelDescriptor{
		ID:     "window_stats",
		Title:  "Window Stats",
		Width:  width,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "window",
				Title: "Window",
				Fields: []FieldDescriptor{
					labeled("End tick", statText("%d", func(s telemetry.WindowStats) any { return s.WindowEndTick })),
					labeled("Sim time", statText("%.1fs", func(s telemetry.WindowStats) any { return s.SimTimeSec })),
				},
			},
			{
				ID:    "steering",
				Title: "Steering",
				Fields: []FieldDescriptor{
					labeled("Straight", statText("%d", func(s telemetry.WindowStats) any { return s.TurnsStraight })),
					labeled("Left/Right", statText("%s", func(s telemetry.WindowStats) any {
						return fmt.Sprintf("%d / %d", s.TurnsLeft, s.TurnsRight)
					})),
					{
						ID:     "turn_bias",
						Label:  "L/R bias",
						Widget: WidgetCenteredBar,
						Range:  CenteredRange(),
						Getter: func(d any) float32 {
							s := windowStats(d)
							turns := s.TurnsLeft + s.TurnsRight
							if turns == 0 {
								return 0
							}
							return float32(s.TurnsRight-s.TurnsLeft) / float32(turns)
						},
					},
					labeled("Ties", statText("%d", func(s telemetry.WindowStats) any { return s.Ties })),
					labeled("Bounces", statText("%d", func(s telemetry.WindowStats) any { return s.Bounces })),
					{
						ID:     "turn_rate",
						Label:  "Turn rate",
						Widget: WidgetBar,
						Getter: func(d any) float32 { return float32(windowStats(d).TurnRate) },
					},
				},
			},
			{
				ID:    "field",
				Title: "Field",
				Fields: []FieldDescriptor{
					labeled("Mass", statText("%.0f", func(s telemetry.WindowStats) any { return s.FieldMass })),
					labeled("Mean", statText("%.4f", func(s telemetry.WindowStats) any { return s.FieldMean })),
					{
						ID:     "peak",
						Label:  "Peak",
						Widget: WidgetBar,
						Range:  DefaultRange(),
						Getter: func(d any) float32 { return float32(windowStats(d).FieldPeak) },
					},
					{
						ID:     "peak_tint",
						Label:  "Peak tint",
						Widget: WidgetColorSwatch,
						ColorGetter: func(d any) rl.Color {
							return systems.TrailColor(float32(windowStats(d).FieldPeak))
						},
					},
					{
						ID:     "coverage",
						Label:  "Coverage",
						Widget: WidgetBar,
						Getter: func(d any) float32 { return float32(windowStats(d).FieldCoverage) },
					},
				},
			},
			{
				ID:    "spread",
				Title: "Spread",
				Fields: []FieldDescriptor{
					labeled("Radius", statText("%s", func(s telemetry.WindowStats) any {
						return fmt.Sprintf("%.1f +/- %.1f", s.RadiusMean, s.RadiusStd)
					})),
					labeled("p10/50/90", statText("%s", func(s telemetry.WindowStats) any {
						return fmt.Sprintf("%.0f / %.0f / %.0f", s.RadiusP10, s.RadiusP50, s.RadiusP90)
					})),
				},
			},
		},
	}
}
