package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/physarum/systems"
)

// ProbeRadius is the half-width of the neighborhood shown around a probed cell.
const ProbeRadius = 3

// ProbeSide is the width of the probed neighborhood in cells.
const ProbeSide = 2*ProbeRadius + 1

// InspectorData holds the trail readout around one cell.
type InspectorData struct {
	CellX, CellY int
	Value        float32
	// Row-major neighborhood centered on the cell; cells off the field are -1
	Neighborhood [ProbeSide * ProbeSide]float32
	AgentsInCell int
}

// SampleProbe fills an InspectorData for cell (cx, cy) of f.
func SampleProbe(f *systems.Field, cx, cy int) InspectorData {
	d := InspectorData{CellX: cx, CellY: cy, Value: f.At(cx, cy)}
	for dy := -ProbeRadius; dy <= ProbeRadius; dy++ {
		for dx := -ProbeRadius; dx <= ProbeRadius; dx++ {
			i := (dy+ProbeRadius)*ProbeSide + dx + ProbeRadius
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= f.W || y >= f.H {
				d.Neighborhood[i] = -1
				continue
			}
			d.Neighborhood[i] = f.At(x, y)
		}
	}
	return d
}

// Inspector renders the cell probe panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2
	previewHeight := contentWidth

	panelHeight := previewHeight + r.Theme.LineHeight*6 + padding*3
	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	y := ins.y + padding
	y = ins.drawNeighborhood(ins.x+padding, y, contentWidth, data)
	y = r.DrawSpacer(y, 8)

	y = r.DrawSectionHeader(ins.x+padding, y, fmt.Sprintf("Cell (%d, %d)", data.CellX, data.CellY))
	y = r.DrawBar(ins.x+padding, y, "Trail", data.Value, contentWidth)
	y = r.DrawLabelValue(ins.x+padding, y, "Agents here", fmt.Sprintf("%d", data.AgentsInCell), contentWidth)

	peak, mean := neighborhoodStats(data.Neighborhood[:])
	y = r.DrawLabelValue(ins.x+padding, y, "Local peak", fmt.Sprintf("%.3f", peak), contentWidth)
	y = r.DrawLabelValue(ins.x+padding, y, "Local mean", fmt.Sprintf("%.3f", mean), contentWidth)

	return y
}

// drawNeighborhood draws the magnified cells around the probe.
func (ins *Inspector) drawNeighborhood(x, y, size int32, data InspectorData) int32 {
	rl.DrawRectangle(x, y, size, size, rl.Color{R: 25, G: 30, B: 35, A: 255})

	cell := float32(size) / ProbeSide
	gap := cell * 0.08
	for i, v := range data.Neighborhood {
		if v < 0 {
			continue
		}
		cx := float32(x) + float32(i%ProbeSide)*cell
		cy := float32(y) + float32(i/ProbeSide)*cell
		rl.DrawRectangle(int32(cx+gap), int32(cy+gap), int32(cell-gap*2), int32(cell-gap*2), systems.TrailColor(v))
	}

	// Center cell outline
	c := float32(ProbeRadius) * cell
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(x) + c, Y: float32(y) + c, Width: cell, Height: cell},
		2, ins.renderer.Theme.SectionHeader,
	)
	return y + size
}

// neighborhoodStats returns the max and mean over on-field cells.
func neighborhoodStats(vals []float32) (peak, mean float32) {
	n := 0
	for _, v := range vals {
		if v < 0 {
			continue
		}
		peak = max(peak, v)
		mean += v
		n++
	}
	if n > 0 {
		mean /= float32(n)
	}
	return peak, mean
}
