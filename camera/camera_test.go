package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsField(t *testing.T) {
	cam := New(800, 600, 1600, 800)

	// Fit zoom is min(800/1600, 600/800) = 0.5
	if cam.Zoom != 0.5 || cam.MinZoom != 0.5 {
		t.Errorf("expected fit zoom 0.5, got zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}
	if cam.X != 800 || cam.Y != 400 {
		t.Errorf("expected camera at (800, 400), got (%f, %f)", cam.X, cam.Y)
	}

	x, y, w, h := cam.DestRect()
	if !near(x, 0) || !near(y, 100) || !near(w, 800) || !near(h, 400) {
		t.Errorf("dest rect = (%f,%f,%f,%f), want (0,100,800,400)", x, y, w, h)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(800, 800, 800, 800)

	sx, sy := cam.WorldToScreen(400, 400)
	if !near(sx, 400) || !near(sy, 400) {
		t.Errorf("expected screen center (400, 400), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 800, 800)
	cam.ZoomBy(3)
	cam.Pan(50, -20)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToField(t *testing.T) {
	cam := New(800, 800, 800, 800)
	cam.SetZoom(2)

	// Visible half extent is 200 cells, so the center stays in [200, 600]
	cam.Pan(-10000, 10000)
	if cam.X != 200 || cam.Y != 600 {
		t.Errorf("expected clamped center (200, 600), got (%f, %f)", cam.X, cam.Y)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX < 0 || maxY > 800 || maxX > 800 || minY < 0 {
		t.Errorf("view left the field: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestPanAtFitZoomStaysCentered(t *testing.T) {
	cam := New(800, 800, 800, 800)
	cam.Pan(300, 300)
	if cam.X != 400 || cam.Y != 400 {
		t.Errorf("expected centered camera, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 800, 800, 800)

	cam.SetZoom(0.1)
	if cam.Zoom != 1 {
		t.Errorf("expected zoom clamped to 1, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != maxZoomCells {
		t.Errorf("expected zoom clamped to %d, got %f", maxZoomCells, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(800, 800, 800, 800)

	wx, wy := cam.ScreenToWorld(300, 350)
	cam.ZoomAt(2, 300, 350)
	gx, gy := cam.ScreenToWorld(300, 350)
	if !near(wx, gx) || !near(wy, gy) {
		t.Errorf("cursor point moved: (%f,%f) -> (%f,%f)", wx, wy, gx, gy)
	}
}

func TestResizeKeepsFit(t *testing.T) {
	cam := New(800, 800, 800, 800)
	cam.Resize(400, 400)
	if cam.MinZoom != 0.5 || cam.Zoom != 1 {
		t.Errorf("after shrink: min=%f zoom=%f", cam.MinZoom, cam.Zoom)
	}

	cam.Resize(1600, 1600)
	if cam.Zoom != 2 {
		t.Errorf("zoom should rise to the new fit, got %f", cam.Zoom)
	}
}

func TestContains(t *testing.T) {
	cam := New(800, 800, 800, 800)
	if !cam.Contains(0, 0) || !cam.Contains(799.5, 10) {
		t.Error("points on the field should be contained")
	}
	if cam.Contains(800, 10) || cam.Contains(-0.1, 5) {
		t.Error("points off the field should not be contained")
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 800, 800, 800)
	cam.SetZoom(3)
	cam.Pan(100, 100)

	cam.Reset()

	if cam.X != 400 || cam.Y != 400 {
		t.Errorf("expected position (400, 400), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cam.Zoom)
	}
}
