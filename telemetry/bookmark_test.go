package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_NetworkSpread(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(WindowStats{WindowEndTick: 60, FieldCoverage: 0.01}); hasBookmark(got, BookmarkNetworkSpread) {
		t.Error("no milestone crossed yet")
	}

	// Jumping past two milestones reports once, for the highest
	got := bd.Check(WindowStats{WindowEndTick: 120, FieldCoverage: 0.12})
	if len(got) != 1 || got[0].Type != BookmarkNetworkSpread {
		t.Fatalf("expected one network_spread bookmark, got %+v", got)
	}
	if got[0].Tick != 120 {
		t.Errorf("tick = %d, want 120", got[0].Tick)
	}

	// Same coverage again does not re-trigger
	if got := bd.Check(WindowStats{WindowEndTick: 180, FieldCoverage: 0.12}); hasBookmark(got, BookmarkNetworkSpread) {
		t.Error("milestone fired twice")
	}

	if got := bd.Check(WindowStats{WindowEndTick: 240, FieldCoverage: 0.3}); !hasBookmark(got, BookmarkNetworkSpread) {
		t.Error("expected 25% milestone")
	}
}

func TestBookmarkDetector_EdgeContactOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if hasBookmark(bd.Check(WindowStats{Bounces: 0}), BookmarkEdgeContact) {
		t.Error("no bounces, no bookmark")
	}
	if !hasBookmark(bd.Check(WindowStats{Bounces: 4}), BookmarkEdgeContact) {
		t.Error("expected edge_contact on first bounce")
	}
	if hasBookmark(bd.Check(WindowStats{Bounces: 9}), BookmarkEdgeContact) {
		t.Error("edge_contact should fire once")
	}
}

func TestBookmarkDetector_Contraction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 60), RadiusP50: 100})
	}

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 240, RadiusP50: 50}), BookmarkContraction) {
		t.Error("expected contraction bookmark")
	}
	// Peak resets to the contracted radius
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 300, RadiusP50: 45}), BookmarkContraction) {
		t.Error("small drop after reset should not trigger")
	}
}

func TestBookmarkDetector_SteadyState(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		got := bd.Check(WindowStats{WindowEndTick: int32(i * 60), FieldMass: 5000})
		if hasBookmark(got, BookmarkSteadyState) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("expected steady_state exactly once, got %d", fired)
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 60, RadiusP50: 100, FieldCoverage: 0.6, Bounces: 3})
	bd.Reset()

	// A small radius right after a reset is not a contraction from the old peak
	got := bd.Check(WindowStats{WindowEndTick: 5, RadiusP50: 5, FieldCoverage: 0.06, Bounces: 1})
	if hasBookmark(got, BookmarkContraction) {
		t.Error("contraction measured against pre-reset peak")
	}
	if !hasBookmark(got, BookmarkNetworkSpread) {
		t.Error("coverage milestones should fire again after reset")
	}
	if !hasBookmark(got, BookmarkEdgeContact) {
		t.Error("edge_contact should fire again after reset")
	}
	if got := bd.recent(10); len(got) != 1 {
		t.Errorf("history after reset holds %d windows, want 1", len(got))
	}
}
