package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkNetworkSpread BookmarkType = "network_spread"
	BookmarkContraction   BookmarkType = "contraction"
	BookmarkSteadyState   BookmarkType = "steady_state"
	BookmarkEdgeContact   BookmarkType = "edge_contact"
)

// Coverage fractions that trigger a network_spread bookmark, in order.
var coverageMilestones = []float64{0.05, 0.10, 0.25, 0.50}

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the trail network's growth.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	nextMilestone    int
	peakRadius       float64
	steadyWindows    int
	edgeContactFired bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady state detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Reset forgets all history so milestones and once-only bookmarks can fire again.
func (bd *BookmarkDetector) Reset() {
	clear(bd.history)
	bd.historyIdx = 0
	bd.historyFull = false
	bd.nextMilestone = 0
	bd.peakRadius = 0
	bd.steadyWindows = 0
	bd.edgeContactFired = false
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkNetworkSpread(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkEdgeContact(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkContraction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkSteadyState(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.RadiusP50 > bd.peakRadius {
		bd.peakRadius = stats.RadiusP50
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkNetworkSpread(stats WindowStats) *Bookmark {
	var crossed float64
	for bd.nextMilestone < len(coverageMilestones) && stats.FieldCoverage >= coverageMilestones[bd.nextMilestone] {
		crossed = coverageMilestones[bd.nextMilestone]
		bd.nextMilestone++
	}
	if crossed == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkNetworkSpread,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Trail coverage reached %.0f%% (%.1f%%)", crossed*100, stats.FieldCoverage*100),
	}
}

func (bd *BookmarkDetector) checkEdgeContact(stats WindowStats) *Bookmark {
	if bd.edgeContactFired || stats.Bounces == 0 {
		return nil
	}
	bd.edgeContactFired = true
	return &Bookmark{
		Type:        BookmarkEdgeContact,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First boundary contact, %d bounces in window", stats.Bounces),
	}
}

func (bd *BookmarkDetector) checkContraction(stats WindowStats) *Bookmark {
	if bd.peakRadius < 20 {
		return nil
	}

	drop := 1.0 - stats.RadiusP50/bd.peakRadius
	if drop > 0.30 {
		oldPeak := bd.peakRadius
		bd.peakRadius = stats.RadiusP50
		return &Bookmark{
			Type:        BookmarkContraction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Median radius contracted %.0f%% from %.1f to %.1f", drop*100, oldPeak, stats.RadiusP50),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	var sum float64
	for _, h := range window {
		sum += h.FieldMass
	}
	mean := sum / 4
	if mean == 0 {
		bd.steadyWindows = 0
		return nil
	}

	var variance float64
	for _, h := range window {
		d := h.FieldMass - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.0004 means mass varies by less than 2%
	if variance/(mean*mean) < 0.0004 {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == 5 {
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Field mass steady near %.0f over 5+ windows", mean),
		}
	}
	return nil
}
