package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSave(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:       SnapshotVersion,
		RNGSeed:       42,
		FieldWidth:    4,
		FieldHeight:   2,
		DepositPolicy: "deferred",
		Tick:          1000,
		Agents: []AgentState{
			{Index: 0, X: 1.5, Y: 0.25, Heading: 3.1},
			{Index: 1, X: 3.75, Y: 1, Heading: -0.4},
		},
		Field: []float32{0, 0.9, 0.882, 0, 0, 0, 0.5, 0},
		Bookmark: &Bookmark{
			Type:        BookmarkNetworkSpread,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("snapshot file not readable at %s: %v", path, err)
	}

	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.Tick != 1000 || loaded.DepositPolicy != "deferred" {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Agents) != 2 || loaded.Agents[1] != snapshot.Agents[1] {
		t.Errorf("agents mismatch: %+v", loaded.Agents)
	}
	if len(loaded.Field) != len(snapshot.Field) {
		t.Fatalf("field length %d, want %d", len(loaded.Field), len(snapshot.Field))
	}
	for i, v := range snapshot.Field {
		if loaded.Field[i] != v {
			t.Errorf("field[%d] = %v, want %v", i, loaded.Field[i], v)
		}
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkNetworkSpread {
		t.Errorf("bookmark not saved: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkSteadyState, Tick: 5000},
	}
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_5000_steady_state.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_3000.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}
}
