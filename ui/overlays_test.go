package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayHandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()
	if !r.IsEnabled(OverlayHUD) {
		t.Fatal("hud should start enabled")
	}

	id, on, ok := r.HandleKeyPress(rl.KeyH)
	if !ok || id != OverlayHUD || on {
		t.Errorf("KeyH = (%q, %v, %v), want (hud, false, true)", id, on, ok)
	}
	if r.IsEnabled(OverlayHUD) {
		t.Error("hud still enabled after toggle")
	}

	if _, _, ok := r.HandleKeyPress(rl.KeyA); !ok || !r.IsEnabled(OverlayAgents) {
		t.Error("KeyA should enable the agents overlay")
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key reported a toggle")
	}
}

func TestOverlayCategories(t *testing.T) {
	r := NewOverlayRegistry()

	cats := r.Categories()
	want := []string{"panels", "field", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, cats[i], want[i])
		}
	}
	if n := len(r.ByCategory("field")); n != 3 {
		t.Errorf("field overlays = %d, want 3", n)
	}
}
