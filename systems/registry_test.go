package systems

import (
	"testing"

	"github.com/pthm-cable/physarum/telemetry"
)

func TestRegistryCoversPerfPhases(t *testing.T) {
	reg := NewSystemRegistry()
	for _, p := range telemetry.AllPhases() {
		if _, ok := reg.Get(p.String()); !ok {
			t.Errorf("phase %q has no registry entry", p)
		}
	}
	if len(reg.All()) != len(telemetry.AllPhases()) {
		t.Errorf("registry has %d entries, want %d", len(reg.All()), len(telemetry.AllPhases()))
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewSystemRegistry()
	if got := reg.GetName("sense_move"); got != "Sense+Move" {
		t.Errorf("GetName(sense_move) = %q", got)
	}
	if got := reg.GetName("missing"); got != "missing" {
		t.Errorf("GetName should fall back to the id, got %q", got)
	}
	if cats := reg.Categories(); len(cats) != 2 || cats[0] != "sim" || cats[1] != "output" {
		t.Errorf("unexpected categories %v", cats)
	}
	if n := len(reg.ByCategory("sim")); n != 4 {
		t.Errorf("expected 4 sim phases, got %d", n)
	}
}
