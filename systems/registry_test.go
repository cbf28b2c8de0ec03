package systems

import (
	"testing"

	"github.com/pthm-cable/murmur/telemetry"
)

func TestRegistryCoversPerfPhases(t *testing.T) {
	reg := NewSystemRegistry()
	for _, phase := range telemetry.Phases() {
		if _, ok := reg.Get(phase); !ok {
			t.Errorf("phase %q has no registry entry", phase)
		}
	}
	if len(reg.All()) != len(telemetry.Phases()) {
		t.Errorf("registry has %d entries, want %d", len(reg.All()), len(telemetry.Phases()))
	}
}

func TestRegistryGetNameFallback(t *testing.T) {
	reg := NewSystemRegistry()
	if got := reg.GetName(telemetry.PhaseCompute); got != "Steering" {
		t.Errorf("GetName(compute) = %q, want Steering", got)
	}
	if got := reg.GetName("unknown"); got != "unknown" {
		t.Errorf("GetName(unknown) = %q, want the ID back", got)
	}
	if n := len(reg.ByCategory("core")); n != 3 {
		t.Errorf("core phases = %d, want 3", n)
	}
}
