package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", 1) || !m.Enabled("c", 1) || !m.Enabled("e", 1) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", 1) || m.Enabled("d", 1) || m.Enabled("f", 1) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", 1) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", 1) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42); got != first {
			t.Fatal("rollout evaluation must be deterministic per subject")
		}
	}

	if m.Enabled("canary", 0) {
		t.Fatal("percentage rollout requires a non-zero subject id")
	}
}

func TestEnabled_UnknownFlag(t *testing.T) {
	m := NewManager("write_rate_limits=on")

	if m.Enabled("ranking_cache", 1) {
		t.Fatal("unknown flags must evaluate false")
	}

	var unset *Manager
	if unset.Enabled("write_rate_limits", 1) {
		t.Fatal("nil manager must evaluate false")
	}
}

func TestParseAndRaw(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}
}
