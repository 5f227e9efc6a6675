package types

import "testing"

// ── DefaultConfig ────────────────────────────────────────────────────────────

func TestDefaultConfig_ReferenceIntegrationIsListed(t *testing.T) {
	cfg := DefaultConfig()
	found := false
	for _, name := range cfg.Entities {
		if name == cfg.ReferenceIntegration {
			found = true
		}
	}
	if !found {
		t.Errorf("reference integration %q not in entity list", cfg.ReferenceIntegration)
	}
}

func TestDefaultConfig_ExcludedNotInEntities(t *testing.T) {
	cfg := DefaultConfig()
	listed := make(map[string]bool)
	for _, name := range cfg.Entities {
		listed[name] = true
	}
	for _, name := range cfg.Excluded {
		if listed[name] {
			t.Errorf("excluded integration %q should not be in the entity list", name)
		}
	}
}

// ── ActiveEntities ───────────────────────────────────────────────────────────

func TestActiveEntities_PreservesOrder(t *testing.T) {
	cfg := Config{
		Entities: []string{"a", "b", "c", "d"},
		Excluded: []string{"b", "d"},
	}
	got := cfg.ActiveEntities()
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("ActiveEntities() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ActiveEntities()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestActiveEntities_NoExclusions(t *testing.T) {
	cfg := Config{Entities: []string{"sensor", "switch"}}
	if got := cfg.ActiveEntities(); len(got) != 2 {
		t.Errorf("ActiveEntities() = %v; want both entities", got)
	}
}

// ── IsIgnored ────────────────────────────────────────────────────────────────

func TestIsIgnored(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range []string{"device", "entity_category", "expire_after", "availability_topic"} {
		if !cfg.IsIgnored(name) {
			t.Errorf("IsIgnored(%q) = false; want true", name)
		}
	}
	if cfg.IsIgnored("state_topic") {
		t.Error("IsIgnored(state_topic) = true; want false")
	}
}
