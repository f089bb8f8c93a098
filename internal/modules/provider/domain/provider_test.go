package domain_test

import (
	"errors"
	"strings"
	"testing"

	"focusdrive/internal/modules/provider/domain"
)

func manifest(name string, priority int, caps ...domain.Capability) domain.Manifest {
	return domain.Manifest{
		Name: name, Version: "1", Binary: "/opt/" + name, SHA256: strings.Repeat("a", 64),
		Enabled: true, Priority: priority, Capabilities: caps,
	}
}

func TestManifestValidateCollectsProblems(t *testing.T) {
	t.Parallel()
	if err := manifest("p", 0, domain.CapabilityDirections).Validate(); err != nil {
		t.Fatalf("expected valid manifest, got %v", err)
	}

	bad := domain.Manifest{SHA256: strings.Repeat("A", 64), Capabilities: []domain.Capability{"teleport", domain.CapabilityShield, domain.CapabilityShield}}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"unnamed", "name is required", "version is required", "binary is required", "sha256", "unknown capability: teleport", "shield listed twice"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	if err := manifest("p", 0).Validate(); err == nil || !strings.Contains(err.Error(), "at least one capability") {
		t.Fatalf("expected missing capability error, got %v", err)
	}
}

func TestValidateSetRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	set := []domain.Manifest{manifest("a", 0, domain.CapabilityShield), manifest("a", 1, domain.CapabilityFeedback)}
	if err := domain.ValidateSet(set); err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := domain.ValidateSet(set[:1]); err != nil {
		t.Fatalf("expected single manifest to pass, got %v", err)
	}
}

func TestCandidatesOrderByPriority(t *testing.T) {
	t.Parallel()
	set := []domain.Manifest{
		manifest("late", 5, domain.CapabilityDirections),
		manifest("sound", 0, domain.CapabilityFeedback),
		manifest("first", 1, domain.CapabilityDirections),
		manifest("tie", 5, domain.CapabilityDirections),
	}
	got := domain.Candidates(set, domain.CapabilityDirections)
	var names []string
	for _, m := range got {
		names = append(names, m.Name)
	}
	if strings.Join(names, ",") != "first,late,tie" {
		t.Fatalf("unexpected order: %v", names)
	}
	if len(domain.Candidates(set, domain.CapabilityShield)) != 0 {
		t.Fatal("expected no shield candidates")
	}
}

func TestMetadataCovers(t *testing.T) {
	t.Parallel()
	m := manifest("device", 0, domain.CapabilityShield, domain.CapabilityFeedback)
	full := domain.Metadata{Capabilities: []domain.Capability{domain.CapabilityFeedback, domain.CapabilityShield, domain.CapabilityDirections}}
	if err := full.Covers(m); err != nil {
		t.Fatalf("expected coverage, got %v", err)
	}
	partial := domain.Metadata{Capabilities: []domain.Capability{domain.CapabilityFeedback}}
	err := partial.Covers(m)
	if !errors.Is(err, domain.ErrCapabilityMissing) || !strings.Contains(err.Error(), "shield") {
		t.Fatalf("expected missing shield, got %v", err)
	}
}
