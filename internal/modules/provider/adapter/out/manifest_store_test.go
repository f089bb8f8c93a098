package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	providerout "focusdrive/internal/modules/provider/adapter/out"
	"focusdrive/internal/modules/provider/domain"
)

func writeManifests(t *testing.T, home, raw string) {
	t.Helper()
	if err := os.WriteFile(providerout.ManifestPath(home), []byte(raw), 0o644); err != nil {
		t.Fatalf("write manifests: %v", err)
	}
}

func TestFileManifestStoreMissingFile(t *testing.T) {
	t.Parallel()
	manifests, err := providerout.NewFileManifestStore(t.TempDir()).Load(context.Background())
	if err != nil || len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d (%v)", len(manifests), err)
	}
}

func TestFileManifestStoreEmptyFile(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	writeManifests(t, home, "")
	manifests, err := providerout.NewFileManifestStore(home).Load(context.Background())
	if err != nil || len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d (%v)", len(manifests), err)
	}
}

func TestFileManifestStoreDecodesProviders(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	writeManifests(t, home, `providers:
  - name: reference
    version: 1.0.0
    binary: plugins/reference/reference-provider
    sha256: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    enabled: true
    priority: 2
    capabilities: [directions, shield]
`)
	manifests, err := providerout.NewFileManifestStore(home).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	m := manifests[0]
	if want := filepath.Join(home, "plugins", "reference", "reference-provider"); m.Binary != want {
		t.Fatalf("expected binary %s, got %s", want, m.Binary)
	}
	if m.Priority != 2 || !m.Offers(domain.CapabilityShield) || m.Offers(domain.CapabilityFeedback) {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	writeManifests(t, home, "providers:\n  - name: reference\n    colour: red\n")
	if _, err := providerout.NewFileManifestStore(home).Load(context.Background()); err == nil {
		t.Fatal("expected unknown field error")
	}
}
