package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	providerout "focusdrive/internal/modules/provider/adapter/out"
	"focusdrive/internal/modules/provider/domain"
	"focusdrive/internal/platform/geo"
)

func TestGRPCHostIntegrationReferenceProvider(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the reference provider")
	}
	binPath, checksum := buildReferenceProvider(t)
	manifest := domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityDirections, domain.CapabilityShield, domain.CapabilityFeedback},
	}

	host := providerout.NewGRPCHost(false)
	defer host.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" || len(metadata.Capabilities) != 3 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	leg, err := host.Route(ctx, manifest, domain.DirectionsRequest{
		Origin:      geo.Coordinate{Lat: 37.7749, Lon: -122.4194},
		Destination: geo.Coordinate{Lat: 34.0522, Lon: -118.2437},
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if leg.Meters <= 0 || leg.Seconds <= 0 {
		t.Fatalf("expected positive leg, got %+v", leg)
	}

	status, err := host.RequestAuthorization(ctx, manifest)
	if err != nil {
		t.Fatalf("request authorization: %v", err)
	}
	if status != "approved" {
		t.Fatalf("expected approved, got %s", status)
	}
	if err := host.ApplyShield(ctx, manifest, []string{"social"}); err != nil {
		t.Fatalf("apply shield: %v", err)
	}
	if err := host.ClearShield(ctx, manifest); err != nil {
		t.Fatalf("clear shield: %v", err)
	}
	if err := host.Play(ctx, manifest, domain.Cue{Event: "tap", Haptic: true}); err != nil {
		t.Fatalf("play: %v", err)
	}
}

func buildReferenceProvider(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "reference-provider")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference provider: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built provider: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
