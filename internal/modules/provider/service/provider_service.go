package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"focusdrive/internal/modules/provider/domain"
	"focusdrive/internal/modules/provider/dto"
	providerout "focusdrive/internal/modules/provider/port/out"
	"focusdrive/internal/platform/geo"
)

type ProviderService struct {
	store providerout.ManifestStore
	host  providerout.Host

	mu       sync.Mutex
	resolved map[domain.Capability]domain.Manifest
}

func NewProviderService(store providerout.ManifestStore, host providerout.Host) *ProviderService {
	return &ProviderService{store: store, host: host, resolved: map[domain.Capability]domain.Manifest{}}
}

func (s *ProviderService) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, toInfo(m))
	}
	return out, nil
}

// Doctor checks every manifest in order: fields, binary, checksum, and, for
// enabled providers, a full start and handshake. The first failing step ends
// the check for that provider.
func (s *ProviderService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		results = append(results, s.diagnose(ctx, m))
	}
	return results, nil
}

func (s *ProviderService) diagnose(ctx context.Context, m domain.Manifest) dto.DoctorResult {
	result := dto.DoctorResult{Name: m.Name}
	steps := []func() error{
		m.Validate,
		func() error {
			if _, err := os.Stat(m.Binary); err != nil {
				return fmt.Errorf("binary does not exist: %s", m.Binary)
			}
			result.BinaryReachable = true
			return nil
		},
		func() error {
			if err := verifyDigest(m); err != nil {
				return errors.New("checksum mismatch")
			}
			result.ChecksumValid = true
			return nil
		},
		func() error {
			if !m.Enabled || s.host == nil {
				return nil
			}
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				return err
			}
			result.LifecycleOK = true
			return nil
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			result.Error = err.Error()
			break
		}
	}
	return result
}

func (s *ProviderService) Resolve(ctx context.Context, capability string) (dto.ProviderInfo, error) {
	manifest, err := s.resolve(ctx, domain.Capability(capability))
	if err != nil {
		return dto.ProviderInfo{}, err
	}
	return toInfo(manifest), nil
}

func (s *ProviderService) Route(ctx context.Context, input dto.RouteRequest) (dto.RouteResponse, error) {
	manifest, err := s.resolve(ctx, domain.CapabilityDirections)
	if err != nil {
		return dto.RouteResponse{}, err
	}
	req := domain.DirectionsRequest{
		Origin:      geo.Coordinate{Lat: input.OriginLat, Lon: input.OriginLon},
		Destination: geo.Coordinate{Lat: input.DestinationLat, Lon: input.DestinationLon},
	}
	if !req.Origin.Valid() || !req.Destination.Valid() {
		return dto.RouteResponse{}, fmt.Errorf("route coordinates out of range")
	}
	result, err := s.host.Route(ctx, manifest, req)
	if err != nil {
		return dto.RouteResponse{}, err
	}
	if result.Meters < 0 || result.Seconds < 0 {
		return dto.RouteResponse{}, fmt.Errorf("provider %s returned a negative route", manifest.Name)
	}
	return dto.RouteResponse{Provider: manifest.Name, Meters: result.Meters, Seconds: result.Seconds}, nil
}

func (s *ProviderService) ShieldAuthorization(ctx context.Context) (string, error) {
	manifest, err := s.resolve(ctx, domain.CapabilityShield)
	if err != nil {
		return "", err
	}
	return s.host.AuthorizationStatus(ctx, manifest)
}

func (s *ProviderService) RequestShieldAuthorization(ctx context.Context) (string, error) {
	manifest, err := s.resolve(ctx, domain.CapabilityShield)
	if err != nil {
		return "", err
	}
	return s.host.RequestAuthorization(ctx, manifest)
}

func (s *ProviderService) ApplyShield(ctx context.Context, input dto.ShieldInput) error {
	manifest, err := s.resolve(ctx, domain.CapabilityShield)
	if err != nil {
		return err
	}
	return s.host.ApplyShield(ctx, manifest, input.Categories)
}

func (s *ProviderService) ClearShield(ctx context.Context) error {
	manifest, err := s.resolve(ctx, domain.CapabilityShield)
	if err != nil {
		return err
	}
	return s.host.ClearShield(ctx, manifest)
}

func (s *ProviderService) Play(ctx context.Context, input dto.PlayInput) error {
	manifest, err := s.resolve(ctx, domain.CapabilityFeedback)
	if err != nil {
		return err
	}
	return s.host.Play(ctx, manifest, domain.Cue{Event: input.Event, Variant: input.Variant, Sound: input.Sound, Haptic: input.Haptic})
}

// resolve returns the best enabled candidate for capability whose binary
// digest verifies. The choice is cached for the life of the service.
func (s *ProviderService) resolve(ctx context.Context, capability domain.Capability) (domain.Manifest, error) {
	if err := capability.Validate(); err != nil {
		return domain.Manifest{}, err
	}
	s.mu.Lock()
	cached, ok := s.resolved[capability]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	var rejected []error
	for _, m := range domain.Candidates(manifests, capability) {
		if !m.Enabled {
			rejected = append(rejected, fmt.Errorf("%w: %s", domain.ErrProviderDisabled, m.Name))
			continue
		}
		if err := verifyDigest(m); err != nil {
			rejected = append(rejected, err)
			continue
		}
		s.mu.Lock()
		s.resolved[capability] = m
		s.mu.Unlock()
		return m, nil
	}
	none := fmt.Errorf("%w: %s", domain.ErrNoProvider, capability)
	return domain.Manifest{}, errors.Join(append([]error{none}, rejected...)...)
}

func (s *ProviderService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSet(manifests); err != nil {
		return nil, err
	}
	return manifests, nil
}

func toInfo(m domain.Manifest) dto.ProviderInfo {
	caps := make([]string, 0, len(m.Capabilities))
	for _, c := range m.Capabilities {
		caps = append(caps, string(c))
	}
	return dto.ProviderInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Priority: m.Priority, Binary: m.Binary, Capabilities: caps}
}

// verifyDigest streams the binary through sha256 and compares it with the
// manifest.
func verifyDigest(m domain.Manifest) error {
	f, err := os.Open(m.Binary)
	if err != nil {
		return fmt.Errorf("open provider binary: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash provider binary: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != m.SHA256 {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, m.Name)
	}
	return nil
}
