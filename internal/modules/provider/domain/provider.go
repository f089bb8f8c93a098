package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"focusdrive/internal/platform/geo"
)

type Capability string

const (
	CapabilityDirections Capability = "directions"
	CapabilityShield     Capability = "shield"
	CapabilityFeedback   Capability = "feedback"
)

var (
	ErrProviderDisabled  = errors.New("provider is disabled")
	ErrChecksumMismatch  = errors.New("provider checksum mismatch")
	ErrCapabilityMissing = errors.New("provider capability missing")
	ErrNoProvider        = errors.New("no provider offers capability")
	ErrProviderTimeout   = errors.New("provider timeout")
)

var digestPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

func (c Capability) Validate() error {
	switch c {
	case CapabilityDirections, CapabilityShield, CapabilityFeedback:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

// Manifest declares one provider binary. Lower Priority wins when several
// enabled providers offer the same capability.
type Manifest struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Binary       string       `yaml:"binary"`
	SHA256       string       `yaml:"sha256"`
	Enabled      bool         `yaml:"enabled"`
	Priority     int          `yaml:"priority"`
	Capabilities []Capability `yaml:"capabilities"`
}

// Validate reports every problem with m at once.
func (m Manifest) Validate() error {
	var problems []error
	require := func(value, field string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", field))
		}
	}
	require(m.Name, "name")
	require(m.Version, "version")
	require(m.Binary, "binary")
	if !digestPattern.MatchString(m.SHA256) {
		problems = append(problems, errors.New("sha256 must be 64 lowercase hex characters"))
	}
	if len(m.Capabilities) == 0 {
		problems = append(problems, errors.New("at least one capability is required"))
	}
	for i, c := range m.Capabilities {
		if err := c.Validate(); err != nil {
			problems = append(problems, err)
		} else if slices.Contains(m.Capabilities[:i], c) {
			problems = append(problems, fmt.Errorf("capability %s listed twice", c))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	label := m.Name
	if label == "" {
		label = "unnamed"
	}
	return fmt.Errorf("provider %s: %w", label, errors.Join(problems...))
}

func (m Manifest) Offers(c Capability) bool {
	return slices.Contains(m.Capabilities, c)
}

// ValidateSet validates each manifest and rejects duplicate names.
func ValidateSet(manifests []Manifest) error {
	seen := make(map[string]bool, len(manifests))
	var problems []error
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if seen[m.Name] {
			problems = append(problems, fmt.Errorf("provider %s declared twice", m.Name))
		}
		seen[m.Name] = true
	}
	return errors.Join(problems...)
}

// Candidates returns the manifests offering c, best first: by priority, then
// by declaration order.
func Candidates(manifests []Manifest, c Capability) []Manifest {
	var out []Manifest
	for _, m := range manifests {
		if m.Offers(c) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b Manifest) int { return a.Priority - b.Priority })
	return out
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Covers fails when the running provider does not advertise every
// capability its manifest declares.
func (md Metadata) Covers(m Manifest) error {
	var missing []string
	for _, c := range m.Capabilities {
		if !slices.Contains(md.Capabilities, c) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrCapabilityMissing, m.Name, strings.Join(missing, ", "))
	}
	return nil
}

type DirectionsRequest struct {
	Origin      geo.Coordinate
	Destination geo.Coordinate
}

type DirectionsResult struct {
	Meters  float64
	Seconds float64
}

type Cue struct {
	Event   string
	Variant string
	Sound   string
	Haptic  bool
}
