package domain

import (
	"fmt"
	"strings"
	"time"

	"focusdrive/internal/platform/geo"
)

type Type string

const (
	TypeHighway   Type = "highway"
	TypeScenic    Type = "scenic"
	TypeBackroads Type = "backroads"
)

func ParseType(raw string) (Type, error) {
	if strings.TrimSpace(raw) == "" {
		return TypeHighway, nil
	}
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TypeHighway, TypeScenic, TypeBackroads:
		return t, nil
	default:
		return "", fmt.Errorf("unknown route type: %s", raw)
	}
}

type Route struct {
	ID               string
	OriginName       string
	Origin           geo.Coordinate
	DestinationName  string
	Destination      geo.Coordinate
	DistanceMiles    float64
	EstimatedMinutes int
	Type             Type
	Completed        bool
	CompletionDate   time.Time
	TimesCompleted   int
	CreatedAt        time.Time
}

func (r Route) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("route id is required")
	}
	if strings.TrimSpace(r.DestinationName) == "" {
		return fmt.Errorf("route destination is required")
	}
	if !r.Origin.Valid() || !r.Destination.Valid() {
		return fmt.Errorf("route coordinates are out of range")
	}
	if r.DistanceMiles < 0 || r.EstimatedMinutes < 0 {
		return fmt.Errorf("route distance and duration must be non-negative")
	}
	return nil
}

func (r *Route) MarkCompleted(at time.Time) {
	r.Completed = true
	r.CompletionDate = at
	r.TimesCompleted++
}

type Stats struct {
	CompletedRoutes    int
	TotalDistanceMiles float64
	UniqueDestinations int
}

func ComputeStats(routes []Route) Stats {
	stats := Stats{}
	seen := map[string]struct{}{}
	for _, r := range routes {
		if !r.Completed {
			continue
		}
		stats.CompletedRoutes++
		stats.TotalDistanceMiles += r.DistanceMiles
		seen[r.DestinationName] = struct{}{}
	}
	stats.UniqueDestinations = len(seen)
	return stats
}
