package out

import (
	"context"

	"focusdrive/internal/modules/route/domain"
	"focusdrive/internal/platform/geo"
)

// Leg is what a directions backend reports for one origin/destination pair.
type Leg struct {
	Meters  float64
	Seconds float64
}

type Directions interface {
	Route(ctx context.Context, origin, destination geo.Coordinate) (Leg, error)
}

type RouteStore interface {
	Save(ctx context.Context, route domain.Route) error
	Get(ctx context.Context, id string) (domain.Route, error)
	List(ctx context.Context, completedOnly bool) ([]domain.Route, error)
}
