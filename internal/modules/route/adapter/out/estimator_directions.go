package out

import (
	"context"

	routeout "focusdrive/internal/modules/route/port/out"
	"focusdrive/internal/platform/geo"
)

const (
	roadFactor      = 1.25
	averageSpeedMPH = 55.0
)

// EstimatorDirections approximates a driving leg from the great-circle
// distance, inflated by a road factor and driven at a constant average speed.
type EstimatorDirections struct{}

func NewEstimatorDirections() routeout.Directions {
	return EstimatorDirections{}
}

func (EstimatorDirections) Route(ctx context.Context, origin, destination geo.Coordinate) (routeout.Leg, error) {
	if err := ctx.Err(); err != nil {
		return routeout.Leg{}, err
	}
	miles := geo.HaversineMiles(origin, destination) * roadFactor
	return routeout.Leg{
		Meters:  geo.MilesToMeters(miles),
		Seconds: miles / averageSpeedMPH * 3600,
	}, nil
}
