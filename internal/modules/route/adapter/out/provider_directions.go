package out

import (
	"context"

	providerdto "focusdrive/internal/modules/provider/dto"
	providerin "focusdrive/internal/modules/provider/port/in"
	routeout "focusdrive/internal/modules/route/port/out"
	"focusdrive/internal/platform/geo"
)

// ProviderDirections asks the provider with the directions capability.
type ProviderDirections struct {
	providers providerin.Usecase
}

func NewProviderDirections(providers providerin.Usecase) routeout.Directions {
	return ProviderDirections{providers: providers}
}

func (d ProviderDirections) Route(ctx context.Context, origin, destination geo.Coordinate) (routeout.Leg, error) {
	resp, err := d.providers.Route(ctx, providerdto.RouteRequest{
		OriginLat:      origin.Lat,
		OriginLon:      origin.Lon,
		DestinationLat: destination.Lat,
		DestinationLon: destination.Lon,
	})
	if err != nil {
		return routeout.Leg{}, err
	}
	return routeout.Leg{Meters: resp.Meters, Seconds: resp.Seconds}, nil
}
