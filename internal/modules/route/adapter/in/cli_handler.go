package in

import (
	"context"

	"focusdrive/internal/modules/route/dto"
	routein "focusdrive/internal/modules/route/port/in"
)

type CLIHandler struct {
	usecase routein.Usecase
}

func NewCLIHandler(usecase routein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Plan(ctx context.Context, destination, routeType string, origin *dto.Place) (dto.RouteOutput, error) {
	return h.usecase.Plan(ctx, dto.PlanInput{Destination: destination, Origin: origin, RouteType: routeType})
}

func (h CLIHandler) PlanCustom(ctx context.Context, name string, lat, lon float64, routeType string) (dto.RouteOutput, error) {
	return h.usecase.Plan(ctx, dto.PlanInput{Custom: &dto.Place{Name: name, Lat: lat, Lon: lon}, RouteType: routeType})
}

func (h CLIHandler) ListRoutes(ctx context.Context, completedOnly bool) ([]dto.RouteOutput, error) {
	return h.usecase.ListRoutes(ctx, dto.ListRoutesInput{CompletedOnly: completedOnly})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) ListDestinations(ctx context.Context, category string) ([]dto.DestinationOutput, error) {
	return h.usecase.ListDestinations(ctx, category)
}

func (h CLIHandler) SearchDestinations(ctx context.Context, query string) ([]dto.DestinationOutput, error) {
	return h.usecase.SearchDestinations(ctx, query)
}

func (h CLIHandler) NearbyDestinations(ctx context.Context, origin *dto.Place, radius float64) ([]dto.DestinationOutput, error) {
	return h.usecase.NearbyDestinations(ctx, dto.NearbyInput{Origin: origin, RadiusMiles: radius})
}
