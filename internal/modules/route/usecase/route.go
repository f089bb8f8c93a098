package usecase

import (
	"context"
	"fmt"
	"strings"

	"focusdrive/internal/modules/route/domain"
	"focusdrive/internal/modules/route/dto"
	routein "focusdrive/internal/modules/route/port/in"
	"focusdrive/internal/modules/route/service"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/geo"
)

type Interactor struct {
	svc *service.RouteService
}

func NewInteractor(svc *service.RouteService) routein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Plan(ctx context.Context, input dto.PlanInput) (dto.RouteOutput, error) {
	routeType, err := domain.ParseType(input.RouteType)
	if err != nil {
		return dto.RouteOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	destination, err := resolveDestination(input)
	if err != nil {
		return dto.RouteOutput{}, err
	}
	route, err := i.svc.Plan(ctx, i.originOrDefault(input.Origin), destination, routeType)
	if err != nil {
		return dto.RouteOutput{}, err
	}
	return toRouteOutput(route), nil
}

func (i *Interactor) Calculating() bool {
	return i.svc.Calculating()
}

func (i *Interactor) ListDestinations(_ context.Context, category string) ([]dto.DestinationOutput, error) {
	if strings.TrimSpace(category) == "" {
		return toDestinationOutputs(domain.Destinations()), nil
	}
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return toDestinationOutputs(domain.ByCategory(cat)), nil
}

func (i *Interactor) SearchDestinations(_ context.Context, query string) ([]dto.DestinationOutput, error) {
	return toDestinationOutputs(domain.Search(query)), nil
}

func (i *Interactor) NearbyDestinations(_ context.Context, input dto.NearbyInput) ([]dto.DestinationOutput, error) {
	origin := i.originOrDefault(input.Origin)
	if !origin.Coordinate.Valid() {
		return nil, fmt.Errorf("%w: origin coordinates out of range", apperrors.ErrInvalidInput)
	}
	ranked := domain.Nearby(origin.Coordinate, input.RadiusMiles)
	out := make([]dto.DestinationOutput, 0, len(ranked))
	for _, r := range ranked {
		item := toDestinationOutput(r.Destination)
		item.DistanceMiles = r.DistanceMiles
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) ListRoutes(ctx context.Context, input dto.ListRoutesInput) ([]dto.RouteOutput, error) {
	routes, err := i.svc.List(ctx, input.CompletedOnly, input.Destination)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RouteOutput, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteOutput(r))
	}
	return out, nil
}

func (i *Interactor) GetRoute(ctx context.Context, id string) (dto.RouteOutput, error) {
	route, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.RouteOutput{}, err
	}
	return toRouteOutput(route), nil
}

func (i *Interactor) MarkCompleted(ctx context.Context, id string) (dto.RouteOutput, error) {
	route, err := i.svc.MarkCompleted(ctx, id)
	if err != nil {
		return dto.RouteOutput{}, err
	}
	return toRouteOutput(route), nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		CompletedRoutes:    stats.CompletedRoutes,
		TotalDistanceMiles: stats.TotalDistanceMiles,
		UniqueDestinations: stats.UniqueDestinations,
	}, nil
}

func (i *Interactor) originOrDefault(p *dto.Place) service.Place {
	if p == nil {
		return i.svc.Origin()
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = i.svc.Origin().Name
	}
	return service.Place{Name: name, Coordinate: geo.Coordinate{Lat: p.Lat, Lon: p.Lon}}
}

func resolveDestination(input dto.PlanInput) (service.Place, error) {
	if input.Custom != nil {
		name := strings.TrimSpace(input.Custom.Name)
		if name == "" {
			name = "Selected Destination"
		}
		return service.Place{Name: name, Coordinate: geo.Coordinate{Lat: input.Custom.Lat, Lon: input.Custom.Lon}}, nil
	}
	if strings.TrimSpace(input.Destination) == "" {
		return service.Place{}, fmt.Errorf("%w: destination is required", apperrors.ErrInvalidInput)
	}
	d, ok := domain.FindDestination(input.Destination)
	if !ok {
		return service.Place{}, fmt.Errorf("destination %q: %w", input.Destination, apperrors.ErrNotFound)
	}
	return service.Place{Name: d.Name, Coordinate: d.Coordinate}, nil
}

func toRouteOutput(r domain.Route) dto.RouteOutput {
	return dto.RouteOutput{
		ID:               r.ID,
		OriginName:       r.OriginName,
		OriginLat:        r.Origin.Lat,
		OriginLon:        r.Origin.Lon,
		DestinationName:  r.DestinationName,
		DestinationLat:   r.Destination.Lat,
		DestinationLon:   r.Destination.Lon,
		DistanceMiles:    r.DistanceMiles,
		EstimatedMinutes: r.EstimatedMinutes,
		RouteType:        string(r.Type),
		Completed:        r.Completed,
		CompletionDate:   r.CompletionDate,
		TimesCompleted:   r.TimesCompleted,
		CreatedAt:        r.CreatedAt,
	}
}

func toDestinationOutput(d domain.Destination) dto.DestinationOutput {
	return dto.DestinationOutput{
		Name:          d.Name,
		Lat:           d.Coordinate.Lat,
		Lon:           d.Coordinate.Lon,
		Category:      string(d.Category),
		CategoryLabel: d.Category.Label(),
		Description:   d.Description,
	}
}

func toDestinationOutputs(in []domain.Destination) []dto.DestinationOutput {
	out := make([]dto.DestinationOutput, 0, len(in))
	for _, d := range in {
		out = append(out, toDestinationOutput(d))
	}
	return out
}
