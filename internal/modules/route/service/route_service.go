package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"focusdrive/internal/modules/route/domain"
	routeout "focusdrive/internal/modules/route/port/out"
	"focusdrive/internal/platform/clock"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/geo"
	"focusdrive/internal/platform/id"
)

// Place is a named coordinate used as a plan endpoint.
type Place struct {
	Name       string
	Coordinate geo.Coordinate
}

type RouteService struct {
	clock      clock.Clock
	idGen      id.Generator
	store      routeout.RouteStore
	directions routeout.Directions
	origin     Place

	pending atomic.Int32
}

func NewRouteService(clock clock.Clock, idGen id.Generator, store routeout.RouteStore, directions routeout.Directions, origin Place) *RouteService {
	return &RouteService{clock: clock, idGen: idGen, store: store, directions: directions, origin: origin}
}

func (s *RouteService) Origin() Place {
	return s.origin
}

func (s *RouteService) Calculating() bool {
	return s.pending.Load() > 0
}

// Plan asks the directions backend for a leg and stores the resulting route.
// Any backend failure is reported as ErrNoRoute.
func (s *RouteService) Plan(ctx context.Context, origin, destination Place, routeType domain.Type) (domain.Route, error) {
	if strings.TrimSpace(destination.Name) == "" {
		return domain.Route{}, fmt.Errorf("%w: destination is required", apperrors.ErrInvalidInput)
	}
	if !origin.Coordinate.Valid() || !destination.Coordinate.Valid() {
		return domain.Route{}, fmt.Errorf("%w: coordinates out of range", apperrors.ErrInvalidInput)
	}

	s.pending.Add(1)
	leg, err := s.directions.Route(ctx, origin.Coordinate, destination.Coordinate)
	s.pending.Add(-1)
	if err != nil {
		return domain.Route{}, fmt.Errorf("%w: %v", apperrors.ErrNoRoute, err)
	}
	if leg.Meters < 0 || leg.Seconds < 0 || math.IsNaN(leg.Meters) || math.IsNaN(leg.Seconds) {
		return domain.Route{}, fmt.Errorf("%w: directions returned an invalid leg", apperrors.ErrNoRoute)
	}

	route := domain.Route{
		ID:               s.idGen.New(),
		OriginName:       origin.Name,
		Origin:           origin.Coordinate,
		DestinationName:  destination.Name,
		Destination:      destination.Coordinate,
		DistanceMiles:    leg.Meters * geo.MetersToMiles,
		EstimatedMinutes: int(leg.Seconds / 60),
		Type:             routeType,
		CreatedAt:        s.clock.Now(),
	}
	if err := route.Validate(); err != nil {
		return domain.Route{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, route); err != nil {
		return domain.Route{}, err
	}
	return route, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (domain.Route, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Route{}, fmt.Errorf("%w: route id is required", apperrors.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

func (s *RouteService) List(ctx context.Context, completedOnly bool, destination string) ([]domain.Route, error) {
	routes, err := s.store.List(ctx, completedOnly)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(destination) == "" {
		return routes, nil
	}
	out := []domain.Route{}
	for _, r := range routes {
		if strings.EqualFold(r.DestinationName, strings.TrimSpace(destination)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RouteService) MarkCompleted(ctx context.Context, id string) (domain.Route, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return domain.Route{}, err
	}
	route.MarkCompleted(s.clock.Now())
	if err := s.store.Save(ctx, route); err != nil {
		return domain.Route{}, err
	}
	return route, nil
}

func (s *RouteService) Stats(ctx context.Context) (domain.Stats, error) {
	routes, err := s.store.List(ctx, true)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(routes), nil
}
