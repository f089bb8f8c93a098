package in

import (
	"context"

	"focusdrive/internal/modules/route/dto"
)

type Usecase interface {
	Plan(ctx context.Context, input dto.PlanInput) (dto.RouteOutput, error)
	// Calculating reports whether a Plan call is waiting on directions.
	Calculating() bool
	ListDestinations(ctx context.Context, category string) ([]dto.DestinationOutput, error)
	SearchDestinations(ctx context.Context, query string) ([]dto.DestinationOutput, error)
	NearbyDestinations(ctx context.Context, input dto.NearbyInput) ([]dto.DestinationOutput, error)
	ListRoutes(ctx context.Context, input dto.ListRoutesInput) ([]dto.RouteOutput, error)
	GetRoute(ctx context.Context, id string) (dto.RouteOutput, error)
	MarkCompleted(ctx context.Context, id string) (dto.RouteOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
