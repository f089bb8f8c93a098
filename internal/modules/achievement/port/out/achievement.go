package out

import (
	"context"
	"time"

	"focusdrive/internal/modules/achievement/domain"
)

type Store interface {
	// Seed inserts catalog entries that are not stored yet.
	Seed(ctx context.Context, catalog []domain.Definition) error
	List(ctx context.Context) ([]domain.Achievement, error)
	SaveAll(ctx context.Context, achievements []domain.Achievement) error
}

type CompletedSession struct {
	ID             string
	StartedAt      time.Time
	DistanceMiles  float64
	FuelEfficiency int
}

type RouteRecord struct {
	DestinationName string
	Completed       bool
}

// History reads the drive and route records a check aggregates.
type History interface {
	CompletedSessions(ctx context.Context) ([]CompletedSession, error)
	Routes(ctx context.Context) ([]RouteRecord, error)
}
