package out

import (
	"context"

	"focusdrive/internal/modules/garage/domain"
)

type VehicleStore interface {
	// Seed inserts catalog rows that are not stored yet and leaves existing
	// rows untouched.
	Seed(ctx context.Context, vehicles []domain.Vehicle) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	Get(ctx context.Context, id string) (domain.Vehicle, error)
	Save(ctx context.Context, vehicle domain.Vehicle) error
}
