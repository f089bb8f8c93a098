package in

import (
	"context"

	"focusdrive/internal/modules/garage/dto"
)

type Usecase interface {
	ListVehicles(ctx context.Context) ([]dto.VehicleOutput, error)
	GetVehicle(ctx context.Context, id string) (dto.VehicleOutput, error)
	RecordUse(ctx context.Context, id string) (dto.VehicleOutput, error)
	RecordDistance(ctx context.Context, input dto.RecordDistanceInput) (dto.RecordDistanceOutput, error)
}
