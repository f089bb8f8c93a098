package in

import (
	"context"

	"focusdrive/internal/modules/garage/dto"
	garagein "focusdrive/internal/modules/garage/port/in"
)

type CLIHandler struct {
	usecase garagein.Usecase
}

func NewCLIHandler(usecase garagein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.VehicleOutput, error) {
	return h.usecase.ListVehicles(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.VehicleOutput, error) {
	return h.usecase.GetVehicle(ctx, id)
}
