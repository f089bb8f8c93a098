package in

import (
	"context"

	"focusdrive/internal/modules/drive/dto"
	drivein "focusdrive/internal/modules/drive/port/in"
)

type CLIHandler struct {
	usecase drivein.Usecase
}

func NewCLIHandler(usecase drivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, vehicleID, routeID string) (dto.Snapshot, error) {
	return h.usecase.Start(ctx, dto.StartInput{VehicleID: vehicleID, RouteID: routeID})
}

func (h CLIHandler) Pause(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) End(ctx context.Context, completed bool) (dto.EndOutput, error) {
	return h.usecase.End(ctx, dto.EndInput{Completed: completed})
}

func (h CLIHandler) Status(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) History(ctx context.Context, status string, limit int) ([]dto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx, dto.ListInput{Status: status, Limit: limit})
}

func (h CLIHandler) Postcards(ctx context.Context, limit int) ([]dto.PostcardOutput, error) {
	return h.usecase.Postcards(ctx, limit)
}
