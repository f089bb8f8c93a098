package usecase

import (
	"context"

	"focusdrive/internal/modules/garage/domain"
	"focusdrive/internal/modules/garage/dto"
	garagein "focusdrive/internal/modules/garage/port/in"
	"focusdrive/internal/modules/garage/service"
)

type Interactor struct {
	svc *service.GarageService
}

func NewInteractor(svc *service.GarageService) garagein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListVehicles(ctx context.Context) ([]dto.VehicleOutput, error) {
	vehicles, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleOutput, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toOutput(v))
	}
	return out, nil
}

func (i *Interactor) GetVehicle(ctx context.Context, id string) (dto.VehicleOutput, error) {
	v, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.VehicleOutput{}, err
	}
	return toOutput(v), nil
}

func (i *Interactor) RecordUse(ctx context.Context, id string) (dto.VehicleOutput, error) {
	v, err := i.svc.RecordUse(ctx, id)
	if err != nil {
		return dto.VehicleOutput{}, err
	}
	return toOutput(v), nil
}

func (i *Interactor) RecordDistance(ctx context.Context, input dto.RecordDistanceInput) (dto.RecordDistanceOutput, error) {
	v, fleet, unlocked, err := i.svc.RecordDistance(ctx, input.VehicleID, input.Miles)
	if err != nil {
		return dto.RecordDistanceOutput{}, err
	}
	out := dto.RecordDistanceOutput{Vehicle: toOutput(v), FleetMiles: fleet}
	for _, u := range unlocked {
		out.NewlyUnlocked = append(out.NewlyUnlocked, toOutput(u))
	}
	return out, nil
}

func toOutput(v domain.Vehicle) dto.VehicleOutput {
	return dto.VehicleOutput{
		ID:               v.ID,
		Name:             v.Name,
		Type:             string(v.Type),
		TypeLabel:        v.Type.Label(),
		Unlocked:         v.Unlocked,
		TimesUsed:        v.TimesUsed,
		TotalMiles:       v.TotalMiles,
		SpeedRating:      v.SpeedRating,
		ComfortRating:    v.ComfortRating,
		EfficiencyRating: v.EfficiencyRating,
		UnlockMiles:      v.Type.UnlockMiles(),
	}
}
