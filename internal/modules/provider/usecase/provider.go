package usecase

import (
	"context"

	"focusdrive/internal/modules/provider/dto"
	providerin "focusdrive/internal/modules/provider/port/in"
	"focusdrive/internal/modules/provider/service"
)

type Interactor struct {
	svc *service.ProviderService
}

func NewInteractor(svc *service.ProviderService) providerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Resolve(ctx context.Context, capability string) (dto.ProviderInfo, error) {
	return i.svc.Resolve(ctx, capability)
}

func (i *Interactor) Route(ctx context.Context, input dto.RouteRequest) (dto.RouteResponse, error) {
	return i.svc.Route(ctx, input)
}

func (i *Interactor) ShieldAuthorization(ctx context.Context) (string, error) {
	return i.svc.ShieldAuthorization(ctx)
}

func (i *Interactor) RequestShieldAuthorization(ctx context.Context) (string, error) {
	return i.svc.RequestShieldAuthorization(ctx)
}

func (i *Interactor) ApplyShield(ctx context.Context, input dto.ShieldInput) error {
	return i.svc.ApplyShield(ctx, input)
}

func (i *Interactor) ClearShield(ctx context.Context) error {
	return i.svc.ClearShield(ctx)
}

func (i *Interactor) Play(ctx context.Context, input dto.PlayInput) error {
	return i.svc.Play(ctx, input)
}
