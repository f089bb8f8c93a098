package usecase

import (
	"context"

	"focusdrive/internal/modules/focus/domain"
	"focusdrive/internal/modules/focus/dto"
	focusin "focusdrive/internal/modules/focus/port/in"
	"focusdrive/internal/modules/focus/service"
)

type Interactor struct {
	svc *service.FocusService
}

func NewInteractor(svc *service.FocusService) focusin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	return toStatus(i.svc.Status(ctx))
}

func (i *Interactor) RequestAuthorization(ctx context.Context) (dto.StatusOutput, error) {
	return toStatus(i.svc.RequestAuthorization(ctx))
}

func (i *Interactor) StartBlocking(ctx context.Context, input dto.StartBlockingInput) (dto.StatusOutput, error) {
	categories, err := service.ResolveCategories(input.Preset, input.Categories)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(i.svc.StartBlocking(ctx, categories))
}

func (i *Interactor) StopBlocking(ctx context.Context) (dto.StatusOutput, error) {
	return toStatus(i.svc.StopBlocking(ctx))
}

func (i *Interactor) StartSessionBlocking(ctx context.Context) (dto.StatusOutput, error) {
	return toStatus(i.svc.StartSessionBlocking(ctx))
}

func (i *Interactor) StopSessionBlocking(ctx context.Context) (dto.StatusOutput, error) {
	return toStatus(i.svc.StopSessionBlocking(ctx))
}

func (i *Interactor) ClearError(context.Context) {
	i.svc.ClearError()
}

func (i *Interactor) Presets(context.Context) []dto.PresetOutput {
	presets := domain.Presets()
	out := make([]dto.PresetOutput, 0, len(presets))
	for _, p := range presets {
		out = append(out, dto.PresetOutput{
			Name:        string(p.Name),
			Description: p.Description,
			Detail:      p.Detail,
			Categories:  categoryNames(p.Categories),
		})
	}
	return out
}

func toStatus(snap service.Snapshot, err error) (dto.StatusOutput, error) {
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return dto.StatusOutput{
		Authorization:           string(snap.Authorization),
		Authorized:              snap.State.Authorized,
		Blocking:                snap.State.Active(),
		SessionBlocking:         snap.State.SessionBlocking,
		Categories:              categoryNames(snap.State.Selection),
		Message:                 snap.State.StatusMessage(),
		Error:                   snap.Error,
		CanRequestAuthorization: snap.Authorization == domain.AuthorizationNotDetermined,
	}, nil
}

func categoryNames(in []domain.Category) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, string(c))
	}
	return out
}
