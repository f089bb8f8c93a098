package usecase

import (
	"context"

	"focusdrive/internal/modules/achievement/domain"
	"focusdrive/internal/modules/achievement/dto"
	achievementin "focusdrive/internal/modules/achievement/port/in"
	"focusdrive/internal/modules/achievement/service"
)

type Interactor struct {
	svc *service.AchievementService
}

func NewInteractor(svc *service.AchievementService) achievementin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) CheckAfter(ctx context.Context, session dto.SessionInput) (dto.CheckOutput, error) {
	unlocked, checked, err := i.svc.CheckAfter(ctx, session.Status, session.FuelEfficiency)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{Checked: checked, NewlyUnlocked: toOutputs(unlocked)}, nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.AchievementOutput, error) {
	list, err := i.svc.List(ctx, input.Filter)
	if err != nil {
		return nil, err
	}
	return toOutputs(list), nil
}

func (i *Interactor) Next(ctx context.Context) (dto.AchievementOutput, error) {
	a, err := i.svc.Next(ctx)
	if err != nil {
		return dto.AchievementOutput{}, err
	}
	return toOutput(a), nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	s, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{Unlocked: s.Unlocked, Total: s.Total, Percent: s.Percent}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, dto.CategoryCount{Category: string(c.Category), Unlocked: c.Unlocked, Total: c.Total})
	}
	return out, nil
}

func (i *Interactor) Recent(context.Context) []dto.AchievementOutput {
	return toOutputs(i.svc.Recent())
}

func (i *Interactor) ClearRecent(context.Context) {
	i.svc.ClearRecent()
}

func toOutputs(list []domain.Achievement) []dto.AchievementOutput {
	out := make([]dto.AchievementOutput, 0, len(list))
	for _, a := range list {
		out = append(out, toOutput(a))
	}
	return out
}

func toOutput(a domain.Achievement) dto.AchievementOutput {
	return dto.AchievementOutput{
		Kind:        string(a.Kind),
		Name:        a.Name,
		Description: a.Description,
		Category:    string(a.Category),
		Threshold:   a.Threshold,
		Unlocked:    a.Unlocked,
		Progress:    a.Progress,
		UnlockedAt:  a.UnlockedAt,
	}
}
