package in

import (
	"context"

	"focusdrive/internal/modules/achievement/dto"
	achievementin "focusdrive/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, filter string) ([]dto.AchievementOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Filter: filter})
}

func (h CLIHandler) Next(ctx context.Context) (dto.AchievementOutput, error) {
	return h.usecase.Next(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}
