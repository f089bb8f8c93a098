package in

import (
	"context"

	"focusdrive/internal/modules/focus/dto"
	focusin "focusdrive/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Authorize(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.RequestAuthorization(ctx)
}

func (h CLIHandler) Start(ctx context.Context, preset string, categories []string) (dto.StatusOutput, error) {
	return h.usecase.StartBlocking(ctx, dto.StartBlockingInput{Preset: preset, Categories: categories})
}

func (h CLIHandler) Stop(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.StopBlocking(ctx)
}

func (h CLIHandler) Presets(ctx context.Context) []dto.PresetOutput {
	return h.usecase.Presets(ctx)
}
