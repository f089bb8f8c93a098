package in

import (
	"context"

	"focusdrive/internal/modules/focus/dto"
)

// Usecase manages app shielding. Authorization problems are reported in
// StatusOutput.Error; returned errors are reserved for storage failures and
// invalid input.
type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	RequestAuthorization(ctx context.Context) (dto.StatusOutput, error)
	StartBlocking(ctx context.Context, input dto.StartBlockingInput) (dto.StatusOutput, error)
	StopBlocking(ctx context.Context) (dto.StatusOutput, error)
	StartSessionBlocking(ctx context.Context) (dto.StatusOutput, error)
	StopSessionBlocking(ctx context.Context) (dto.StatusOutput, error)
	ClearError(ctx context.Context)
	Presets(ctx context.Context) []dto.PresetOutput
}
