package in

import (
	"context"

	"focusdrive/internal/modules/achievement/dto"
)

type Usecase interface {
	// CheckAfter re-evaluates the catalog after a drive ends. Sessions that
	// did not complete are ignored.
	CheckAfter(ctx context.Context, session dto.SessionInput) (dto.CheckOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.AchievementOutput, error)
	Next(ctx context.Context) (dto.AchievementOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Recent(ctx context.Context) []dto.AchievementOutput
	ClearRecent(ctx context.Context)
}
