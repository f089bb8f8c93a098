package in

import (
	"context"

	"focusdrive/internal/modules/feedback/dto"
)

// Usecase plays feedback cues. Play never fails from the caller's point of
// view; backend errors are logged.
type Usecase interface {
	Play(ctx context.Context, input dto.PlayInput)
}
