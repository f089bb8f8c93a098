package out

import (
	"context"

	"focusdrive/internal/modules/feedback/domain"
)

type Player interface {
	Play(ctx context.Context, cue domain.Cue) error
}
