package out

import (
	"context"

	"focusdrive/internal/modules/focus/domain"
)

// Shield is the enforcement backend.
type Shield interface {
	AuthorizationStatus(ctx context.Context) (domain.Authorization, error)
	RequestAuthorization(ctx context.Context) (domain.Authorization, error)
	Apply(ctx context.Context, categories []domain.Category) error
	Clear(ctx context.Context) error
}

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}
