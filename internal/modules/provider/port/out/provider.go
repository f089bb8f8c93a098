package out

import (
	"context"

	"focusdrive/internal/modules/provider/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Route(ctx context.Context, manifest domain.Manifest, req domain.DirectionsRequest) (domain.DirectionsResult, error)
	AuthorizationStatus(ctx context.Context, manifest domain.Manifest) (string, error)
	RequestAuthorization(ctx context.Context, manifest domain.Manifest) (string, error)
	ApplyShield(ctx context.Context, manifest domain.Manifest, categories []string) error
	ClearShield(ctx context.Context, manifest domain.Manifest) error
	Play(ctx context.Context, manifest domain.Manifest, cue domain.Cue) error
	Close()
}
