package in

import (
	"context"

	"focusdrive/internal/modules/provider/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ProviderInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// Resolve returns the first enabled provider with a verified checksum
	// that declares capability.
	Resolve(ctx context.Context, capability string) (dto.ProviderInfo, error)

	Route(ctx context.Context, input dto.RouteRequest) (dto.RouteResponse, error)
	ShieldAuthorization(ctx context.Context) (string, error)
	RequestShieldAuthorization(ctx context.Context) (string, error)
	ApplyShield(ctx context.Context, input dto.ShieldInput) error
	ClearShield(ctx context.Context) error
	Play(ctx context.Context, input dto.PlayInput) error
}
