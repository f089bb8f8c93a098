package out

import (
	"context"
	"fmt"

	"focusdrive/internal/modules/focus/domain"
	focusout "focusdrive/internal/modules/focus/port/out"
	providerdto "focusdrive/internal/modules/provider/dto"
	providerin "focusdrive/internal/modules/provider/port/in"
)

// ProviderShield enforces blocking through the provider with the shield
// capability.
type ProviderShield struct {
	providers providerin.Usecase
}

func NewProviderShield(providers providerin.Usecase) focusout.Shield {
	return ProviderShield{providers: providers}
}

func (s ProviderShield) AuthorizationStatus(ctx context.Context) (domain.Authorization, error) {
	raw, err := s.providers.ShieldAuthorization(ctx)
	if err != nil {
		return "", err
	}
	return parseAuthorization(raw)
}

func (s ProviderShield) RequestAuthorization(ctx context.Context) (domain.Authorization, error) {
	raw, err := s.providers.RequestShieldAuthorization(ctx)
	if err != nil {
		return "", err
	}
	return parseAuthorization(raw)
}

func (s ProviderShield) Apply(ctx context.Context, categories []domain.Category) error {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return s.providers.ApplyShield(ctx, providerdto.ShieldInput{Categories: names})
}

func (s ProviderShield) Clear(ctx context.Context) error {
	return s.providers.ClearShield(ctx)
}

func parseAuthorization(raw string) (domain.Authorization, error) {
	switch a := domain.Authorization(raw); a {
	case domain.AuthorizationNotDetermined, domain.AuthorizationDenied, domain.AuthorizationApproved:
		return a, nil
	default:
		return "", fmt.Errorf("unknown authorization status %q", raw)
	}
}
