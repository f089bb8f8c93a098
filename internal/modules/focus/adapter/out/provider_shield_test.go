package out_test

import (
	"context"
	"testing"

	focusout "focusdrive/internal/modules/focus/adapter/out"
	"focusdrive/internal/modules/focus/domain"
	providerdto "focusdrive/internal/modules/provider/dto"
)

type fakeProviders struct {
	status  string
	applied []string
	cleared bool
}

func (*fakeProviders) List(context.Context) ([]providerdto.ProviderInfo, error) { return nil, nil }
func (*fakeProviders) Doctor(context.Context) ([]providerdto.DoctorResult, error) { return nil, nil }
func (*fakeProviders) Resolve(context.Context, string) (providerdto.ProviderInfo, error) {
	return providerdto.ProviderInfo{}, nil
}
func (*fakeProviders) Route(context.Context, providerdto.RouteRequest) (providerdto.RouteResponse, error) {
	return providerdto.RouteResponse{}, nil
}
func (p *fakeProviders) ShieldAuthorization(context.Context) (string, error) { return p.status, nil }
func (p *fakeProviders) RequestShieldAuthorization(context.Context) (string, error) {
	return p.status, nil
}
func (p *fakeProviders) ApplyShield(_ context.Context, input providerdto.ShieldInput) error {
	p.applied = input.Categories
	return nil
}
func (p *fakeProviders) ClearShield(context.Context) error {
	p.cleared = true
	return nil
}
func (*fakeProviders) Play(context.Context, providerdto.PlayInput) error { return nil }

func TestProviderShieldMapsStatusAndCategories(t *testing.T) {
	t.Parallel()
	providers := &fakeProviders{status: "denied"}
	shield := focusout.NewProviderShield(providers)
	ctx := context.Background()

	auth, err := shield.AuthorizationStatus(ctx)
	if err != nil {
		t.Fatalf("authorization status: %v", err)
	}
	if auth != domain.AuthorizationDenied {
		t.Fatalf("expected denied, got %s", auth)
	}
	if err := shield.Apply(ctx, []domain.Category{domain.CategoryGames, domain.CategorySocial}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(providers.applied) != 2 || providers.applied[0] != "games" {
		t.Fatalf("unexpected categories: %v", providers.applied)
	}
	if err := shield.Clear(ctx); err != nil || !providers.cleared {
		t.Fatalf("clear: %v", err)
	}

	providers.status = "maybe"
	if _, err := shield.RequestAuthorization(ctx); err == nil {
		t.Fatalf("expected unknown status error")
	}
}
