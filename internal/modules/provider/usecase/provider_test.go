package usecase_test

import (
	"context"
	"testing"

	"focusdrive/internal/modules/provider/domain"
	"focusdrive/internal/modules/provider/service"
	"focusdrive/internal/modules/provider/usecase"
)

type emptyStore struct{}

func (emptyStore) Load(context.Context) ([]domain.Manifest, error) {
	return []domain.Manifest{}, nil
}

func TestUsecaseWithoutManifests(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewProviderService(emptyStore{}, nil))

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no providers, got %d", len(list))
	}
	docs, err := uc.Doctor(context.Background())
	if err != nil || len(docs) != 0 {
		t.Fatalf("doctor: %v %+v", err, docs)
	}
	if _, err := uc.ShieldAuthorization(context.Background()); err == nil {
		t.Fatalf("expected no provider error")
	}
	if _, err := uc.Resolve(context.Background(), "teleport"); err == nil {
		t.Fatalf("expected unknown capability error")
	}
}
