package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	focusadapter "focusdrive/internal/modules/focus/adapter/out"
	"focusdrive/internal/modules/focus/domain"
	"focusdrive/internal/modules/focus/dto"
	focusin "focusdrive/internal/modules/focus/port/in"
	focusout "focusdrive/internal/modules/focus/port/out"
	"focusdrive/internal/modules/focus/service"
	"focusdrive/internal/modules/focus/usecase"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/logging"
	"focusdrive/internal/platform/sqlite"
)

type deniedShield struct {
	applied int
}

func (d *deniedShield) AuthorizationStatus(context.Context) (domain.Authorization, error) {
	return domain.AuthorizationDenied, nil
}

func (d *deniedShield) RequestAuthorization(context.Context) (domain.Authorization, error) {
	return "", errors.New("user cancelled the prompt")
}

func (d *deniedShield) Apply(context.Context, []domain.Category) error {
	d.applied++
	return nil
}

func (d *deniedShield) Clear(context.Context) error { return nil }

func newStore(t *testing.T) focusout.StateStore {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "focusdrive.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return focusadapter.NewSQLiteStateStore(db)
}

func newLocalFocus(t *testing.T) focusin.Usecase {
	t.Helper()
	store := newStore(t)
	logger := logging.Discard()
	return usecase.NewInteractor(service.NewFocusService(focusadapter.NewLocalShield(store, logger), store, logger))
}

func TestBlockingRequiresAuthorizationAsMessage(t *testing.T) {
	t.Parallel()
	uc := newLocalFocus(t)
	ctx := context.Background()

	status, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Authorized || status.Message != domain.MessageNeedsAuthorization || !status.CanRequestAuthorization {
		t.Fatalf("unexpected initial status: %+v", status)
	}
	status, err = uc.StartBlocking(ctx, dto.StartBlockingInput{Preset: "light"})
	if err != nil {
		t.Fatalf("unauthorized start must not error: %v", err)
	}
	if status.Blocking || status.Error != domain.MessageNeedsAuthorization {
		t.Fatalf("expected authorization message, got %+v", status)
	}
}

func TestAuthorizeStartAndStopBlocking(t *testing.T) {
	t.Parallel()
	uc := newLocalFocus(t)
	ctx := context.Background()

	status, err := uc.RequestAuthorization(ctx)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !status.Authorized || status.Message != domain.MessageReady || status.Error != "" {
		t.Fatalf("unexpected authorized status: %+v", status)
	}
	status, err = uc.StartBlocking(ctx, dto.StartBlockingInput{Preset: "light", Categories: []string{"news"}})
	if err != nil {
		t.Fatalf("start blocking: %v", err)
	}
	if !status.Blocking || status.Message != domain.MessageBlocking || len(status.Categories) != 2 {
		t.Fatalf("unexpected blocking status: %+v", status)
	}
	status, err = uc.StopBlocking(ctx)
	if err != nil {
		t.Fatalf("stop blocking: %v", err)
	}
	if status.Blocking || status.Message != domain.MessageReady {
		t.Fatalf("unexpected stopped status: %+v", status)
	}
	if len(status.Categories) != 2 {
		t.Fatalf("selection must survive stop, got %v", status.Categories)
	}
	if _, err := uc.StartBlocking(ctx, dto.StartBlockingInput{Preset: "nuclear"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid preset error, got %v", err)
	}
}

func TestSessionBlockingLeavesManualBlockingAlone(t *testing.T) {
	t.Parallel()
	uc := newLocalFocus(t)
	ctx := context.Background()

	status, err := uc.StartSessionBlocking(ctx)
	if err != nil || status.Blocking {
		t.Fatalf("unauthorized session blocking must be a silent no-op: %+v %v", status, err)
	}
	if _, err := uc.RequestAuthorization(ctx); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	status, err = uc.StartSessionBlocking(ctx)
	if err != nil || !status.Blocking || !status.SessionBlocking {
		t.Fatalf("expected session blocking: %+v %v", status, err)
	}
	status, err = uc.StopSessionBlocking(ctx)
	if err != nil || status.Blocking {
		t.Fatalf("expected session blocking lifted: %+v %v", status, err)
	}

	if _, err := uc.StartBlocking(ctx, dto.StartBlockingInput{Preset: "heavy"}); err != nil {
		t.Fatalf("manual blocking: %v", err)
	}
	if _, err := uc.StartSessionBlocking(ctx); err != nil {
		t.Fatalf("session blocking: %v", err)
	}
	status, err = uc.StopSessionBlocking(ctx)
	if err != nil || !status.Blocking {
		t.Fatalf("ending a drive must not lift manual blocking: %+v %v", status, err)
	}
}

func TestBackendFailuresSurfaceAsErrorString(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	shield := &deniedShield{}
	uc := usecase.NewInteractor(service.NewFocusService(shield, store, logging.Discard()))
	ctx := context.Background()

	status, err := uc.RequestAuthorization(ctx)
	if err != nil {
		t.Fatalf("authorization failure must not be returned: %v", err)
	}
	if status.Authorized || status.Error != "user cancelled the prompt" {
		t.Fatalf("unexpected status: %+v", status)
	}
	status, err = uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Error != domain.MessageDenied || status.CanRequestAuthorization {
		t.Fatalf("expected denied message, got %+v", status)
	}
	uc.ClearError(ctx)
	if _, err := uc.StartSessionBlocking(ctx); err != nil {
		t.Fatalf("session blocking: %v", err)
	}
	if shield.applied != 0 {
		t.Fatalf("denied shield must never be applied")
	}
}

func TestPresetsListsAllFour(t *testing.T) {
	t.Parallel()
	presets := newLocalFocus(t).Presets(context.Background())
	if len(presets) != 4 || presets[3].Name != "custom" || len(presets[3].Categories) != 0 {
		t.Fatalf("unexpected presets: %+v", presets)
	}
}
