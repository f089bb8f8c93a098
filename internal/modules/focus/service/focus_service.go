package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"focusdrive/internal/modules/focus/domain"
	focusout "focusdrive/internal/modules/focus/port/out"
	apperrors "focusdrive/internal/platform/errors"
)

// Snapshot is the shielding state as presented to callers.
type Snapshot struct {
	State         domain.State
	Authorization domain.Authorization
	Error         string
}

type FocusService struct {
	shield focusout.Shield
	store  focusout.StateStore
	logger *log.Logger

	mu      sync.Mutex
	lastErr string
}

func NewFocusService(shield focusout.Shield, store focusout.StateStore, logger *log.Logger) *FocusService {
	return &FocusService{shield: shield, store: store, logger: logger}
}

func (s *FocusService) Status(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	auth, err := s.shield.AuthorizationStatus(ctx)
	if err != nil {
		s.fail("authorization status", err)
		return s.snapshot(state, authorizationOf(state)), nil
	}
	if approved := auth == domain.AuthorizationApproved; approved != state.Authorized {
		state.Authorized = approved
		if !approved {
			state.Blocking = false
			state.SessionBlocking = false
		}
		if err := s.store.Save(ctx, state); err != nil {
			return Snapshot{}, err
		}
	}
	if auth == domain.AuthorizationDenied {
		s.lastErr = domain.MessageDenied
	}
	return s.snapshot(state, auth), nil
}

func (s *FocusService) RequestAuthorization(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	auth, err := s.shield.RequestAuthorization(ctx)
	switch {
	case err != nil:
		s.fail("request authorization", err)
		auth = domain.AuthorizationNotDetermined
	case auth == domain.AuthorizationDenied:
		s.lastErr = domain.MessageDenied
	default:
		s.lastErr = ""
	}
	state.Authorized = auth == domain.AuthorizationApproved
	if err := s.store.Save(ctx, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, auth), nil
}

// StartBlocking shields categories. Without authorization the request is
// dropped and the reason surfaces in Snapshot.Error.
func (s *FocusService) StartBlocking(ctx context.Context, categories []domain.Category) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !state.Authorized {
		s.lastErr = domain.MessageNeedsAuthorization
		return s.snapshot(state, authorizationOf(state)), nil
	}
	if len(categories) == 0 {
		return s.snapshot(state, authorizationOf(state)), nil
	}
	if err := s.shield.Apply(ctx, categories); err != nil {
		s.fail("apply shield", err)
		return s.snapshot(state, authorizationOf(state)), nil
	}
	state.Selection = categories
	state.Blocking = true
	state.SessionBlocking = false
	if err := s.store.Save(ctx, state); err != nil {
		return Snapshot{}, err
	}
	s.logger.Info("app blocking started", "categories", len(categories))
	return s.snapshot(state, authorizationOf(state)), nil
}

func (s *FocusService) StopBlocking(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return s.stop(ctx, state)
}

// StartSessionBlocking shields the remembered selection for a drive. It is
// silent when unauthorized or when blocking is already active.
func (s *FocusService) StartSessionBlocking(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !state.Authorized || state.Blocking {
		return s.snapshot(state, authorizationOf(state)), nil
	}
	categories := state.SessionCategories()
	if err := s.shield.Apply(ctx, categories); err != nil {
		s.fail("apply session shield", err)
		return s.snapshot(state, authorizationOf(state)), nil
	}
	state.Blocking = true
	state.SessionBlocking = true
	if err := s.store.Save(ctx, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, authorizationOf(state)), nil
}

// StopSessionBlocking lifts only shielding that a drive started.
func (s *FocusService) StopSessionBlocking(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if !state.SessionBlocking {
		return s.snapshot(state, authorizationOf(state)), nil
	}
	return s.stop(ctx, state)
}

func (s *FocusService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// ResolveCategories merges a preset with explicit categories.
func ResolveCategories(preset string, raw []string) ([]domain.Category, error) {
	all := append([]string{}, raw...)
	if preset != "" {
		p, err := domain.FindPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		for _, c := range p.Categories {
			all = append(all, string(c))
		}
	}
	categories, err := domain.NormalizeCategories(all)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: choose a preset or at least one category", apperrors.ErrInvalidInput)
	}
	return categories, nil
}

func (s *FocusService) stop(ctx context.Context, state domain.State) (Snapshot, error) {
	if err := s.shield.Clear(ctx); err != nil {
		s.fail("clear shield", err)
	}
	wasBlocking := state.Blocking
	state.Blocking = false
	state.SessionBlocking = false
	if err := s.store.Save(ctx, state); err != nil {
		return Snapshot{}, err
	}
	if wasBlocking {
		s.logger.Info("app blocking stopped")
	}
	return s.snapshot(state, authorizationOf(state)), nil
}

func (s *FocusService) fail(op string, err error) {
	s.lastErr = err.Error()
	s.logger.Warn("shield backend failed", "op", op, "err", err)
}

func (s *FocusService) snapshot(state domain.State, auth domain.Authorization) Snapshot {
	return Snapshot{State: state, Authorization: auth, Error: s.lastErr}
}

func authorizationOf(state domain.State) domain.Authorization {
	if state.Authorized {
		return domain.AuthorizationApproved
	}
	return domain.AuthorizationNotDetermined
}
