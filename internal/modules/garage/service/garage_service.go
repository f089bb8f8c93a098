package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"focusdrive/internal/modules/garage/domain"
	garageout "focusdrive/internal/modules/garage/port/out"
	apperrors "focusdrive/internal/platform/errors"
)

type GarageService struct {
	store garageout.VehicleStore

	seedMu sync.Mutex
	seeded bool
}

func NewGarageService(store garageout.VehicleStore) *GarageService {
	return &GarageService{store: store}
}

// ensureCatalog seeds the vehicle catalog until one attempt succeeds.
func (s *GarageService) ensureCatalog(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if s.seeded {
		return nil
	}
	if err := s.store.Seed(ctx, domain.Catalog()); err != nil {
		return fmt.Errorf("seed vehicles: %w", err)
	}
	s.seeded = true
	return nil
}

func (s *GarageService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

func (s *GarageService) Get(ctx context.Context, id string) (domain.Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: vehicle id is required", apperrors.ErrInvalidInput)
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return domain.Vehicle{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *GarageService) RecordUse(ctx context.Context, id string) (domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if !vehicle.Unlocked {
		return domain.Vehicle{}, apperrors.ErrVehicleLocked
	}
	vehicle.TimesUsed++
	if err := s.store.Save(ctx, vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	return vehicle, nil
}

// RecordDistance adds miles to the vehicle and unlocks every vehicle whose
// threshold the new fleet total reaches.
func (s *GarageService) RecordDistance(ctx context.Context, id string, miles float64) (domain.Vehicle, float64, []domain.Vehicle, error) {
	if miles < 0 {
		return domain.Vehicle{}, 0, nil, fmt.Errorf("%w: miles must be non-negative", apperrors.ErrInvalidInput)
	}
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, 0, nil, err
	}
	vehicle.TotalMiles += miles
	if err := s.store.Save(ctx, vehicle); err != nil {
		return domain.Vehicle{}, 0, nil, err
	}

	fleet, err := s.store.List(ctx)
	if err != nil {
		return domain.Vehicle{}, 0, nil, err
	}
	total := domain.FleetMiles(fleet)
	unlocked := domain.Unlockable(fleet, total)
	for idx := range unlocked {
		unlocked[idx].Unlocked = true
		if err := s.store.Save(ctx, unlocked[idx]); err != nil {
			return domain.Vehicle{}, 0, nil, err
		}
	}
	return vehicle, total, unlocked, nil
}
