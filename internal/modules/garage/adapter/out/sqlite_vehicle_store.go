package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focusdrive/internal/modules/garage/domain"
	garageout "focusdrive/internal/modules/garage/port/out"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/sqlite"
)

var vehicleColumns = []string{
	"id", "name", "type", "unlocked", "times_used", "total_miles",
	"speed_rating", "comfort_rating", "efficiency_rating", "position",
}

type SQLiteVehicleStore struct {
	db *sql.DB
}

func NewSQLiteVehicleStore(db *sql.DB) garageout.VehicleStore {
	return &SQLiteVehicleStore{db: db}
}

func (s *SQLiteVehicleStore) Seed(ctx context.Context, vehicles []domain.Vehicle) error {
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
		query, args, err := insertVehicle(v).Options("OR IGNORE").ToSql()
		if err != nil {
			return fmt.Errorf("build seed vehicle query: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.ID, err)
		}
	}
	return nil
}

func (s *SQLiteVehicleStore) List(ctx context.Context) ([]domain.Vehicle, error) {
	query, args, err := sq.Select(vehicleColumns...).From("vehicles").OrderBy("position", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list vehicles query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

func (s *SQLiteVehicleStore) Get(ctx context.Context, id string) (domain.Vehicle, error) {
	query, args, err := sq.Select(vehicleColumns...).From("vehicles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("build get vehicle query: %w", err)
	}
	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, apperrors.ErrNotFound)
	}
	return v, err
}

func (s *SQLiteVehicleStore) Save(ctx context.Context, v domain.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	query, args, err := insertVehicle(v).Suffix(`ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  type=excluded.type,
  unlocked=excluded.unlocked,
  times_used=excluded.times_used,
  total_miles=excluded.total_miles,
  speed_rating=excluded.speed_rating,
  comfort_rating=excluded.comfort_rating,
  efficiency_rating=excluded.efficiency_rating,
  position=excluded.position`).ToSql()
	if err != nil {
		return fmt.Errorf("build save vehicle query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save vehicle %s: %w", v.ID, err)
	}
	return nil
}

func insertVehicle(v domain.Vehicle) sq.InsertBuilder {
	return sq.Insert("vehicles").Columns(vehicleColumns...).Values(
		v.ID, v.Name, string(v.Type), sqlite.Bool(v.Unlocked), v.TimesUsed, v.TotalMiles,
		v.SpeedRating, v.ComfortRating, v.EfficiencyRating, v.Position,
	)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner) (domain.Vehicle, error) {
	var (
		v        domain.Vehicle
		typ      string
		unlocked int
	)
	if err := row.Scan(&v.ID, &v.Name, &typ, &unlocked, &v.TimesUsed, &v.TotalMiles,
		&v.SpeedRating, &v.ComfortRating, &v.EfficiencyRating, &v.Position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vehicle{}, err
		}
		return domain.Vehicle{}, fmt.Errorf("scan vehicle: %w", err)
	}
	v.Type = domain.Type(typ)
	v.Unlocked = unlocked == 1
	return v, nil
}
