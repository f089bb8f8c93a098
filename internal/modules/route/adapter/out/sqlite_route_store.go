package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focusdrive/internal/modules/route/domain"
	routeout "focusdrive/internal/modules/route/port/out"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/sqlite"
)

var routeColumns = []string{
	"id", "origin_name", "origin_lat", "origin_lon",
	"destination_name", "destination_lat", "destination_lon",
	"distance_miles", "estimated_minutes", "route_type",
	"completed", "completion_date", "times_completed", "created_at",
}

type SQLiteRouteStore struct {
	db *sql.DB
}

func NewSQLiteRouteStore(db *sql.DB) routeout.RouteStore {
	return &SQLiteRouteStore{db: db}
}

func (s *SQLiteRouteStore) Save(ctx context.Context, r domain.Route) error {
	if err := r.Validate(); err != nil {
		return err
	}
	query, args, err := sq.Insert("routes").Columns(routeColumns...).Values(
		r.ID, r.OriginName, r.Origin.Lat, r.Origin.Lon,
		r.DestinationName, r.Destination.Lat, r.Destination.Lon,
		r.DistanceMiles, r.EstimatedMinutes, string(r.Type),
		sqlite.Bool(r.Completed), sqlite.NullMillis(r.CompletionDate), r.TimesCompleted, sqlite.Millis(r.CreatedAt),
	).Suffix(`ON CONFLICT(id) DO UPDATE SET
  distance_miles=excluded.distance_miles,
  estimated_minutes=excluded.estimated_minutes,
  route_type=excluded.route_type,
  completed=excluded.completed,
  completion_date=excluded.completion_date,
  times_completed=excluded.times_completed`).ToSql()
	if err != nil {
		return fmt.Errorf("build save route query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save route %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteRouteStore) Get(ctx context.Context, id string) (domain.Route, error) {
	query, args, err := sq.Select(routeColumns...).From("routes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Route{}, fmt.Errorf("build get route query: %w", err)
	}
	r, err := scanRoute(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("route %s: %w", id, apperrors.ErrNotFound)
	}
	return r, err
}

// List orders completed routes by most recent completion, then newest first.
func (s *SQLiteRouteStore) List(ctx context.Context, completedOnly bool) ([]domain.Route, error) {
	qb := sq.Select(routeColumns...).From("routes")
	if completedOnly {
		qb = qb.Where(sq.Eq{"completed": 1})
	}
	query, args, err := qb.OrderBy("completion_date DESC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list routes query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Route{}
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(row scanner) (domain.Route, error) {
	var (
		r          domain.Route
		routeType  string
		completed  int
		completion sql.NullInt64
		createdAt  int64
	)
	err := row.Scan(&r.ID, &r.OriginName, &r.Origin.Lat, &r.Origin.Lon,
		&r.DestinationName, &r.Destination.Lat, &r.Destination.Lon,
		&r.DistanceMiles, &r.EstimatedMinutes, &routeType,
		&completed, &completion, &r.TimesCompleted, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Route{}, err
		}
		return domain.Route{}, fmt.Errorf("scan route: %w", err)
	}
	r.Type = domain.Type(routeType)
	r.Completed = completed == 1
	r.CompletionDate = sqlite.FromNullMillis(completion)
	r.CreatedAt = sqlite.FromMillis(createdAt)
	return r, nil
}
