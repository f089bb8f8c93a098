package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focusdrive/internal/modules/drive/domain"
	driveout "focusdrive/internal/modules/drive/port/out"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/platform/sqlite"
)

var sessionColumns = []string{
	"id", "started_at", "ended_at", "vehicle_id", "vehicle_name", "route_id",
	"destination_name", "target_distance", "estimated_seconds", "duration_minutes",
	"status", "fuel_efficiency", "focus_quality", "breaks_taken",
	"elapsed_seconds", "distance_progress", "fuel", "speed", "base_speed",
	"last_retarget", "retarget_after", "last_low_fuel", "ticks", "updated_at",
}

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) driveout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	t := session.Telemetry
	query, args, err := sq.Insert("sessions").Columns(sessionColumns...).Values(
		session.ID, sqlite.Millis(session.StartedAt), sqlite.NullMillis(session.EndedAt),
		session.VehicleID, session.VehicleName, session.RouteID,
		session.DestinationName, session.TargetDistance, session.EstimatedSeconds, session.DurationMinutes,
		string(session.Status), session.FuelEfficiency, session.FocusQuality, session.BreaksTaken,
		t.ElapsedSeconds, t.DistanceProgress, t.Fuel, t.Speed, t.BaseSpeed,
		t.LastRetarget, t.RetargetAfter, t.LastLowFuel, t.Ticks, sqlite.Millis(session.UpdatedAt),
	).Suffix(`ON CONFLICT(id) DO UPDATE SET
  ended_at=excluded.ended_at,
  duration_minutes=excluded.duration_minutes,
  status=excluded.status,
  fuel_efficiency=excluded.fuel_efficiency,
  focus_quality=excluded.focus_quality,
  breaks_taken=excluded.breaks_taken,
  elapsed_seconds=excluded.elapsed_seconds,
  distance_progress=excluded.distance_progress,
  fuel=excluded.fuel,
  speed=excluded.speed,
  base_speed=excluded.base_speed,
  last_retarget=excluded.last_retarget,
  retarget_after=excluded.retarget_after,
  last_low_fuel=excluded.last_low_fuel,
  ticks=excluded.ticks,
  updated_at=excluded.updated_at`).ToSql()
	if err != nil {
		return fmt.Errorf("build save session query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	query, args, err := sq.Select(sessionColumns...).From("sessions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Session{}, fmt.Errorf("build get session query: %w", err)
	}
	session, err := scanSession(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	return session, err
}

func (s *SQLiteSessionStore) FindOpen(ctx context.Context) (domain.Session, error) {
	query, args, err := sq.Select(sessionColumns...).From("sessions").
		Where(sq.Eq{"status": []string{string(domain.StatusActive), string(domain.StatusPaused)}}).
		OrderBy("started_at DESC").Limit(1).ToSql()
	if err != nil {
		return domain.Session{}, fmt.Errorf("build open session query: %w", err)
	}
	session, err := scanSession(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	return session, err
}

func (s *SQLiteSessionStore) List(ctx context.Context, filter driveout.ListFilter) ([]domain.Session, error) {
	qb := sq.Select(sessionColumns...).From("sessions")
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": string(filter.Status)})
	}
	qb = qb.OrderBy("started_at DESC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sessions query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.Session, error) {
	var (
		session   domain.Session
		startedAt int64
		endedAt   sql.NullInt64
		status    string
		updatedAt int64
	)
	t := &session.Telemetry
	err := row.Scan(&session.ID, &startedAt, &endedAt, &session.VehicleID, &session.VehicleName, &session.RouteID,
		&session.DestinationName, &session.TargetDistance, &session.EstimatedSeconds, &session.DurationMinutes,
		&status, &session.FuelEfficiency, &session.FocusQuality, &session.BreaksTaken,
		&t.ElapsedSeconds, &t.DistanceProgress, &t.Fuel, &t.Speed, &t.BaseSpeed,
		&t.LastRetarget, &t.RetargetAfter, &t.LastLowFuel, &t.Ticks, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	session.StartedAt = sqlite.FromMillis(startedAt)
	session.EndedAt = sqlite.FromNullMillis(endedAt)
	session.Status = domain.Status(status)
	session.UpdatedAt = sqlite.FromMillis(updatedAt)
	return session, nil
}
