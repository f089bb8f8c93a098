package out

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focusdrive/internal/modules/achievement/domain"
	achievementout "focusdrive/internal/modules/achievement/port/out"
	"focusdrive/internal/platform/sqlite"
)

type SQLiteAchievementStore struct {
	db *sql.DB
}

func NewSQLiteAchievementStore(db *sql.DB) achievementout.Store {
	return &SQLiteAchievementStore{db: db}
}

func (s *SQLiteAchievementStore) Seed(ctx context.Context, catalog []domain.Definition) error {
	for _, def := range catalog {
		query, args, err := sq.Insert("achievements").Options("OR IGNORE").
			Columns("kind", "unlocked", "progress").Values(string(def.Kind), 0, 0.0).ToSql()
		if err != nil {
			return fmt.Errorf("build seed achievement query: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed achievement %s: %w", def.Kind, err)
		}
	}
	return nil
}

// List joins stored progress with the in-code catalog. Rows for kinds no
// longer in the catalog are skipped.
func (s *SQLiteAchievementStore) List(ctx context.Context) ([]domain.Achievement, error) {
	query, args, err := sq.Select("kind", "unlocked", "progress", "unlocked_at").From("achievements").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list achievements query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Achievement{}
	for rows.Next() {
		var (
			kind       string
			unlocked   int
			progress   float64
			unlockedAt sql.NullInt64
		)
		if err := rows.Scan(&kind, &unlocked, &progress, &unlockedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		def, ok := domain.DefinitionOf(domain.Kind(kind))
		if !ok {
			continue
		}
		out = append(out, domain.Achievement{
			Definition: def,
			Unlocked:   unlocked == 1,
			Progress:   progress,
			UnlockedAt: sqlite.FromNullMillis(unlockedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return out, nil
}

func (s *SQLiteAchievementStore) SaveAll(ctx context.Context, achievements []domain.Achievement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save achievements: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, a := range achievements {
		query, args, err := sq.Insert("achievements").
			Columns("kind", "unlocked", "progress", "unlocked_at").
			Values(string(a.Kind), sqlite.Bool(a.Unlocked), a.Progress, sqlite.NullMillis(a.UnlockedAt)).
			Suffix(`ON CONFLICT(kind) DO UPDATE SET
  unlocked=excluded.unlocked,
  progress=excluded.progress,
  unlocked_at=excluded.unlocked_at`).ToSql()
		if err != nil {
			return fmt.Errorf("build save achievement query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save achievement %s: %w", a.Kind, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit achievements: %w", err)
	}
	return nil
}
