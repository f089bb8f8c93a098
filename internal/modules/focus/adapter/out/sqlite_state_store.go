package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"focusdrive/internal/modules/focus/domain"
	focusout "focusdrive/internal/modules/focus/port/out"
	"focusdrive/internal/platform/sqlite"
)

type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(db *sql.DB) focusout.StateStore {
	return &SQLiteStateStore{db: db}
}

func (s *SQLiteStateStore) Load(ctx context.Context) (domain.State, error) {
	query, args, err := sq.Select("authorized", "blocking", "session_blocking", "categories").
		From("shield_state").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return domain.State{}, fmt.Errorf("build load shield state query: %w", err)
	}
	var (
		authorized, blocking, sessionBlocking int
		categories                            string
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&authorized, &blocking, &sessionBlocking, &categories)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load shield state: %w", err)
	}
	state := domain.State{
		Authorized:      authorized == 1,
		Blocking:        blocking == 1,
		SessionBlocking: sessionBlocking == 1,
	}
	for _, c := range strings.Split(categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			state.Selection = append(state.Selection, domain.Category(c))
		}
	}
	return state, nil
}

func (s *SQLiteStateStore) Save(ctx context.Context, state domain.State) error {
	names := make([]string, 0, len(state.Selection))
	for _, c := range state.Selection {
		names = append(names, string(c))
	}
	query, args, err := sq.Insert("shield_state").
		Columns("id", "authorized", "blocking", "session_blocking", "categories", "updated_at").
		Values(1, sqlite.Bool(state.Authorized), sqlite.Bool(state.Blocking), sqlite.Bool(state.SessionBlocking),
			strings.Join(names, ","), sqlite.Millis(time.Now())).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
  authorized=excluded.authorized,
  blocking=excluded.blocking,
  session_blocking=excluded.session_blocking,
  categories=excluded.categories,
  updated_at=excluded.updated_at`).ToSql()
	if err != nil {
		return fmt.Errorf("build save shield state query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save shield state: %w", err)
	}
	return nil
}
