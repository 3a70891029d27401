package sqlite

import (
	"codeberg.org/miketth/kbpanel/pkg/history/sqlite/migrations"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// rows kept after pruning on open
const keepSwitches = 1000

type HistoryStore struct {
	db      *sql.DB
	querier *Queries
}

func NewHistoryStore(filename string, log *zap.SugaredLogger) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	querier := New(db)
	if err := querier.PruneSwitches(context.Background(), keepSwitches); err != nil {
		db.Close()
		return nil, fmt.Errorf("prune history: %w", err)
	}

	return &HistoryStore{
		db:      db,
		querier: querier,
	}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Record(ctx context.Context, sw kbpanel.Switch) error {
	if err := s.querier.InsertSwitch(ctx, InsertSwitchParams{
		Layout: sw.Layout,
		Origin: string(sw.Origin),
		At:     sw.At.UnixMilli(),
	}); err != nil {
		return fmt.Errorf("sqlite insert: %w", err)
	}

	return nil
}

func (s *HistoryStore) LastSelected(ctx context.Context) (string, error) {
	layout, err := s.querier.LastLayoutByOrigin(ctx, string(kbpanel.OriginMenu))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("sqlite select: %w", err)
	}

	return layout, nil
}
