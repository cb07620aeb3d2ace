package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/bowling/internal/game"
)

// sqlStore keeps each game as its throw list in game_state and
// rebuilds it with game.Replay on Get.
type sqlStore struct {
	db *sql.DB
}

// NewSQLStore returns a Store backed by the game_state table.
func NewSQLStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Save(ctx context.Context, g *game.Game) error {
	throws := g.Throws()
	if throws == nil {
		throws = []int{}
	}
	b, err := json.Marshal(throws)
	if err != nil {
		return fmt.Errorf("encode throws: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game_state (id, throws, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET throws=excluded.throws, updated_at=excluded.updated_at`,
		g.ID, string(b), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *sqlStore) Get(ctx context.Context, id string) (*game.Game, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT throws FROM game_state WHERE id=?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var throws []int
	if err := json.Unmarshal([]byte(raw), &throws); err != nil {
		return nil, fmt.Errorf("decode throws for %s: %w", id, err)
	}
	return game.Replay(id, throws)
}
