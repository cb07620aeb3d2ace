package results

import (
	"context"
	"database/sql"
	"time"
)

// Result is a finished game as recorded for the leaderboard.
type Result struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Strikes  int    `json:"strikes"`
	Spares   int    `json:"spares"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	PlayerID string `json:"playerId"`
	GameID   string `json:"gameId"`
	Score    int    `json:"score"`
	Strikes  int    `json:"strikes"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// InsertResult records r. A second insert for the same game is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, player_id, date, score, strikes, spares)
         VALUES(?,?,?,?,?,?)`, r.GameID, r.PlayerID, r.Date, r.Score, r.Strikes, r.Spares,
	)
	return err
}

// Leaderboard returns the best games of date, highest score first, earliest wins ties.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, game_id, score, strikes
         FROM results
         WHERE date=?
         ORDER BY score DESC, created_at ASC, game_id ASC
         LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.GameID, &r.Score, &r.Strikes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayerBest returns the player's best score and number of recorded games.
func (s *Store) PlayerBest(ctx context.Context, playerID string) (best, games int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(score), 0), COUNT(1) FROM results WHERE player_id=?`, playerID,
	).Scan(&best, &games)
	return best, games, err
}

// ReassignPlayer moves all results of from to to, used when a guest signs in.
func (s *Store) ReassignPlayer(ctx context.Context, from, to string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE results SET player_id=? WHERE player_id=?`, to, from)
	return err
}
