package results

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bowling/internal/database"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "2026-10-13", DateKey(time.Date(2026, 10, 14, 1, 0, 0, 0, loc)))
}

func TestLeaderboard_OrdersByScore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, r := range []Result{
		{GameID: "g1", PlayerID: "ann", Date: "2026-10-14", Score: 120},
		{GameID: "g2", PlayerID: "bob", Date: "2026-10-14", Score: 300, Strikes: 12},
		{GameID: "g3", PlayerID: "cat", Date: "2026-10-14", Score: 150},
		{GameID: "g4", PlayerID: "dan", Date: "2026-10-13", Score: 290},
	} {
		require.NoError(t, s.InsertResult(ctx, r))
	}

	rows, err := s.Leaderboard(ctx, "2026-10-14", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].PlayerID)
	assert.Equal(t, 12, rows[0].Strikes)
	assert.Equal(t, "cat", rows[1].PlayerID)
}

func TestInsertResult_IgnoresDuplicateGame(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	r := Result{GameID: "g1", PlayerID: "ann", Date: "2026-10-14", Score: 90}
	require.NoError(t, s.InsertResult(ctx, r))
	r.Score = 200
	require.NoError(t, s.InsertResult(ctx, r))

	best, games, err := s.PlayerBest(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, 90, best)
	assert.Equal(t, 1, games)
}

func TestReassignPlayer(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.InsertResult(ctx, Result{GameID: "g1", PlayerID: "anon-1", Date: "2026-10-14", Score: 77}))

	require.NoError(t, s.ReassignPlayer(ctx, "anon-1", "user-1"))

	best, games, err := s.PlayerBest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 77, best)
	assert.Equal(t, 1, games)

	_, games, err = s.PlayerBest(ctx, "anon-1")
	require.NoError(t, err)
	assert.Zero(t, games)
}
