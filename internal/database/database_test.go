package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	for _, table := range []string{"users", "games", "game_state", "results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestOpenMigrated_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bowling.db")
	db, err := OpenMigrated(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}

func TestSelfManaged(t *testing.T) {
	assert.True(t, selfManaged("begin transaction; create table x(a);"))
	assert.True(t, selfManaged("PRAGMA foreign_keys=OFF;"))
	assert.False(t, selfManaged("CREATE TABLE y (b INTEGER);"))
}
