package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"digitomize/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesSettingsOnEveryConnection(t *testing.T) {
	sqlDB, err := New(&config.Config{DBPath: filepath.Join(t.TempDir(), "d.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	ctx := context.Background()

	// hold two connections at once so the second is a fresh one
	c1, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer c2.Close()

	for _, conn := range []interface {
		QueryRowContext(context.Context, string, ...any) *sql.Row
	}{c1, c2} {
		var mode string
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)

		var fk, busy int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy))
		assert.Equal(t, 1, fk)
		assert.Equal(t, 5000, busy)
	}
}

func TestNew_MigratesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.db")
	sqlDB, err := New(&config.Config{DBPath: path}, zerolog.Nop())
	require.NoError(t, err)

	for _, table := range []string{"users", "platform_profiles", "upcoming_contests", "all_contests", "upcoming_hackathons", "all_hackathons"} {
		var name string
		err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
	require.NoError(t, sqlDB.Close())

	// reopening an up-to-date store is a no-op
	again, err := New(&config.Config{DBPath: path}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}
