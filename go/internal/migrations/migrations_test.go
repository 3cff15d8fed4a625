package migrations

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsHaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		body, err := fs.ReadFile(entry.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", entry.Name())
		assert.Contains(t, string(body), "-- +goose Down", entry.Name())
	}
}

func TestGamesMigrationGuardsTapCount(t *testing.T) {
	body, err := fs.ReadFile("00002_games.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CHECK (tap_count >= 0)")
	assert.Contains(t, string(body), "UNIQUE (game_id, participant_id)")
}

// TestRunAgainstPostgres needs a scratch database; set OLYMPICS_TEST_DSN to run it.
func TestRunAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("OLYMPICS_TEST_DSN")
	if dsn == "" {
		t.Skip("OLYMPICS_TEST_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Run(db))
	require.NoError(t, Run(db), "second run should be a no-op")

	for _, table := range []string{"participants", "events", "scores", "games", "game_participants", "game_outbox"} {
		var name string
		err := db.QueryRow("SELECT to_regclass($1)::text", table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
