package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/sqlite"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"001_items.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
		"002_tags.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE tags(id TEXT PRIMARY KEY);"),
		},
		"README.md": &fstest.MapFile{Data: []byte("ignored")},
	}
}

func count(t *testing.T, ctx context.Context, path string, query string) int {
	t.Helper()
	db, err := sqlite.Open(ctx, path, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, query).Scan(&n))
	return n
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.Open(ctx, path, &sqlite.Options{Migrations: testMigrations()})
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO items(id) VALUES ('a')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO tags(id) VALUES ('b')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path, &sqlite.Options{Migrations: testMigrations()})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Equal(t, 2, count(t, ctx, path, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 1, count(t, ctx, path, "SELECT COUNT(*) FROM items"))
}

func TestOpen_BadMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.db")

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("CREAT TABLE nope(id INT);")},
	}
	_, err := sqlite.Open(ctx, path, &sqlite.Options{Migrations: bad})
	require.Error(t, err)

	assert.Equal(t, 0, count(t, ctx, path, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), " ", nil)
	assert.Error(t, err)
}

func TestExtractUp(t *testing.T) {
	assert.Equal(t, "\nA;\n", sqlite.ExtractUp("-- +migrate Up\nA;\n-- +migrate Down\nB;"))
	assert.Equal(t, "A;", sqlite.ExtractUp("A;"))
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "u.db"), &sqlite.Options{Migrations: testMigrations()})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, "INSERT INTO items(id) VALUES ('dup')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO items(id) VALUES ('dup')")
	require.Error(t, err)

	assert.True(t, sqlite.IsUniqueViolation(err))
	assert.False(t, sqlite.IsUniqueViolation(nil))
}

func TestOpen_LazyReadOnlyMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing.db")

	db, err := sqlite.Open(ctx, path, &sqlite.Options{ReadOnly: true, Lazy: true})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Error(t, db.PingContext(ctx))
}
