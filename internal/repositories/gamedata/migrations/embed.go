package migrations

import "embed"

// FS contains embedded SQLite migrations for the game-data store.
//
//go:embed *.sql
var FS embed.FS
