package migrations

import "embed"

// FS contains embedded SQLite migrations for dungeon run storage.
//
//go:embed *.sql
var FS embed.FS
