package migrations

import "embed"

// FS contains embedded SQLite migrations for diagnostics storage.
//
//go:embed *.sql
var FS embed.FS
