package migrations

import "embed"

// FS contains embedded SQLite migrations for transaction history.
//
//go:embed *.sql
var FS embed.FS
