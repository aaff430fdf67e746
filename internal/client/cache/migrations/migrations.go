// Package migrations embeds the SQLite schema migrations for the local
// client cache.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
