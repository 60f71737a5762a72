// Package migrations embeds the SQL schema migrations for the chunk store.
package migrations

import "embed"

// FS holds the SQL migration files, applied in lexical order at open.
//
//go:embed *.sql
var FS embed.FS
