// Package migrations embeds the goose migrations for PostgreSQL: the schema
// and the stored functions the API calls.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
