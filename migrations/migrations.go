// Package migrations embeds the PostgreSQL schema for clients and users.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
