// Package migrations holds the SQL schema migrations, embedded so the
// migrate command and integration tests do not depend on the working directory.
package migrations

import "embed"

// FS contains every *.sql migration file
//
//go:embed *.sql
var FS embed.FS
