// Package migrations embeds the goose SQL migrations for every supported
// database backend and applies them at startup.
//
// Each dialect keeps its own migration set (postgres/, sqlite/) because the
// identity-column and timestamp syntax differ between the engines. The two
// sets must stay structurally identical: same tables, same columns, same
// version numbering.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations for the given goose dialect
// ("pgx" or "sqlite3") to db.
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	var dir string
	switch dialect {
	case "pgx", "postgres":
		dialect = "pgx"
		dir = "postgres"
	case "sqlite3", "sqlite":
		dialect = "sqlite3"
		dir = "sqlite"
	default:
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
