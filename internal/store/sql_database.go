package store

import (
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/migrations"
)

// Supported database dialects. The dialect selects the driver, the goose
// migration set and the placeholder style used by the repositories.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DB wraps the raw SQL connection with the dialect it was opened for.
// Repositories write queries in PostgreSQL ($N) placeholder style and call
// [DB.rebind] before execution so the same query constants work on both
// backends.
type DB struct {
	*sql.DB
	dialect string
	logger  *logger.Logger
}

// Migrate applies the embedded goose migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect reports the dialect the connection was opened for.
func (db *DB) Dialect() string {
	return db.dialect
}

// placeholders returns the squirrel placeholder format matching the dialect.
func (db *DB) placeholders() squirrel.PlaceholderFormat {
	if db.dialect == DialectSQLite {
		return squirrel.Question
	}
	return squirrel.Dollar
}

// rebind converts a $N-style query to ?-style when the connection dialect
// requires it. Placeholders in the query constants always appear in ascending
// order, so a plain substitution keeps argument positions intact.
func (db *DB) rebind(query string) string {
	if db.dialect != DialectSQLite {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			sb.WriteByte(query[i])
			continue
		}

		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			// Lone '$' that is not a placeholder.
			sb.WriteByte(query[i])
			continue
		}
		sb.WriteByte('?')
		i = j - 1
	}

	return sb.String()
}
