package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
)

// Storages bundles every persistence-layer dependency the service layer
// needs, plus the underlying connection for lifecycle management.
type Storages struct {
	UserRepository    UserRepository
	GroupRepository   GroupRepository
	SessionRepository SessionRepository
	DocumentStorage   DocumentStorage

	db *DB
}

// NewStorages opens the database selected by cfg.DB.Driver, applies the
// embedded migrations and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case DialectSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		GroupRepository:   NewGroupRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		DocumentStorage:   NewDocumentFileStorage(cfg.Files.DocumentsDir, log),
		db:                db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
