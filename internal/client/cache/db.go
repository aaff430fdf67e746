package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bpkeeper/internal/client/cache/migrations"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the repositories backed by one cache database.
type Repositories struct {
	Snapshots SnapshotRepository
	Metadata  MetadataRepository
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the cache database at dsn, applies
// migrations, and returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Snapshots: NewSQLiteSnapshotRepository(db),
		Metadata:  NewSQLiteMetadataRepository(db),
	}, nil
}
