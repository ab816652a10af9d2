// Package localdb opens the client's sqlite database, brings its schema up
// to date from the embedded goose migrations and wires the repositories
// that live in it.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/giftshop/internal/client/migrations"
	"github.com/dmitrijs2005/giftshop/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/giftshop/internal/client/repositories/orders"
	"github.com/dmitrijs2005/giftshop/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB     *sql.DB
	Items  localstore.Repository
	Orders orders.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies every pending migration. Running it on an up to date
// database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the sqlite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer keeps sqlite from returning SQLITE_BUSY between REPL commands
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:     db,
		Items:  localstore.NewSQLiteRepository(db),
		Orders: orders.NewSQLiteRepository(db),
	}, nil
}
