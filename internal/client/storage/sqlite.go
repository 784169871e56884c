package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/faktura/internal/client/migrations"
	"github.com/dmitrijs2005/faktura/internal/client/repositories/kv"
	"github.com/dmitrijs2005/faktura/internal/dbx"
	"github.com/dmitrijs2005/faktura/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLite keeps the values in the kv table of a local SQLite database.
type SQLite struct {
	db   *sql.DB
	repo *kv.SQLiteRepository
}

// RunMigrations applies the embedded goose migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare sqlite %q: %w", dsn, err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	// single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLite(db), nil
}

// NewSQLite wraps an already migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, repo: kv.NewSQLiteRepository(db)}
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLite) Delete(ctx context.Context, keys ...string) error {
	if len(keys) < 2 {
		return s.repo.Delete(ctx, keys...)
	}
	return s.Update(ctx, Change{Delete: keys})
}

func (s *SQLite) Update(ctx context.Context, c Change) error {
	if c.empty() {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		for k, v := range c.Set {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, c.Delete...)
	})
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
