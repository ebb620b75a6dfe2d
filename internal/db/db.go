package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vytor/mathsprout/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	log *logger.Logger
}

// Open opens the SQLite database at path and brings its schema up to date.
// path may be a plain file name or a "file:" URI.
func Open(path string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
	log.Info("opening database: %s", path)

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // single writer

	log.Debug("applying migrations")
	if err := ApplyMigrations(context.Background(), sqlDB); err != nil {
		log.Error("failed to apply migrations: %v", err)
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database ready")
	return &DB{DB: sqlDB, log: log}, nil
}

// ApplyMigrations runs every embedded migration that is not yet recorded in
// schema_migrations, in file name order.
func ApplyMigrations(ctx context.Context, sqlDB *sql.DB) error {
	log := logger.FromContext(ctx).WithPrefix("db")

	if _, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := isMigrationApplied(ctx, sqlDB, version)
		if err != nil {
			return err
		}
		if applied {
			log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		log.Info("applying migration: %s", version)
		if _, err := sqlDB.ExecContext(ctx, string(sqlBytes)); err != nil {
			log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := sqlDB.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
		log.Info("migration %s applied successfully", version)
	}
	return nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	db.log.Debug("closing database")
	return db.DB.Close()
}

func isMigrationApplied(ctx context.Context, sqlDB *sql.DB, version string) (bool, error) {
	var v string
	err := sqlDB.QueryRowContext(ctx, `SELECT version FROM schema_migrations WHERE version = ?`, version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
