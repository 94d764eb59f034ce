package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunPostgresMigrations applies the embedded Postgres migrations. It reports whether anything changed.
func RunPostgresMigrations(databaseURL string) (bool, error) {
	// separate database/sql connection; the app uses a pgx pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations("migrations/postgres", "postgres", driver)
}

// RunSQLiteMigrations applies the embedded SQLite migrations to the database file at path.
func RunSQLiteMigrations(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create database directory: %w", err)
	}
	migrationDB, err := sql.Open("sqlite", path)
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	driver, err := sqlite.WithInstance(migrationDB, &sqlite.Config{})
	if err != nil {
		return false, fmt.Errorf("create sqlite driver: %w", err)
	}
	return runMigrations("migrations/sqlite", "sqlite", driver)
}

func runMigrations(dir, databaseName string, driver migratedb.Driver) (bool, error) {
	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return false, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}
	return upErr == nil, nil
}
