package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names registered by the imported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DriverFor picks the driver for a connection target. Postgres URLs go to
// pgx, anything else is treated as a SQLite path.
func DriverFor(target string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return DriverPostgres, target
	case strings.HasPrefix(target, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(target, "sqlite://")
	default:
		return DriverSQLite, target
	}
}

// Open connects to the datastore named by target, checks the connection
// and runs migrations.
func Open(target string) (*sql.DB, error) {
	driver, dsn := DriverFor(target)
	if driver == DriverSQLite {
		return openSQLite(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	//check if connection is alive
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database_intialisation_success", "driver", driver)
	return db, nil
}

// openSQLite opens a SQLite database at path. Pragmas go in the DSN so
// every pooled connection gets them. ":memory:" keeps a single connection
// so every query sees the same database.
func openSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database_intialisation_success", "driver", DriverSQLite, "path", path)
	return db, nil
}
