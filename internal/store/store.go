// Package store persists the local session credentials in sqlite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

// Direction selects how Migrate moves the schema.
type Direction int

const (
	Up Direction = iota
	Down
)

const (
	memoryPath  = ":memory:"
	pingTimeout = 5 * time.Second
)

var (
	//go:embed migrations
	migrations embed.FS

	ErrDBConnect = errors.New("db connect error")
	ErrMigrate   = errors.New("failed to migrate db schema")
)

// dsn applies the pragmas through the driver so every pooled connection gets them.
func dsn(path string) string {
	query := url.Values{}
	query.Add("_pragma", "busy_timeout(5000)")
	query.Add("_pragma", "foreign_keys(1)")

	if path != memoryPath {
		// Another stattrackr process may hold the file, WAL lets it read while we write.
		query.Add("_pragma", "journal_mode(WAL)")
		query.Add("_pragma", "synchronous(NORMAL)")
	}

	return path + "?" + query.Encode()
}

// Open connects to the credential database at path and migrates it to the latest schema.
// An empty path opens a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = memoryPath
	}

	connection, errOpen := sql.Open("sqlite", dsn(path))
	if errOpen != nil {
		return nil, errors.Join(errOpen, ErrDBConnect)
	}

	// A single row per api profile is read at startup and rewritten on login or refresh. One
	// connection serialises those writes and keeps an in-memory database alive.
	connection.SetMaxOpenConns(1)
	connection.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if errPing := connection.PingContext(pingCtx); errPing != nil {
		return nil, errors.Join(errPing, connection.Close(), ErrDBConnect)
	}

	if errMigrate := Migrate(connection, Up); errMigrate != nil {
		return nil, errors.Join(errMigrate, connection.Close(), ErrDBConnect)
	}

	return connection, nil
}

// Migrate moves the schema all the way up or down.
func Migrate(conn *sql.DB, direction Direction) error {
	driver, errDriver := sqlite.WithInstance(conn, &sqlite.Config{})
	if errDriver != nil {
		return errors.Join(errDriver, ErrMigrate)
	}

	source, errSource := httpfs.New(http.FS(migrations), "migrations")
	if errSource != nil {
		return errors.Join(errSource, ErrMigrate)
	}

	migrator, errInstance := migrate.NewWithInstance("httpfs", source, "sqlite", driver)
	if errInstance != nil {
		return errors.Join(errInstance, ErrMigrate)
	}

	var errMigration error
	if direction == Down {
		errMigration = migrator.Down()
	} else {
		errMigration = migrator.Up()
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		return errors.Join(errMigration, ErrMigrate)
	}

	return nil
}
