// Package migrations holds the one-off maintenance SQL for the students
// table: bootstrap when absent, and the lookup/ranking indexes.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

// Source returns the embedded migration files.
func Source() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// Up applies every pending migration on a connection borrowed from db. The
// pool itself stays open.
func Up(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}

	src, err := Source()
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "load migrations")
	}
	drv, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		src.Close()
		conn.Close()
		return errors.Wrap(err, "migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		src.Close()
		drv.Close()
		return errors.Wrap(err, "migration instance")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("migrations: nothing to apply")
			return nil
		}
		return errors.Wrap(err, "apply migrations")
	}
	version, dirty, _ := m.Version()
	log.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("migrations applied")
	return nil
}

// RequiredTables must exist before the service can answer queries.
var RequiredTables = []string{"students"}

// Verify checks the required tables are present in the public schema.
func Verify(ctx context.Context, db *sql.DB) error {
	for _, table := range RequiredTables {
		var exists bool
		err := db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			return errors.Wrapf(err, "check table %s", table)
		}
		if !exists {
			return errors.Errorf("required table %s does not exist", table)
		}
	}
	return nil
}
