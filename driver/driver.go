package driver

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"student-rank/config"
)

// ConnectDB opens the process-wide pool and checks it answers. The caller
// owns the pool and must Close it on shutdown.
func ConnectDB(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Driver)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	log.WithFields(log.Fields{
		"driver":         cfg.Driver,
		"max_open_conns": cfg.MaxOpenConns,
	}).Info("connected to database")
	return db, nil
}

// Close releases the pool and logs the outcome.
func Close(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.WithError(err).Warn("closing connection pool")
		return
	}
	log.Info("connection pool closed")
}
