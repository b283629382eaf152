package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/migrations"
)

// NewConnectSQLite opens the cache index database, verifies the connection,
// and applies the embedded migrations. An empty cfg.Path selects an
// in-memory database, so the cache does not survive restarts.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	// establish connection
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// sqlite handles one writer; keep the pool small
	conn.SetMaxOpenConns(1)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.Migrate(conn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error migrating cache index schema")
		return nil, err
	}

	log.Info().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to cache index successfully")

	return conn, nil
}
