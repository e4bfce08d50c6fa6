package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"asset-tracker/internal/config"
	"asset-tracker/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	pool *sql.DB
	once sync.Once
)

// DB returns the global database connection pool (initialized on first use).
// It returns nil when the pool could not be opened.
func DB(ctx context.Context) *sql.DB {
	once.Do(func() {
		cfg := config.Get()
		db, err := Open(cfg.DSN(), cfg.DBPoolSize)
		if err != nil {
			logger.Error(ctx, "Failed to open database", "error", err)
			return
		}
		if err := db.PingContext(ctx); err != nil {
			logger.Error(ctx, "Database ping failed", "error", err, "host", cfg.DBHost, "db", cfg.DBName)
			_ = db.Close()
			return
		}
		pool = db
		logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	})
	return pool
}

// Open opens a postgres pool without touching the global one.
func Open(dsn string, poolSize int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize / 2)
	return db, nil
}

// MigrateOrCreateSchema applies the embedded migrations to the global pool.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return fmt.Errorf("database not available")
	}
	return Migrate(ctx, db)
}

// Migrate applies the embedded migrations to db.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info(ctx, "Schema up to date")
	return nil
}
