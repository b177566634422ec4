package db

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blogsmith/pkg/config"
)

// ConnectionConfig holds the connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns pool settings sized for a single API
// instance. 25 connections leaves room for the worker and migrations
// under Postgres' default limit of 100.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open connects to the database named by DATABASE_URL, applies the pool
// settings and verifies the connection with a ping. Startup cannot
// proceed without a database, so any failure here is fatal.
func Open() *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}

	cfg := poolConfigFromEnv()
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	slog.Info("database connection established")
	return db
}

// poolConfigFromEnv overlays DB_* environment variables on the default
// pool settings. 0以下の値は無視してデフォルトを使う
func poolConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if val := config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); val > 0 {
		cfg.MaxOpenConns = val
	}
	if val := config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); val > 0 {
		cfg.MaxIdleConns = val
	}
	if val := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); val > 0 {
		cfg.ConnMaxLifetime = val
	}
	if val := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime); val > 0 {
		cfg.ConnMaxIdleTime = val
	}

	return cfg
}
