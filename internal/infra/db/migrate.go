package db

import (
	"database/sql"
)

// MigrateUp creates the schema if it does not exist yet.
// Statements are idempotent so the migration can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS blog_posts (
    id                SERIAL PRIMARY KEY,
    user_id           INTEGER NOT NULL REFERENCES users(id),
    youtube_title     TEXT NOT NULL,
    youtube_link      TEXT NOT NULL,
    generated_content TEXT NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// 一覧表示は所有者ごとの新着順のみ
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_blog_posts_user_created ON blog_posts(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_blog_posts_user_created`,
		`DROP TABLE IF EXISTS blog_posts CASCADE`,
		`DROP INDEX IF EXISTS idx_users_username`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
