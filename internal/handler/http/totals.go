package http

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// PollTotals refreshes the blog_posts_total and users_total gauges
// from the database until ctx is canceled. The repositories only
// expose per-user queries, so the counts come straight from the tables.
func PollTotals(ctx context.Context, db *sql.DB, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		refreshTotals(ctx, db, logger)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func refreshTotals(ctx context.Context, db *sql.DB, logger *slog.Logger) {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	gauges := []struct {
		table string
		set   func(int)
	}{
		{"blog_posts", UpdateBlogsTotal},
		{"users", UpdateUsersTotal},
	}
	for _, g := range gauges {
		start := time.Now()
		var count int
		err := db.QueryRowContext(queryCtx, "SELECT count(*) FROM "+g.table).Scan(&count)
		if err != nil {
			// 失敗してもゲージは前回値のまま。次の周期で再試行する
			logger.Warn("totals gauge refresh failed",
				slog.String("table", g.table),
				slog.Any("error", err))
			continue
		}
		RecordDBQuery("count_"+g.table, time.Since(start))
		g.set(count)
	}
}
