package http

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTotalsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* ─── 1. 正常系: 件数がゲージに反映される ─── */

func TestRefreshTotals_UpdatesGauges(t *testing.T) {
	db, mock := newTotalsMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM blog_posts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))
	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	refreshTotals(context.Background(), db, discardLogger())

	if got := testutil.ToFloat64(blogsTotal); got != 17 {
		t.Errorf("blog_posts_total = %v, want 17", got)
	}
	if got := testutil.ToFloat64(usersTotal); got != 3 {
		t.Errorf("users_total = %v, want 3", got)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

/* ─── 2. 片方の失敗はもう片方を止めない ─── */

func TestRefreshTotals_QueryErrorKeepsPreviousValue(t *testing.T) {
	UpdateBlogsTotal(17)

	db, mock := newTotalsMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM blog_posts`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectQuery(`SELECT count\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	refreshTotals(context.Background(), db, discardLogger())

	// 失敗した側は前回値のまま、成功した側だけ更新される
	if got := testutil.ToFloat64(blogsTotal); got != 17 {
		t.Errorf("blog_posts_total = %v, want 17", got)
	}
	if got := testutil.ToFloat64(usersTotal); got != 9 {
		t.Errorf("users_total = %v, want 9", got)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

/* ─── 3. キャンセル済み context では即座に戻る ─── */

func TestPollTotals_StopsOnContextCancel(t *testing.T) {
	db, _ := newTotalsMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		PollTotals(ctx, db, time.Hour, discardLogger())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PollTotals did not return after context cancellation")
	}
}
