package tablecreator

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alecthomas/assert/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ranaparamveer/tablecreator/sqlitedb"
)

// countingHandle counts every statement sent through the handle.
type countingHandle struct {
	*sqlitedb.DB
	calls int
}

func (h *countingHandle) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	h.calls++
	return h.DB.ExecContext(ctx, query, args...)
}

func (h *countingHandle) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	h.calls++
	return h.DB.QueryContext(ctx, query, args...)
}

func (h *countingHandle) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	h.calls++
	return h.DB.QueryxContext(ctx, query, args...)
}

func (h *countingHandle) QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row {
	h.calls++
	return h.DB.QueryRowxContext(ctx, query, args...)
}

func newTestCreator(opts ...Option) (*TableCreator, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return New(append([]Option{WithLogger(logger)}, opts...)...), &buf
}

func openMemory(t *testing.T) *sqlitedb.DB {
	t.Helper()

	db, err := sqlitedb.Open(":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// openReadOnly creates a database file holding the given statements and
// reopens it read-only.
func openReadOnly(t *testing.T, stmts ...string) *sqlitedb.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ro.db")
	rw, err := sqlitedb.Open(path)
	assert.NoError(t, err)
	for _, stmt := range stmts {
		_, err := rw.Exec(stmt)
		assert.NoError(t, err)
	}
	assert.NoError(t, rw.Close())

	db, err := sqlitedb.OpenReadOnly(path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func newMock(t *testing.T) (*sqlitedb.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlitedb.Wrap(sqlx.NewDb(mockDB, "sqlmock"), false), mock
}

func execAll(t *testing.T, db Handle, stmts ...string) {
	t.Helper()

	for _, stmt := range stmts {
		_, err := db.ExecContext(context.Background(), stmt)
		assert.NoError(t, err)
	}
}

func countRows(t *testing.T, db *sqlitedb.DB, table string) int64 {
	t.Helper()

	n, err := sqlitedb.CountRows(context.Background(), db, table)
	assert.NoError(t, err)
	return n
}

func columnTypes(t *testing.T, db *sqlitedb.DB, table string) []string {
	t.Helper()

	cols, err := sqlitedb.TableInfo(context.Background(), db, table)
	assert.NoError(t, err)

	return Map(cols, func(c sqlitedb.ColumnInfo) string {
		return c.Name + " " + c.Type
	})
}
