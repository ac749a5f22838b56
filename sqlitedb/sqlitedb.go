// Package sqlitedb provides the SQLite handle used by tablecreator, backed by
// either the pure Go (modernc.org/sqlite) or the CGO (mattn/go-sqlite3)
// driver.
//
// Building with -tags cgo_sqlite swaps the default modernc driver for mattn.
//
// A DB tracks whether it is open and whether it was opened read-only, which
// sql.DB itself does not expose.
package sqlitedb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DB is a SQLite handle with open and read-only state. The connection pool
// is capped at one connection.
type DB struct {
	*sqlx.DB
	path     string
	readOnly bool
	closed   bool
}

// Open opens (creating if needed) a writable database at path.
func Open(path string) (*DB, error) {
	return open(path, path, false)
}

// OpenReadOnly opens an existing database at path in read-only mode.
func OpenReadOnly(path string) (*DB, error) {
	return open(path, "file:"+path+"?mode=ro", true)
}

func open(path, dsn string, readOnly bool) (*DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: failed to open %s: %w", path, err)
	}

	// A ":memory:" database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitedb: failed to open %s: %w", path, err)
	}

	return &DB{DB: db, path: path, readOnly: readOnly}, nil
}

// Wrap adopts an already opened connection, e.g. one backed by sqlmock.
func Wrap(db *sqlx.DB, readOnly bool) *DB {
	return &DB{DB: db, readOnly: readOnly}
}

func (d *DB) IsOpen() bool {
	return d != nil && d.DB != nil && !d.closed
}

func (d *DB) IsReadOnly() bool {
	return d != nil && d.readOnly
}

func (d *DB) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Close closes the handle. Closing twice is a no-op.
func (d *DB) Close() error {
	if !d.IsOpen() {
		return nil
	}

	d.closed = true
	return d.DB.Close()
}

// Driver names the SQLite driver this binary was built with.
type Driver struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	CGO     bool   `json:"cgo"`
}

func CurrentDriver() Driver {
	return Driver{Name: driverName, Package: driverPackage, CGO: driverCGO}
}
