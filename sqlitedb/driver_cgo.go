//go:build cgo_sqlite

package sqlitedb

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName    = "sqlite3"
	driverCGO     = true
	driverPackage = "github.com/mattn/go-sqlite3"
)
