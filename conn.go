package tablecreator

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/ranaparamveer/tablecreator/sqlitedb"
)

// Handle is an open database the creator works against. *sqlitedb.DB
// satisfies it.
type Handle interface {
	sqlx.ExtContext
	IsOpen() bool
	IsReadOnly() bool
}

// Provisioner opens databases by name and owns where they live on disk.
// asset.Provisioner is the bundled-asset implementation.
type Provisioner interface {
	OpenReadable(ctx context.Context, name string) (*sqlitedb.DB, error)
	OpenWritable(ctx context.Context, name string) (*sqlitedb.DB, error)
}

func isOpen(db Handle) bool {
	return db != nil && db.IsOpen()
}

func isWritable(db Handle) bool {
	return isOpen(db) && !db.IsReadOnly()
}
