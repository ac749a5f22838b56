// Package tablecreator derives SQLite tables from Go models and copies a
// table's shape and first row between databases.
//
// A model field becomes a column when it carries a column tag:
//
//	type Employee struct {
//		ID        int      `column:"empID" primarykey:""`
//		Name      string   `column:"name"`
//		IsPresent bool     `column:"isPresent"`
//		Salary    *float64 `column:"salary,treatnullasdefault"`
//	}
//
// Creation is create-if-absent: an existing table is never altered or
// compared against the model. Steady-state failures (closed or read-only
// handles, engine errors) are logged and reported as false; only a
// contradictory model definition is returned as an error.
package tablecreator

import (
	"context"
	"log/slog"
)

// TableCreator creates and copies tables. It holds no per-call state and is
// safe to reuse; the handles passed to it are not safe for concurrent use.
type TableCreator struct {
	logger *slog.Logger
	tags   tagNames
}

func New(opts ...Option) *TableCreator {
	o := &options{tags: defaultTags}
	for _, op := range opts {
		op(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &TableCreator{
		logger: o.logger,
		tags:   o.tags,
	}
}

// CreateTable creates table in db from the column fields of model unless a
// table of that name already exists. The model is validated before any SQL
// is issued; a contradictory definition is returned as a
// *ConfigurationError. All other failures yield false.
func (tc *TableCreator) CreateTable(ctx context.Context, db Handle, table string, model any) (bool, error) {
	mapping, err := buildColumns(model, tc.tags)
	if err != nil {
		return false, err
	}

	return tc.create(ctx, db, table, CreateTableSQL(table, mapping)), nil
}

// CreateTableWithColumns creates table in db from literal "<name> <type>"
// definitions, e.g. []string{"ZNAME TEXT", "ZID INTEGER"}, unless it already
// exists.
//
// Only the leading name of each definition is checked. Everything after it
// (type words, constraints, defaults) is spliced into the CREATE TABLE
// statement verbatim, so definitions must come from trusted code, never from
// user input.
func (tc *TableCreator) CreateTableWithColumns(ctx context.Context, db Handle, table string, columns []string) bool {
	if !isWritable(db) {
		tc.logger.Warn("database is not open for writing", "table", table)
		return false
	}

	if err := validateLiteralColumns(columns); err != nil {
		tc.logger.Warn("rejected column definitions", "table", table, "err", err)
		return false
	}

	return tc.create(ctx, db, table, CreateTableSQLFromColumns(table, columns))
}

// IsTableExists reports whether db's catalog lists table. Lookup failures
// are logged and reported as false.
func (tc *TableCreator) IsTableExists(ctx context.Context, db Handle, table string) bool {
	if !isOpen(db) {
		tc.logger.Warn("database is not open", "table", table)
		return false
	}

	exists, err := sqliteTableExists(ctx, db, table)
	if err != nil {
		tc.logger.Error("failed to check table existence", "table", table, "err", err)
		return false
	}

	return exists
}

func (tc *TableCreator) create(ctx context.Context, db Handle, table, ddl string) bool {
	log := tc.logger.With("table", table)
	if !isWritable(db) {
		log.Warn("database is not open for writing")
		return false
	}

	if !isValidIdentifier(table) {
		log.Warn("rejected table name", "err", ErrInvalidIdentifier)
		return false
	}

	exists, err := sqliteTableExists(ctx, db, table)
	if err != nil {
		log.Error("failed to check table existence", "err", err)
		return false
	}

	if exists {
		log.Debug("table already exists")
		return true
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		log.Error("failed to create table", "sql", ddl, "err", wrapSqliteError("create table", err))
		return false
	}

	log.Debug("table created", "sql", ddl)
	return true
}
