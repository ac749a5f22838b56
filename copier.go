package tablecreator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
)

// CopyTable copies the first row of table from one database to another.
// When to lacks the table it is created with column types inferred from
// that row's values; otherwise every existing row in to is deleted first.
// It reports false when to is not writable, the source query fails or
// yields no columns or no rows, or any write fails.
func (tc *TableCreator) CopyTable(ctx context.Context, from, to Handle, table string) bool {
	log := tc.logger.With("table", table)
	if !isOpen(from) {
		log.Warn("source database is not open")
		return false
	}

	if !isValidIdentifier(table) {
		log.Warn("rejected table name", "err", ErrInvalidIdentifier)
		return false
	}

	bag, err := readFirstRow(ctx, from, table)
	if err != nil {
		log.Error("failed to read source row", "err", err)
		return false
	}

	if !isWritable(to) {
		log.Warn("destination database is not open for writing")
		return false
	}

	exists, err := sqliteTableExists(ctx, to, table)
	if err != nil {
		log.Error("failed to check table existence", "err", err)
		return false
	}

	if !exists {
		if !tc.CreateTableWithColumns(ctx, to, table, bag.ColumnDefinitions()) {
			return false
		}
	} else if _, err := to.ExecContext(ctx, deleteAllSQL(table)); err != nil {
		log.Error("failed to clear destination table", "err", wrapSqliteError("delete rows", err))
		return false
	}

	if err := InsertRow(ctx, to, table, bag); err != nil {
		log.Error("failed to insert row", "err", err)
		return false
	}

	log.Debug("table copied", "columns", bag.Len())
	return true
}

// readFirstRow reads the first row of table by SQLite storage class, so
// drivers that convert DATE or BOOLEAN columns do not alter the copied value.
// Each cursor is closed before returning so from and to may share a
// connection.
func readFirstRow(ctx context.Context, from Handle, table string) (*RowBag, error) {
	columns, err := sourceColumns(ctx, from, table)
	if err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return nil, ErrEmptyRow
	}

	rows, err := from.QueryxContext(ctx, storageSelectSQL(table, columns))
	if err != nil {
		return nil, wrapSqliteError("select row", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, wrapSqliteError("read row", err)
		}
		return nil, ErrNoSourceRows
	}

	pairs, err := rows.SliceScan()
	if err != nil {
		return nil, wrapSqliteError("scan row", err)
	}

	if len(pairs) != 2*len(columns) {
		return nil, fmt.Errorf("%w: scan row: %d values for %d columns", ErrEngine, len(pairs), len(columns))
	}

	values := make([]any, len(columns))
	for i, col := range columns {
		v, err := storageValue(pairs[2*i], pairs[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		values[i] = v
	}

	return RowBagFromValues(columns, values)
}

func sourceColumns(ctx context.Context, from Handle, table string) ([]string, error) {
	rows, err := from.QueryxContext(ctx, selectAllSQL(table))
	if err != nil {
		return nil, wrapSqliteError("select rows", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapSqliteError("read columns", err)
	}

	return columns, nil
}

// storageValue turns a typeof() class and the raw value next to it into the
// Go value RowBag holds for that class.
func storageValue(class, v any) (any, error) {
	name, err := classString(class)
	if err != nil {
		return nil, err
	}

	switch name {
	case "null":
		return nil, nil
	case "integer":
		if n, ok := v.(int64); ok {
			return n, nil
		}
	case "real":
		if f, ok := v.(float64); ok {
			return f, nil
		}
	case "text":
		switch t := v.(type) {
		case string:
			return t, nil
		case []byte:
			return string(t), nil
		}
	case "blob":
		switch b := v.(type) {
		case []byte:
			if b == nil {
				return []byte{}, nil
			}
			return bytes.Clone(b), nil
		case string:
			return []byte(b), nil
		}
	default:
		return nil, fmt.Errorf("%w: storage class %q", ErrUnsupportedValue, name)
	}

	return nil, fmt.Errorf("%w: %T for storage class %s", ErrUnsupportedValue, v, name)
}

func classString(class any) (string, error) {
	switch c := class.(type) {
	case string:
		return c, nil
	case []byte:
		return string(c), nil
	default:
		return "", fmt.Errorf("%w: storage class %T", ErrUnsupportedValue, class)
	}
}

// CopyTableFromAssets opens fromName readable and toName writable through p,
// copies table between them and closes both on every path. Open failures
// are reported as false.
func (tc *TableCreator) CopyTableFromAssets(ctx context.Context, p Provisioner, fromName, toName, table string) bool {
	log := tc.logger.With("table", table, "from", fromName, "to", toName)

	from, err := p.OpenReadable(ctx, fromName)
	if err != nil {
		log.Error("failed to open source database", "err", err)
		return false
	}
	defer closeHandle(log, from)

	to, err := p.OpenWritable(ctx, toName)
	if err != nil {
		log.Error("failed to open destination database", "err", err)
		return false
	}
	defer closeHandle(log, to)

	return tc.CopyTable(ctx, from, to, table)
}

func closeHandle(log *slog.Logger, db interface {
	IsOpen() bool
	Close() error
}) {
	if db == nil || !db.IsOpen() {
		return
	}

	if err := db.Close(); err != nil {
		log.Warn("failed to close database", "err", fmt.Errorf("close: %w", err))
	}
}
