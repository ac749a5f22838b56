package sqlitedb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

var ErrTableNotFound = errors.New("sqlitedb: table not found")

// ColumnInfo is one row of PRAGMA table_info.
type ColumnInfo struct {
	CID        int         `db:"cid" json:"cid"`
	Name       string      `db:"name" json:"name"`
	Type       string      `db:"type" json:"type"`
	NotNull    bool        `db:"notnull" json:"not_null"`
	Default    null.String `db:"dflt_value" json:"default"`
	PrimaryKey int         `db:"pk" json:"pk"`
}

// TableInfo returns the declared columns of table in definition order.
func TableInfo(ctx context.Context, db sqlx.QueryerContext, table string) ([]ColumnInfo, error) {
	qry := fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdentifier(table))

	var cols []ColumnInfo
	if err := sqlx.SelectContext(ctx, db, &cols, qry); err != nil {
		return nil, fmt.Errorf("sqlitedb: table_info %s: %w", table, err)
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	return cols, nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, db sqlx.QueryerContext, table string) (int64, error) {
	var n int64
	qry := fmt.Sprintf("SELECT COUNT(*) FROM %s", QuoteIdentifier(table))
	if err := sqlx.GetContext(ctx, db, &n, qry); err != nil {
		return 0, fmt.Errorf("sqlitedb: count %s: %w", table, err)
	}

	return n, nil
}

// QuoteIdentifier quotes name as a SQLite identifier.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
