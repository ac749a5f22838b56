package tablecreator

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ValueType is the runtime storage class of a column value.
type ValueType int

const (
	ValueNull ValueType = iota
	ValueInteger
	ValueFloat
	ValueText
	ValueBlob
)

func (v ValueType) String() string {
	switch v {
	case ValueInteger:
		return "integer"
	case ValueFloat:
		return "float"
	case ValueText:
		return "text"
	case ValueBlob:
		return "blob"
	default:
		return "null"
	}
}

// Affinity is the column type inferred from a value of this type. NULL
// carries no type information and falls back to TEXT.
func (v ValueType) Affinity() string {
	switch v {
	case ValueInteger:
		return AffinityInteger
	case ValueFloat:
		return AffinityReal
	case ValueBlob:
		return AffinityBlob
	default:
		return AffinityText
	}
}

// TypeOfValue classifies a value already normalised by RowBag.Put.
func TypeOfValue(v any) ValueType {
	switch v.(type) {
	case int64:
		return ValueInteger
	case float64:
		return ValueFloat
	case string:
		return ValueText
	case []byte:
		return ValueBlob
	default:
		return ValueNull
	}
}

// RowBag is one row keyed by column name, in column order. Values are
// held as nil, int64, float64, string or []byte.
type RowBag struct {
	columns []string
	values  map[string]any
}

func NewRowBag() *RowBag {
	return &RowBag{values: make(map[string]any)}
}

// RowBagFromValues builds a bag from a scanned row.
func RowBagFromValues(columns []string, values []any) (*RowBag, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("%d columns but %d values", len(columns), len(values))
	}

	bag := NewRowBag()
	for i, col := range columns {
		if err := bag.Put(col, values[i]); err != nil {
			return nil, err
		}
	}

	return bag, nil
}

// Put stores value under column, replacing any previous value while keeping
// the column's original position.
func (b *RowBag) Put(column string, value any) error {
	v, err := normalizeValue(value)
	if err != nil {
		return fmt.Errorf("column %s: %w", column, err)
	}

	if _, ok := b.values[column]; !ok {
		b.columns = append(b.columns, column)
	}
	b.values[column] = v

	return nil
}

func (b *RowBag) PutNull(column string) {
	_ = b.Put(column, nil)
}

func (b *RowBag) Get(column string) (any, bool) {
	v, ok := b.values[column]
	return v, ok
}

func (b *RowBag) Type(column string) ValueType {
	return TypeOfValue(b.values[column])
}

func (b *RowBag) Columns() []string {
	return append([]string(nil), b.columns...)
}

func (b *RowBag) Values() []any {
	return Map(b.columns, func(col string) any {
		return b.values[col]
	})
}

func (b *RowBag) Len() int {
	return len(b.columns)
}

// ColumnDefinitions infers "<name> <affinity>" definitions from the
// runtime type of each value.
func (b *RowBag) ColumnDefinitions() []string {
	return Map(b.columns, func(col string) string {
		return col + " " + b.Type(col).Affinity()
	})
}

func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int64, float64, string:
		return v, nil
	case []byte:
		if v == nil {
			return nil, nil
		}
		return bytes.Clone(v), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		return float64(v), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

type execBinder interface {
	sqlx.ExecerContext
	Rebind(query string) string
}

// InsertRow inserts bag into table. Column names must be plain identifiers.
func InsertRow(ctx context.Context, db execBinder, table string, bag *RowBag) error {
	if bag == nil || bag.Len() == 0 {
		return ErrEmptyRow
	}

	if !isValidIdentifier(table) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}

	for _, col := range bag.columns {
		if !isValidIdentifier(col) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
	}

	qry, args, err := sqlx.In(insertSQL(table, bag.columns), bag.Values())
	if err != nil {
		return fmt.Errorf("failed to expand insert query: %w", err)
	}

	qry = db.Rebind(qry)
	if _, err := db.ExecContext(ctx, qry, args...); err != nil {
		return wrapSqliteError("insert row", err)
	}

	return nil
}
