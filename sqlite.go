package tablecreator

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// ScalarKind is the closed set of field kinds that map to a column.
type ScalarKind int

const (
	KindUnsupported ScalarKind = iota
	KindShort
	KindInt
	KindLong
	KindBool
	KindFloat
	KindDouble
	KindText
)

// SQLite type affinities.
const (
	AffinityInteger = "INTEGER"
	AffinityReal    = "REAL"
	AffinityText    = "TEXT"
	AffinityBlob    = "BLOB"

	affinityBool = "INTEGER DEFAULT 0"
)

func (k ScalarKind) String() string {
	switch k {
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindText:
		return "text"
	default:
		return "unsupported"
	}
}

// Affinity returns the column type definition for k.
func (k ScalarKind) Affinity() (string, error) {
	switch k {
	case KindShort, KindInt, KindLong:
		return AffinityInteger, nil
	case KindBool:
		return affinityBool, nil
	case KindFloat, KindDouble:
		return AffinityReal, nil
	case KindText:
		return AffinityText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}
}

// Resolve is the type adapter lookup: scalar kind to SQL type definition.
func Resolve(kind ScalarKind) (string, error) {
	return kind.Affinity()
}

var nullableKinds = map[reflect.Type]ScalarKind{
	reflect.TypeOf(sql.NullInt16{}):   KindShort,
	reflect.TypeOf(sql.NullInt32{}):   KindInt,
	reflect.TypeOf(sql.NullInt64{}):   KindLong,
	reflect.TypeOf(sql.NullBool{}):    KindBool,
	reflect.TypeOf(sql.NullFloat64{}): KindDouble,
	reflect.TypeOf(sql.NullString{}):  KindText,
	reflect.TypeOf(null.Int{}):        KindLong,
	reflect.TypeOf(null.Float{}):      KindDouble,
	reflect.TypeOf(null.Bool{}):       KindBool,
	reflect.TypeOf(null.String{}):     KindText,
}

// KindOf classifies a Go type. Plain scalars are primitive; pointers,
// database/sql Null* and guregu null types are nullable.
func KindOf(t reflect.Type) (kind ScalarKind, primitive bool) {
	if k, ok := nullableKinds[t]; ok {
		return k, false
	}

	if t.Kind() == reflect.Ptr {
		k, _ := KindOf(t.Elem())
		return k, false
	}

	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Uint8, reflect.Uint16:
		return KindShort, true
	case reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32:
		return KindInt, true
	case reflect.Int64, reflect.Uint64:
		return KindLong, true
	case reflect.Bool:
		return KindBool, true
	case reflect.Float32:
		return KindFloat, true
	case reflect.Float64:
		return KindDouble, true
	case reflect.String:
		return KindText, true
	default:
		return KindUnsupported, true
	}
}

const catalogLookupSQL = "SELECT DISTINCT tbl_name FROM sqlite_master WHERE tbl_name = ?"

// sqliteTableExists looks table up in the catalog. The result set is closed
// on every return path.
func sqliteTableExists(ctx context.Context, db sqlx.QueryerContext, table string) (bool, error) {
	qry := catalogLookupSQL
	if b, ok := db.(interface{ Rebind(string) string }); ok {
		qry = b.Rebind(qry)
	}

	rows, err := db.QueryxContext(ctx, qry, table)
	if err != nil {
		return false, wrapSqliteError("query catalog", err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, wrapSqliteError("query catalog", err)
	}

	return found, nil
}
