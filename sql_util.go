package tablecreator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ranaparamveer/tablecreator/sqlitedb"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Table and column names are spliced into statements verbatim, so every
// identifier is checked against a conservative allowlist first.
func isValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// literalColumnName returns the identifier part of a "<name> <type words>"
// column definition.
func literalColumnName(def string) string {
	fields := strings.Fields(def)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

func validateLiteralColumns(columns []string) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}

	for _, def := range columns {
		if name := literalColumnName(def); !isValidIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, def)
		}
	}

	return nil
}

func wrapSqliteError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrEngine, op, err)
}

func selectAllSQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", table)
}

// storageSelectSQL selects typeof(c) and +c for every column of the first
// row. The unary plus leaves the value and its storage class untouched but
// drops the declared type, which is what drivers key their conversions on.
func storageSelectSQL(table string, columns []string) string {
	exprs := Map(columns, func(col string) string {
		q := sqlitedb.QuoteIdentifier(col)
		return "typeof(" + q + "), +" + q
	})

	return fmt.Sprintf("SELECT %s FROM %s LIMIT 1", strings.Join(exprs, ", "), table)
}

func deleteAllSQL(table string) string {
	return fmt.Sprintf("DELETE FROM %s", table)
}

func insertSQL(table string, columns []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", table, strings.Join(columns, ","))
}
