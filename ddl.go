package tablecreator

import "strings"

// CreateTableSQL renders the CREATE TABLE statement for a derived mapping:
//
//	CREATE TABLE <name> ( <col1> <type1>, <col2> <type2>)
func CreateTableSQL(table string, mapping ColumnMapping) string {
	return CreateTableSQLFromColumns(table, mapping.Definitions())
}

// CreateTableSQLFromColumns renders the CREATE TABLE statement from literal
// "<name> <type>" definitions, each inserted verbatim.
func CreateTableSQLFromColumns(table string, columns []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(table)
	b.WriteString(" ( ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(")")

	return b.String()
}
