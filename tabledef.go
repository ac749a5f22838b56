package tablecreator

// ColumnDef is one column of a derived mapping.
type ColumnDef struct {
	Name       string
	Type       string // type definition, e.g. "INTEGER PRIMARY KEY AUTOINCREMENT"
	PrimaryKey bool
}

// ColumnMapping is the ordered column name to type definition mapping
// derived from one model. Each BuildColumns call returns a fresh value.
type ColumnMapping []ColumnDef

func (m ColumnMapping) Get(name string) (string, bool) {
	for _, col := range m {
		if col.Name == name {
			return col.Type, true
		}
	}

	return "", false
}

func (m ColumnMapping) Names() []string {
	return Map(m, func(col ColumnDef) string {
		return col.Name
	})
}

// Definitions renders each column as "<name> <type>".
func (m ColumnMapping) Definitions() []string {
	return Map(m, func(col ColumnDef) string {
		return col.Name + " " + col.Type
	})
}

// PrimaryKey returns the key column, if the mapping has one.
func (m ColumnMapping) PrimaryKey() (ColumnDef, bool) {
	for _, col := range m {
		if col.PrimaryKey {
			return col, true
		}
	}

	return ColumnDef{}, false
}
