package tablecreator

// ColumnMeta is the column annotation carried by a model field.
type ColumnMeta struct {
	Name               string
	TreatNullAsDefault bool
	Readonly           bool
}

// PrimaryKeyMeta marks a field as the table's key.
type PrimaryKeyMeta struct {
	AutoIncrement bool
	Readonly      bool
}

type UniqueMeta struct {
	Readonly bool
}

// FieldDescriptor describes one model field that maps to a column.
// Primitive is true for non-nullable Go value types.
type FieldDescriptor struct {
	Name       string
	Kind       ScalarKind
	Primitive  bool
	Column     ColumnMeta
	PrimaryKey *PrimaryKeyMeta
	Unique     *UniqueMeta
}

// ColumnDescriber is implemented by models that declare their columns
// explicitly. Struct tags are not consulted for such models.
type ColumnDescriber interface {
	ColumnDescriptors() []FieldDescriptor
}
