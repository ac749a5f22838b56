package tablecreator

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

const (
	primaryKeySuffix              = " PRIMARY KEY"
	primaryKeyAutoIncrementSuffix = " PRIMARY KEY AUTOINCREMENT"
	uniqueSuffix                  = " UNIQUE"
)

// BuildColumns derives the column mapping of model using the default tag
// names. model may be a struct value, a pointer to one, a reflect.Type or a
// ColumnDescriber. Any error is a *ConfigurationError.
func BuildColumns(model any) (ColumnMapping, error) {
	return buildColumns(model, defaultTags)
}

// BuildColumns is like the package-level BuildColumns but honours the tag
// names configured on tc.
func (tc *TableCreator) BuildColumns(model any) (ColumnMapping, error) {
	return buildColumns(model, tc.tags)
}

func buildColumns(model any, tags tagNames) (ColumnMapping, error) {
	modelName, fields, err := modelFields(model, tags)
	if err != nil {
		return nil, err
	}

	var mapping ColumnMapping
	seen := make(map[string]bool)
	primaryKeyFound := false
	for field := range fields {
		col := field.Column
		if col.TreatNullAsDefault && field.Primitive {
			return nil, configError(modelName, field.Name, ErrNullDefaultOnPrimitive)
		}

		if col.TreatNullAsDefault && col.Readonly {
			return nil, configError(modelName, field.Name, ErrNullDefaultOnReadonly)
		}

		if !isValidIdentifier(col.Name) {
			return nil, configError(modelName, field.Name, fmt.Errorf("%w: %q", ErrInvalidIdentifier, col.Name))
		}

		affinity, err := field.Kind.Affinity()
		if err != nil {
			return nil, configError(modelName, field.Name, err)
		}

		def := ColumnDef{Name: col.Name, Type: affinity}
		if field.PrimaryKey != nil && affinity == AffinityInteger {
			if primaryKeyFound {
				return nil, configError(modelName, field.Name, ErrMultiplePrimaryKeys)
			}
			primaryKeyFound = true
			def.PrimaryKey = true
			if field.PrimaryKey.AutoIncrement {
				def.Type += primaryKeyAutoIncrementSuffix
			} else {
				def.Type += primaryKeySuffix
			}
		}

		if field.Unique != nil && !def.PrimaryKey {
			def.Type += uniqueSuffix
		}

		// SQLite column names are case-insensitive.
		key := strings.ToLower(col.Name)
		if seen[key] {
			return nil, configError(modelName, field.Name, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name))
		}
		seen[key] = true

		mapping = append(mapping, def)
	}

	if len(mapping) == 0 {
		return nil, configError(modelName, "", ErrNoColumns)
	}

	return mapping, nil
}

func modelFields(model any, tags tagNames) (string, iter.Seq[FieldDescriptor], error) {
	if d, ok := model.(ColumnDescriber); ok {
		return reflect.TypeOf(model).String(), slices.Values(d.ColumnDescriptors()), nil
	}

	var t reflect.Type
	switch m := model.(type) {
	case nil:
		return "<nil>", nil, configError("<nil>", "", ErrNotStruct)
	case reflect.Type:
		t = m
	default:
		t = reflect.TypeOf(model)
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return t.String(), nil, configError(t.String(), "", ErrNotStruct)
	}

	return t.String(), fieldsOf(t, tags), nil
}
