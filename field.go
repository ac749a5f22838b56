package tablecreator

import (
	"iter"
	"reflect"

	"github.com/iancoleman/strcase"
)

// Fields yields the column-bearing fields of the struct type t using the
// default tag names. See (*TableCreator).Fields for the rules.
func Fields(t reflect.Type) iter.Seq[FieldDescriptor] {
	return fieldsOf(t, defaultTags)
}

// Fields yields the column-bearing fields of the struct type t in
// declaration order. Embedded structs are expanded in place, unexported
// fields are included, and blank or untagged fields are skipped. The
// sequence is lazy and may be ranged over any number of times.
func (tc *TableCreator) Fields(t reflect.Type) iter.Seq[FieldDescriptor] {
	return fieldsOf(t, tc.tags)
}

func fieldsOf(t reflect.Type, tags tagNames) iter.Seq[FieldDescriptor] {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return func(yield func(FieldDescriptor) bool) {
		if t == nil || t.Kind() != reflect.Struct {
			return
		}
		walkFields(t, tags, map[reflect.Type]bool{}, yield)
	}
}

func walkFields(t reflect.Type, tags tagNames, visiting map[reflect.Type]bool, yield func(FieldDescriptor) bool) bool {
	if visiting[t] {
		return true
	}
	visiting[t] = true
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Name == "_" {
			continue
		}

		colTag, tagged := field.Tag.Lookup(tags.column)
		if field.Anonymous && !tagged {
			et := field.Type
			if et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if !walkFields(et, tags, visiting, yield) {
					return false
				}
			}
			continue
		}

		if !tagged || colTag == "-" {
			continue
		}

		if !yield(describeField(field, colTag, tags)) {
			return false
		}
	}

	return true
}

func describeField(field reflect.StructField, colTag string, tags tagNames) FieldDescriptor {
	name, treatNullAsDefault, readonly := parseColumnTag(colTag)
	if name == "" {
		name = strcase.ToLowerCamel(field.Name)
	}

	kind, primitive := KindOf(field.Type)
	desc := FieldDescriptor{
		Name:      field.Name,
		Kind:      kind,
		Primitive: primitive,
		Column: ColumnMeta{
			Name:               name,
			TreatNullAsDefault: treatNullAsDefault,
			Readonly:           readonly,
		},
	}

	if pkTag, ok := field.Tag.Lookup(tags.primaryKey); ok && pkTag != "-" {
		autoIncrement, pkReadonly := parsePrimaryKeyTag(pkTag)
		desc.PrimaryKey = &PrimaryKeyMeta{AutoIncrement: autoIncrement, Readonly: pkReadonly}
	}

	if uqTag, ok := field.Tag.Lookup(tags.unique); ok && uqTag != "-" {
		desc.Unique = &UniqueMeta{Readonly: parseUniqueTag(uqTag)}
	}

	return desc
}
