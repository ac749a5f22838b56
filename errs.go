package tablecreator

import (
	"errors"
	"fmt"
)

// Model definition errors. They always reach the caller wrapped in a
// *ConfigurationError.
var (
	ErrNullDefaultOnPrimitive = errors.New("cannot set treatNullAsDefault on primitive members")
	ErrNullDefaultOnReadonly  = errors.New("treatNullAsDefault makes no sense on a readonly column")
	ErrMultiplePrimaryKeys    = errors.New("multiple primary keys found in column model")
	ErrUnsupportedKind        = errors.New("unsupported scalar kind")
	ErrDuplicateColumn        = errors.New("duplicate column name")
	ErrInvalidIdentifier      = errors.New("invalid SQL identifier")
	ErrNotStruct              = errors.New("model is not a struct")
	ErrNoColumns              = errors.New("no columns defined")
)

// Engine and row errors, reported to the diagnostic logger only.
var (
	ErrEngine           = errors.New("sqlite engine error")
	ErrEmptyRow         = errors.New("row has no columns")
	ErrNoSourceRows     = errors.New("source table has no rows")
	ErrUnsupportedValue = errors.New("unsupported column value")
)

// ConfigurationError reports a contradiction in a model definition. It is the
// only error CreateTable ever returns; data-level failures degrade to false.
type ConfigurationError struct {
	Model string // Go type name of the model, when known
	Field string // offending field, empty for model-wide problems
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tablecreator: invalid model %s: field %s: %v", e.Model, e.Field, e.Err)
	}
	return fmt.Sprintf("tablecreator: invalid model %s: %v", e.Model, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(model, field string, err error) error {
	return &ConfigurationError{Model: model, Field: field, Err: err}
}
