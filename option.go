package tablecreator

import "log/slog"

type Option func(o *options)

type options struct {
	logger *slog.Logger
	tags   tagNames
}

type tagNames struct {
	column     string
	primaryKey string
	unique     string
}

var defaultTags = tagNames{
	column:     "column",
	primaryKey: "primarykey",
	unique:     "unique",
}

// WithLogger returns an Option that sets the diagnostic logger engine and
// precondition failures are reported to. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithColumnTag returns an Option that changes the struct tag read for
// column annotations. Defaults to "column".
func WithColumnTag(name string) Option {
	return func(o *options) {
		o.tags.column = name
	}
}

// WithPrimaryKeyTag returns an Option that changes the struct tag read for
// primary key annotations. Defaults to "primarykey".
func WithPrimaryKeyTag(name string) Option {
	return func(o *options) {
		o.tags.primaryKey = name
	}
}

// WithUniqueTag returns an Option that changes the struct tag read for
// unique annotations. Defaults to "unique".
func WithUniqueTag(name string) Option {
	return func(o *options) {
		o.tags.unique = name
	}
}
