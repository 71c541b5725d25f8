// Package gridquery filters, sorts and pages an in-memory collection of any
// record type from a grid-style request: a flat group of field/operator/literal
// rules, a sort column and direction, and a page number and size.
package gridquery

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Schema is the field-path registry for one record type T.
// All fields and nested schemas are registered before the first query;
// after that a Schema is read-only and safe for concurrent use.
type Schema[T any] struct {
	fields      map[string]*Field[T]         // registered terminal fields
	fieldOrder  []string                     // field names in registration order
	nested      map[string]nestedResolver[T] // mounted child schemas
	nestedOrder []string
	loader      func() ([]T, error) // lazy data loader
	cfg         schemaConfig
}

// schemaConfig holds configuration set via functional options.
type schemaConfig struct {
	logger          zerolog.Logger
	location        *time.Location
	translateSort   bool
	translateColumn string
	legacySkipGuard bool
}

// Option configures a Schema during construction.
type Option func(*schemaConfig)

// WithLogger sets the logger that receives skipped-directive diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *schemaConfig) {
		c.logger = logger
	}
}

// WithLocation sets the location used to interpret date literals that carry
// no zone of their own. Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *schemaConfig) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithSortTranslation configures the foreign-key sort rewrite: when enabled,
// a requested sort on "id<Entity>" sorts by "<Entity>.<column>" instead.
// Default: enabled, column "name".
func WithSortTranslation(enabled bool, column string) Option {
	return func(c *schemaConfig) {
		c.translateSort = enabled
		if column != "" {
			c.translateColumn = column
		}
	}
}

// WithLegacySkipGuard makes the pager skip rows only when the requested page
// size is greater than one, matching grids that persisted state under that rule.
// Without it, any page size of at least one pages normally.
func WithLegacySkipGuard() Option {
	return func(c *schemaConfig) {
		c.legacySkipGuard = true
	}
}

// NewSchema creates a new empty Schema for the given record type.
func NewSchema[T any](opts ...Option) *Schema[T] {
	cfg := schemaConfig{
		logger:          zerolog.Nop(),
		location:        time.UTC,
		translateSort:   true,
		translateColumn: "name",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Schema[T]{
		fields: make(map[string]*Field[T]),
		nested: make(map[string]nestedResolver[T]),
		cfg:    cfg,
	}
}

// SetLoader sets the function used to load records for Query.
// The loader is called once per Query.
func (s *Schema[T]) SetLoader(fn func() ([]T, error)) {
	s.loader = fn
}

// Resolve turns a dotted field path into a typed accessor, one segment at a
// time. Each segment matches exactly first and case-insensitively second.
// An unknown segment yields an *Error with code ErrFieldNotFound.
func (s *Schema[T]) Resolve(path string) (*Field[T], error) {
	return s.resolve(path, path)
}

func (s *Schema[T]) resolve(full, rest string) (*Field[T], error) {
	head, tail, dotted := strings.Cut(rest, ".")
	if head == "" {
		return nil, fieldNotFound(full, head)
	}
	if !dotted {
		if f, ok := lookup(s.fields, s.fieldOrder, head); ok {
			return f, nil
		}
		return nil, fieldNotFound(full, head)
	}
	n, ok := lookup(s.nested, s.nestedOrder, head)
	if !ok {
		return nil, fieldNotFound(full, head)
	}
	return n.resolve(full, tail)
}

// lookup finds name in m, exact match first, then the first case-insensitive
// match in registration order.
func lookup[V any](m map[string]V, order []string, name string) (V, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for _, k := range order {
		if strings.EqualFold(k, name) {
			return m[k], true
		}
	}
	var zero V
	return zero, false
}

// Fields returns every resolvable path, direct fields first in registration
// order, then nested paths in mount order. Cyclic mounts are listed once.
func (s *Schema[T]) Fields() []string {
	return s.paths(map[any]bool{s: true})
}

func (s *Schema[T]) paths(seen map[any]bool) []string {
	out := make([]string, 0, len(s.fieldOrder))
	out = append(out, s.fieldOrder...)
	for _, name := range s.nestedOrder {
		out = append(out, s.nested[name].paths(seen)...)
	}
	return out
}

// logDiagnostics writes each skipped directive to the schema logger.
func (s *Schema[T]) logDiagnostics(diags []Diagnostic) {
	for _, d := range diags {
		ev := s.cfg.logger.Warn().
			Str("stage", d.Stage).
			Str("field", d.Field).
			Str("code", d.Err.Code)
		if d.Operator != "" {
			ev = ev.Str("operator", d.Operator)
		}
		ev.Msg(d.Err.Message)
	}
}
