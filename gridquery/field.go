package gridquery

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Field is a resolved, typed read accessor for one field path of T.
// Its Kind drives literal conversion and comparison.
type Field[T any] struct {
	Path     string
	Kind     Kind
	Nullable bool
	get      func(T) (any, bool)
}

// Value returns the field value of item in its canonical Go type.
// The second result is false when the value is null.
func (f *Field[T]) Value(item T) (any, bool) {
	return f.get(item)
}

// Compare orders two items by this field; null sorts first.
func (f *Field[T]) Compare(a, b T) int {
	av, aok := f.get(a)
	bv, bok := f.get(b)
	return compareNullable(f.Kind, av, aok, bv, bok)
}

// Text returns the field value of item rendered as text, or "" when null.
func (f *Field[T]) Text(item T) string {
	v, ok := f.get(item)
	if !ok {
		return ""
	}
	return textOf(f.Kind, v)
}

// register stores a field accessor on the schema, keeping first-registration order.
// Field names are single path segments; dots are reserved for nesting.
func register[T any](s *Schema[T], name string, kind Kind, nullable bool, get func(T) (any, bool)) {
	if name == "" || strings.Contains(name, ".") {
		panic(&Error{
			Code:    ErrValidation,
			Message: "field name must be a non-empty single path segment: " + name,
			Details: map[string]any{"field": name},
		})
	}
	if _, exists := s.fields[name]; !exists {
		s.fieldOrder = append(s.fieldOrder, name)
	}
	s.fields[name] = &Field[T]{Path: name, Kind: kind, Nullable: nullable, get: get}
}

func present[T, V any](get func(T) V, conv func(V) any) func(T) (any, bool) {
	return func(item T) (any, bool) {
		return conv(get(item)), true
	}
}

func nullable[T, V any](get func(T) *V, conv func(V) any) func(T) (any, bool) {
	return func(item T) (any, bool) {
		p := get(item)
		if p == nil {
			return nil, false
		}
		return conv(*p), true
	}
}

func asAny[V any](v V) any { return v }

// StringField registers a string field.
//
// Usage:
//
//	gridquery.StringField(schema, "name", func(o Order) string { return o.Name })
func StringField[T any](s *Schema[T], name string, get func(T) string) {
	register(s, name, KindString, false, present(get, asAny[string]))
}

// NullableStringField registers a string field whose nil pointer is null.
func NullableStringField[T any](s *Schema[T], name string, get func(T) *string) {
	register(s, name, KindString, true, nullable(get, asAny[string]))
}

// IntField registers a field of any signed integer type.
func IntField[T any, V constraints.Signed](s *Schema[T], name string, get func(T) V) {
	register(s, name, KindInt, false, present(get, func(v V) any { return int64(v) }))
}

// NullableIntField registers a nullable signed integer field.
func NullableIntField[T any, V constraints.Signed](s *Schema[T], name string, get func(T) *V) {
	register(s, name, KindInt, true, nullable(get, func(v V) any { return int64(v) }))
}

// UintField registers a field of any unsigned integer type.
func UintField[T any, V constraints.Unsigned](s *Schema[T], name string, get func(T) V) {
	register(s, name, KindUint, false, present(get, func(v V) any { return uint64(v) }))
}

// NullableUintField registers a nullable unsigned integer field.
func NullableUintField[T any, V constraints.Unsigned](s *Schema[T], name string, get func(T) *V) {
	register(s, name, KindUint, true, nullable(get, func(v V) any { return uint64(v) }))
}

// FloatField registers a float32 or float64 field.
func FloatField[T any, V constraints.Float](s *Schema[T], name string, get func(T) V) {
	register(s, name, KindFloat, false, present(get, func(v V) any { return float64(v) }))
}

// NullableFloatField registers a nullable float field.
func NullableFloatField[T any, V constraints.Float](s *Schema[T], name string, get func(T) *V) {
	register(s, name, KindFloat, true, nullable(get, func(v V) any { return float64(v) }))
}

// BoolField registers a bool field. false orders before true.
func BoolField[T any](s *Schema[T], name string, get func(T) bool) {
	register(s, name, KindBool, false, present(get, asAny[bool]))
}

// NullableBoolField registers a nullable bool field.
func NullableBoolField[T any](s *Schema[T], name string, get func(T) *bool) {
	register(s, name, KindBool, true, nullable(get, asAny[bool]))
}

// TimeField registers a date-with-time field. The "cn" operator on a time
// field matches the calendar day of the literal instead of a substring.
func TimeField[T any](s *Schema[T], name string, get func(T) time.Time) {
	register(s, name, KindTime, false, present(get, asAny[time.Time]))
}

// NullableTimeField registers a nullable date-with-time field.
func NullableTimeField[T any](s *Schema[T], name string, get func(T) *time.Time) {
	register(s, name, KindTime, true, nullable(get, asAny[time.Time]))
}

// DecimalField registers a fixed-point decimal field.
func DecimalField[T any](s *Schema[T], name string, get func(T) decimal.Decimal) {
	register(s, name, KindDecimal, false, present(get, asAny[decimal.Decimal]))
}

// NullableDecimalField registers a nullable decimal field.
func NullableDecimalField[T any](s *Schema[T], name string, get func(T) *decimal.Decimal) {
	register(s, name, KindDecimal, true, nullable(get, asAny[decimal.Decimal]))
}

// UUIDField registers a UUID field. UUIDs order by their byte representation.
func UUIDField[T any](s *Schema[T], name string, get func(T) uuid.UUID) {
	register(s, name, KindUUID, false, present(get, asAny[uuid.UUID]))
}

// NullableUUIDField registers a nullable UUID field.
func NullableUUIDField[T any](s *Schema[T], name string, get func(T) *uuid.UUID) {
	register(s, name, KindUUID, true, nullable(get, asAny[uuid.UUID]))
}

// Nested mounts child under the path segment name, so "name.<child path>"
// resolves through get. get returns false for an absent intermediate value,
// in which case every field below it reads as null.
//
// This is a package-level function (not a Schema method) because Go methods
// cannot introduce additional type parameters beyond the receiver's.
//
// Usage:
//
//	gridquery.Nested(orders, "customer", customers, func(o *Order) (*Customer, bool) {
//		return o.Customer, o.Customer != nil
//	})
func Nested[T, C any](s *Schema[T], name string, child *Schema[C], get func(T) (C, bool)) {
	if name == "" || strings.Contains(name, ".") {
		panic(&Error{
			Code:    ErrValidation,
			Message: "nested name must be a non-empty single path segment: " + name,
			Details: map[string]any{"nested": name},
		})
	}
	if _, exists := s.nested[name]; !exists {
		s.nestedOrder = append(s.nestedOrder, name)
	}
	s.nested[name] = &nestedSchema[T, C]{name: name, child: child, get: get}
}

// nestedResolver resolves the remainder of a dotted path inside a child schema
// and lifts the resulting accessor back to the parent record type.
type nestedResolver[T any] interface {
	resolve(full, rest string) (*Field[T], error)
	paths(seen map[any]bool) []string
}

type nestedSchema[T, C any] struct {
	name  string
	child *Schema[C]
	get   func(T) (C, bool)
}

func (n *nestedSchema[T, C]) resolve(full, rest string) (*Field[T], error) {
	inner, err := n.child.resolve(full, rest)
	if err != nil {
		return nil, err
	}
	get := n.get
	return &Field[T]{
		Path:     n.name + "." + inner.Path,
		Kind:     inner.Kind,
		Nullable: true,
		get: func(item T) (any, bool) {
			c, ok := get(item)
			if !ok {
				return nil, false
			}
			return inner.get(c)
		},
	}, nil
}

func (n *nestedSchema[T, C]) paths(seen map[any]bool) []string {
	if seen[n.child] {
		return nil
	}
	seen[n.child] = true
	defer delete(seen, n.child)

	var out []string
	for _, p := range n.child.paths(seen) {
		out = append(out, n.name+"."+p)
	}
	return out
}
