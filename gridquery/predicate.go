package gridquery

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// BuildPredicate turns one rule on a resolved field into a predicate.
//
// The literal is converted to the field's kind before comparison, so numbers,
// dates and booleans compare by value rather than as text. Rules that cannot
// be built return an *Error (ErrUnsupportedOperator or ErrInvalidValue); the
// caller decides whether that drops the rule or fails.
//
// Behaviour per operator:
//   - eq, ne, lt, le, gt, ge: typed comparison. A null literal ("" or "null")
//     against a nullable field is the null value: eq matches nulls, ne matches
//     non-nulls, ordering operators match nothing.
//   - bw, bn, ew, en, cn, nc: case-sensitive prefix/suffix/substring tests on
//     the value's text form. On time fields cn and nc test the calendar day
//     of the literal instead; the prefix/suffix operators are unsupported.
//   - cni: case-insensitive substring test on the text form of any kind.
//   - nu, nn: null tests; the literal is ignored.
//
// Null record values never satisfy a positive string test, so they always
// satisfy its negation.
func BuildPredicate[T any](f *Field[T], op Operator, literal string, loc *time.Location) (Predicate[T], error) {
	switch {
	case op == OpIsNull:
		return func(item T) bool {
			_, ok := f.get(item)
			return !ok
		}, nil
	case op == OpIsNotNull:
		return func(item T) bool {
			_, ok := f.get(item)
			return ok
		}, nil
	case op.isOrdering():
		return comparePredicate(f, op, literal, loc)
	case f.Kind == KindTime && (op == OpContains || op == OpNotContains):
		return dayPredicate(f, op, literal, loc)
	case f.Kind == KindTime && op != OpContainsFold:
		return nil, unsupportedOperator(f.Path, string(op), f.Kind)
	}
	return textPredicate(f, op, literal)
}

func comparePredicate[T any](f *Field[T], op Operator, literal string, loc *time.Location) (Predicate[T], error) {
	if f.Nullable && isNullLiteral(literal) {
		switch op {
		case OpEqual:
			return func(item T) bool {
				_, ok := f.get(item)
				return !ok
			}, nil
		case OpNotEqual:
			return func(item T) bool {
				_, ok := f.get(item)
				return ok
			}, nil
		default:
			return func(T) bool { return false }, nil
		}
	}

	want, err := parseLiteral(f.Kind, literal, loc)
	if err != nil {
		return nil, invalidValue(f.Path, f.Kind, literal, err)
	}

	var test func(c int) bool
	switch op {
	case OpEqual:
		test = func(c int) bool { return c == 0 }
	case OpNotEqual:
		return func(item T) bool {
			v, ok := f.get(item)
			return !ok || compareValues(f.Kind, v, want) != 0
		}, nil
	case OpLess:
		test = func(c int) bool { return c < 0 }
	case OpLessOrEqual:
		test = func(c int) bool { return c <= 0 }
	case OpGreater:
		test = func(c int) bool { return c > 0 }
	case OpGreaterOrEqual:
		test = func(c int) bool { return c >= 0 }
	}
	return func(item T) bool {
		v, ok := f.get(item)
		return ok && test(compareValues(f.Kind, v, want))
	}, nil
}

// dayPredicate matches values in [midnight of the literal's day, next midnight).
func dayPredicate[T any](f *Field[T], op Operator, literal string, loc *time.Location) (Predicate[T], error) {
	if isNullLiteral(literal) {
		return nil, invalidValue(f.Path, f.Kind, literal, errEmptyLiteral)
	}
	day, err := parseTime(strings.TrimSpace(literal), loc)
	if err != nil {
		return nil, invalidValue(f.Path, f.Kind, literal, err)
	}
	start, end := dayWindow(day)
	within := func(item T) bool {
		v, ok := f.get(item)
		if !ok {
			return false
		}
		ts := v.(time.Time)
		return !ts.Before(start) && ts.Before(end)
	}
	if op == OpNotContains {
		return func(item T) bool { return !within(item) }, nil
	}
	return within, nil
}

func textPredicate[T any](f *Field[T], op Operator, literal string) (Predicate[T], error) {
	var match func(text string) bool
	negate := false
	switch op {
	case OpBeginsWith, OpNotBeginsWith:
		match = func(text string) bool { return strings.HasPrefix(text, literal) }
		negate = op == OpNotBeginsWith
	case OpEndsWith, OpNotEndsWith:
		match = func(text string) bool { return strings.HasSuffix(text, literal) }
		negate = op == OpNotEndsWith
	case OpContains, OpNotContains:
		match = func(text string) bool { return strings.Contains(text, literal) }
		negate = op == OpNotContains
	case OpContainsFold:
		folded := foldString(literal)
		match = func(text string) bool {
			return strings.Contains(foldString(text), folded)
		}
	default:
		return nil, unsupportedOperator(f.Path, string(op), f.Kind)
	}
	return func(item T) bool {
		v, ok := f.get(item)
		hit := ok && match(textOf(f.Kind, v))
		return hit != negate
	}, nil
}

// folders recycles case folders; a cases.Caser is not safe for concurrent use.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

func foldString(s string) string {
	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(s)
}
