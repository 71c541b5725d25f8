package gridquery

import (
	"bytes"
	"cmp"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// Kind is the declared value type of a registered field.
// Field values are carried boxed in their canonical Go type:
// string, int64, uint64, float64, bool, time.Time, decimal.Decimal, uuid.UUID.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindTime
	KindDecimal
	KindUUID
)

var kindNames = [...]string{
	KindString:  "string",
	KindInt:     "int",
	KindUint:    "uint",
	KindFloat:   "float",
	KindBool:    "bool",
	KindTime:    "time",
	KindDecimal: "decimal",
	KindUUID:    "uuid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var errEmptyLiteral = errors.New("empty literal")

// isNullLiteral reports whether text stands for the null value of a nullable field.
func isNullLiteral(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || strings.EqualFold(t, "null")
}

// parseLiteral converts literal text into the canonical value for kind.
func parseLiteral(kind Kind, text string, loc *time.Location) (any, error) {
	if kind == KindString {
		return text, nil
	}
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, errEmptyLiteral
	}
	switch kind {
	case KindInt:
		return strconv.ParseInt(t, 10, 64)
	case KindUint:
		return strconv.ParseUint(t, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(t, 64)
	case KindBool:
		return strconv.ParseBool(t)
	case KindTime:
		return parseTime(t, loc)
	case KindDecimal:
		return decimal.NewFromString(t)
	case KindUUID:
		return uuid.Parse(t)
	}
	return nil, errors.New("unknown kind " + kind.String())
}

// parseTime accepts RFC3339 first and then the looser layouts understood by
// jinzhu/now ("2024-03-15", "2024-03-15 10:30", ...), interpreted in loc.
func parseTime(text string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return ts, nil
	}
	cfg := &now.Config{TimeLocation: loc, TimeFormats: now.TimeFormats}
	return cfg.Parse(text)
}

// dayWindow returns [midnight of ts, midnight of the following day) in ts's location.
func dayWindow(ts time.Time) (time.Time, time.Time) {
	start := now.With(ts).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}

// compareValues orders two present values of the same kind.
func compareValues(kind Kind, a, b any) int {
	switch kind {
	case KindString:
		return cmp.Compare(a.(string), b.(string))
	case KindInt:
		return cmp.Compare(a.(int64), b.(int64))
	case KindUint:
		return cmp.Compare(a.(uint64), b.(uint64))
	case KindFloat:
		return cmp.Compare(a.(float64), b.(float64))
	case KindBool:
		return compareBool(a.(bool), b.(bool))
	case KindTime:
		return a.(time.Time).Compare(b.(time.Time))
	case KindDecimal:
		return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
	case KindUUID:
		ua, ub := a.(uuid.UUID), b.(uuid.UUID)
		return bytes.Compare(ua[:], ub[:])
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareNullable orders possibly-absent values; null sorts before any value.
func compareNullable(kind Kind, a any, aok bool, b any, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return compareValues(kind, a, b)
}

// textOf renders a present value as text for the string operators.
func textOf(kind Kind, v any) string {
	switch kind {
	case KindString:
		return v.(string)
	case KindInt:
		return strconv.FormatInt(v.(int64), 10)
	case KindUint:
		return strconv.FormatUint(v.(uint64), 10)
	case KindFloat:
		return strconv.FormatFloat(v.(float64), 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.(bool))
	case KindTime:
		return v.(time.Time).Format(time.RFC3339)
	case KindDecimal:
		return v.(decimal.Decimal).String()
	case KindUUID:
		return v.(uuid.UUID).String()
	}
	return ""
}
