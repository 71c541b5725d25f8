package gridquery

import "strings"

// Operator is a filter operator code.
type Operator string

// The closed operator set. "in" and "ni" are accepted as aliases of
// OpContains and OpNotContains.
const (
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpLess           Operator = "lt"
	OpLessOrEqual    Operator = "le"
	OpGreater        Operator = "gt"
	OpGreaterOrEqual Operator = "ge"
	OpBeginsWith     Operator = "bw"
	OpNotBeginsWith  Operator = "bn"
	OpEndsWith       Operator = "ew"
	OpNotEndsWith    Operator = "en"
	OpContains       Operator = "cn"
	OpNotContains    Operator = "nc"
	OpContainsFold   Operator = "cni"
	OpIsNull         Operator = "nu"
	OpIsNotNull      Operator = "nn"
)

var operatorMap = map[string]Operator{
	"eq":     OpEqual,
	"equal":  OpEqual,
	"equals": OpEqual,

	"ne":         OpNotEqual,
	"neq":        OpNotEqual,
	"not_equal":  OpNotEqual,
	"not_equals": OpNotEqual,

	"lt":        OpLess,
	"less_than": OpLess,

	"le":            OpLessOrEqual,
	"lte":           OpLessOrEqual,
	"less_or_equal": OpLessOrEqual,

	"gt":           OpGreater,
	"greater_than": OpGreater,

	"ge":               OpGreaterOrEqual,
	"gte":              OpGreaterOrEqual,
	"greater_or_equal": OpGreaterOrEqual,

	"bw":          OpBeginsWith,
	"starts_with": OpBeginsWith,

	"bn":              OpNotBeginsWith,
	"not_starts_with": OpNotBeginsWith,

	"ew":        OpEndsWith,
	"ends_with": OpEndsWith,

	"en":            OpNotEndsWith,
	"not_ends_with": OpNotEndsWith,

	"cn":       OpContains,
	"contains": OpContains,
	"in":       OpContains,

	"nc":           OpNotContains,
	"not_contains": OpNotContains,
	"ni":           OpNotContains,
	"not_in":       OpNotContains,

	"cni":       OpContainsFold,
	"icontains": OpContainsFold,

	"nu":      OpIsNull,
	"is_null": OpIsNull,

	"nn":          OpIsNotNull,
	"is_not_null": OpIsNotNull,
}

// ParseOperator maps an operator code or one of its long-form aliases to the
// canonical Operator. Matching ignores case, and '-' is read as '_'.
func ParseOperator(code string) (Operator, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "-", "_")
	op, ok := operatorMap[key]
	return op, ok
}

// IsValidOperator reports whether code names a known operator.
func IsValidOperator(code string) bool {
	_, ok := ParseOperator(code)
	return ok
}

func (op Operator) isOrdering() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return true
	}
	return false
}
