package gridquery

import (
	"slices"
	"strings"
)

// SortComparator compares two records, returning <0, 0 or >0.
type SortComparator[T any] func(a, b T) int

// SortPlan is the effective single-key sort of one pipeline call.
// An empty Field means no sorting.
type SortPlan struct {
	Field     string `json:"field,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// IsNullSentinel reports whether a sort field holds one of the textual
// stand-ins for "no field": null, "null" or 'null'.
func IsNullSentinel(field string) bool {
	switch field {
	case "null", `"null"`, "'null'":
		return true
	}
	return false
}

// TranslateSortField rewrites a foreign-key column to the referenced entity's
// display column: "idCustomer" becomes "Customer.name" for column "name".
// Fields that do not start with "id" or are exactly "id" are returned unchanged.
func TranslateSortField(field, column string) string {
	if len(field) > 2 && strings.HasPrefix(field, "id") {
		return field[2:] + "." + column
	}
	return field
}

// NormalizeDirection maps any direction other than "desc" (case-insensitive) to Asc.
func NormalizeDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), Desc) {
		return Desc
	}
	return Asc
}

// PlanSort picks the effective sort field and direction.
//
// A requested field that is non-blank and not a null sentinel overrides the
// default field, after the foreign-key translation when enabled; the
// requested direction then overrides the default direction if non-blank.
// When no field results, the plan is empty.
func (s *Schema[T]) PlanSort(requestedField, requestedDir, defaultField, defaultDir string) SortPlan {
	field, dir := defaultField, defaultDir

	if strings.TrimSpace(requestedField) != "" && !IsNullSentinel(requestedField) {
		field = requestedField
		if s.cfg.translateSort {
			field = TranslateSortField(requestedField, s.cfg.translateColumn)
		}
		if strings.TrimSpace(requestedDir) != "" {
			dir = requestedDir
		}
	}
	if strings.TrimSpace(dir) == "" {
		dir = requestedDir
	}

	if strings.TrimSpace(field) == "" {
		return SortPlan{}
	}
	return SortPlan{Field: field, Direction: NormalizeDirection(dir)}
}

// BuildSortFunc resolves the plan's field into a comparator.
// Returns nil, nil for an empty plan.
func (s *Schema[T]) BuildSortFunc(plan SortPlan) (SortComparator[T], error) {
	if plan.Field == "" {
		return nil, nil
	}
	f, err := s.Resolve(plan.Field)
	if err != nil {
		return nil, err
	}
	if plan.Direction == Desc {
		return func(a, b T) int { return f.Compare(b, a) }, nil
	}
	return f.Compare, nil
}

// SortItems stable-sorts items in place by the plan. When the plan's field
// does not resolve, items keep their order and a Diagnostic is returned.
func (s *Schema[T]) SortItems(items []T, plan SortPlan) *Diagnostic {
	cmpFunc, err := s.BuildSortFunc(plan)
	if err != nil {
		d := ruleDiagnostic(FilterRule{Field: plan.Field}, err)
		d.Stage = StageSort
		return &d
	}
	if cmpFunc == nil {
		return nil // no sorting requested
	}
	slices.SortStableFunc(items, cmpFunc)
	return nil
}
