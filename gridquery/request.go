package gridquery

import "strings"

// NewRequest creates a request with an initial sort column, sort direction
// and page size. Blank values are left unset.
func NewRequest(sortField, sortDirection string, pageSize int) *Request {
	r := &Request{PageSize: pageSize}
	if strings.TrimSpace(sortField) != "" {
		r.SortField = sortField
	}
	if strings.TrimSpace(sortDirection) != "" {
		r.SortDirection = sortDirection
	}
	return r
}

// Group returns the request's filter group, creating an empty one on first use.
func (r *Request) Group() *FilterGroup {
	if r.Filter == nil {
		r.Filter = &FilterGroup{}
	}
	return r.Filter
}

// Normalize clears a sort field that holds a null sentinel.
// Reports whether anything changed.
func (r *Request) Normalize() bool {
	if IsNullSentinel(r.SortField) {
		r.SortField = ""
		return true
	}
	return false
}

// FindAndRemoveRule removes the first rule on field from the filter group
// and returns it. Callers use it to handle a rule themselves (a date range,
// a tenant scope) before handing the rest of the request to Run.
func (r *Request) FindAndRemoveRule(field string) (FilterRule, bool) {
	if r.Filter == nil || field == "" {
		return FilterRule{}, false
	}
	for i, rule := range r.Filter.Rules {
		if rule.Field == field {
			r.Filter.Rules = append(r.Filter.Rules[:i:i], r.Filter.Rules[i+1:]...)
			return rule, true
		}
	}
	return FilterRule{}, false
}

// TakeRuleData is FindAndRemoveRule returning only the rule's literal.
func (r *Request) TakeRuleData(field string) (string, bool) {
	rule, ok := r.FindAndRemoveRule(field)
	return rule.Data, ok
}
