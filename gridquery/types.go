package gridquery

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// FilterRule is a single field/operator/literal triple used to test one record.
// Data is always text; it is converted to the field's kind when the rule is built.
type FilterRule struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"op" yaml:"op"`
	Data     string `json:"data" yaml:"data"`
}

// FilterGroup is a flat set of rules joined by one combinator.
// The first three letters of Combinator (case-insensitive) decide the join:
// "and" or "all" means conjunction, anything else disjunction.
type FilterGroup struct {
	Combinator string       `json:"groupOp" yaml:"groupOp"`
	Rules      []FilterRule `json:"rules" yaml:"rules"`
}

// Request carries the filter, sort and paging directives of one listing call.
type Request struct {
	SearchActive  bool         `json:"_search" yaml:"_search"`
	Filter        *FilterGroup `json:"filters,omitempty" yaml:"filters,omitempty"`
	SortField     string       `json:"sidx" yaml:"sidx"`
	SortDirection string       `json:"sord" yaml:"sord"`
	Page          int          `json:"page" yaml:"page"`
	PageSize      int          `json:"rows" yaml:"rows"`

	// TimezoneOffsetMinutes is only read by BuildGrid when rendering time cells.
	TimezoneOffsetMinutes int `json:"tzom,omitempty" yaml:"tzom,omitempty"`
}

// Defaults holds the caller-supplied fallbacks for one pipeline call.
type Defaults struct {
	SortField     string
	SortDirection string
	PageSize      int
}

// PageInfo is the paging metadata of one pipeline call.
type PageInfo struct {
	Page         int `json:"page"`
	TotalRecords int `json:"records"`
	TotalPages   int `json:"total"`
}

// PageSink receives paging metadata, typically a transport model such as GridModel.
type PageSink interface {
	SetPaging(info PageInfo)
}

// Result is the output of the pipeline: one page of items plus metadata.
type Result[T any] struct {
	Items       []T
	PageInfo    PageInfo
	Sort        SortPlan
	Diagnostics []Diagnostic
}

// Predicate tests a single record.
type Predicate[T any] func(item T) bool
