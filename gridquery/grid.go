package gridquery

import (
	"time"
)

// GridRow is one rendered record: its id and one cell per selected column.
type GridRow struct {
	ID   any   `json:"id"`
	Cell []any `json:"cell"`
}

// GridModel is the row/cell response shape consumed by jqGrid-style tables.
type GridModel struct {
	Page    int       `json:"page"`
	Records int       `json:"records"`
	Total   int       `json:"total"`
	Columns []string  `json:"columns,omitempty"`
	Rows    []GridRow `json:"rows"`
}

var _ PageSink = (*GridModel)(nil)

// SetPaging implements PageSink.
func (g *GridModel) SetPaging(info PageInfo) {
	g.Page = info.Page
	g.Records = info.TotalRecords
	g.Total = info.TotalPages
}

// AddRow appends a row and returns it.
func (g *GridModel) AddRow(id any, cells []any) *GridRow {
	g.Rows = append(g.Rows, GridRow{ID: id, Cell: cells})
	return &g.Rows[len(g.Rows)-1]
}

// ColumnSelector controls which fields become grid cells, and in what order.
type ColumnSelector[T any] struct {
	columns []string
	fields  []*Field[T]
}

// Columns returns the selected paths in cell order.
func (cs *ColumnSelector[T]) Columns() []string {
	out := make([]string, len(cs.columns))
	copy(out, cs.columns)
	return out
}

// Apply extracts the selected cells from a record. Null values become nil;
// time values are moved into the zone offsetMinutes east of UTC.
func (cs *ColumnSelector[T]) Apply(item T, offsetMinutes int) []any {
	zone := time.FixedZone("", offsetMinutes*60)
	cells := make([]any, len(cs.fields))
	for i, f := range cs.fields {
		v, ok := f.Value(item)
		if !ok {
			continue
		}
		if ts, isTime := v.(time.Time); isTime {
			v = ts.In(zone)
		}
		cells[i] = v
	}
	return cells
}

// NewColumnSelector resolves the requested column paths. With no columns
// every registered path is selected. Duplicates are dropped, keeping the
// first occurrence; an unknown path is an error.
func (s *Schema[T]) NewColumnSelector(columns ...string) (*ColumnSelector[T], error) {
	if len(columns) == 0 {
		columns = s.Fields()
	}
	seen := make(map[string]bool, len(columns))
	cs := &ColumnSelector[T]{}
	for _, name := range columns {
		f, err := s.Resolve(name)
		if err != nil {
			return nil, err
		}
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		cs.columns = append(cs.columns, f.Path)
		cs.fields = append(cs.fields, f)
	}
	return cs, nil
}

// BuildGrid renders a pipeline result as a GridModel. id extracts each row's
// identifier; cells follow the selector and the request's timezone offset.
//
// Usage:
//
//	res := schema.Run(orders, req, gridquery.Defaults{SortField: "placed", PageSize: 20})
//	sel, _ := schema.NewColumnSelector("number", "customer.name", "placed")
//	grid := gridquery.BuildGrid(res, req, sel, func(o *Order) any { return o.ID })
func BuildGrid[T any](res *Result[T], req *Request, sel *ColumnSelector[T], id func(T) any) *GridModel {
	offset := 0
	if req != nil {
		offset = req.TimezoneOffsetMinutes
	}
	g := &GridModel{Columns: sel.Columns(), Rows: make([]GridRow, 0, len(res.Items))}
	g.SetPaging(res.PageInfo)
	for _, item := range res.Items {
		g.AddRow(id(item), sel.Apply(item, offset))
	}
	return g
}
