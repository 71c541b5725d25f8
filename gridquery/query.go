package gridquery

import (
	"iter"
	"slices"
)

// Run filters, sorts and pages items for one request. It is the single entry
// point for listing code.
//
// Stages run in a fixed order: the filter applies only when the request marks
// search active and carries at least one rule; the sort follows PlanSort; the
// page window and counts are taken from the filtered and sorted sequence.
// Bad directives never fail the call: they are dropped, logged and returned
// as Diagnostics. items itself is never reordered.
func (s *Schema[T]) Run(items []T, req *Request, defaults Defaults) *Result[T] {
	if req == nil {
		req = &Request{}
	}
	sorted, plan, diags := s.sorted(items, req, defaults)

	page, info := Paginate(sorted, Paging{
		Page:            req.Page,
		PageSize:        req.PageSize,
		DefaultPageSize: defaults.PageSize,
		LegacySkipGuard: s.cfg.legacySkipGuard,
	})

	s.logDiagnostics(diags)
	return &Result[T]{
		Items:       page,
		PageInfo:    info,
		Sort:        plan,
		Diagnostics: diags,
	}
}

// RunInto is Run followed by handing the page metadata to sink, typically a
// transport model such as GridModel. A nil sink is ignored.
func (s *Schema[T]) RunInto(items []T, req *Request, defaults Defaults, sink PageSink) *Result[T] {
	res := s.Run(items, req, defaults)
	if sink != nil {
		sink.SetPaging(res.PageInfo)
	}
	return res
}

// RunSeq runs the pipeline over a lazily produced sequence. The sequence is
// drained once, so the count and the page window see the same records.
func (s *Schema[T]) RunSeq(seq iter.Seq[T], req *Request, defaults Defaults) *Result[T] {
	return s.Run(slices.Collect(seq), req, defaults)
}

// Query loads records through the schema's loader and runs the pipeline.
// Loader failures are the only errors returned.
func (s *Schema[T]) Query(req *Request, defaults Defaults) (*Result[T], error) {
	if s.loader == nil {
		return nil, &Error{
			Code:    ErrInternal,
			Message: "no loader configured: call SetLoader before Query",
		}
	}
	items, err := s.loader()
	if err != nil {
		return nil, err
	}
	return s.Run(items, req, defaults), nil
}

// Sorted applies the filter and sort stages without paging.
func (s *Schema[T]) Sorted(items []T, req *Request, defaults Defaults) ([]T, []Diagnostic) {
	if req == nil {
		req = &Request{}
	}
	out, _, diags := s.sorted(items, req, defaults)
	s.logDiagnostics(diags)
	return out, diags
}

func (s *Schema[T]) sorted(items []T, req *Request, defaults Defaults) ([]T, SortPlan, []Diagnostic) {
	var (
		work  []T
		diags []Diagnostic
	)
	if req.SearchActive && req.Filter != nil && len(req.Filter.Rules) > 0 {
		pred, fd := s.Compose(req.Filter)
		diags = append(diags, fd...)
		work = FilterItems(items, pred)
	} else {
		work = slices.Clone(items)
	}

	plan := s.PlanSort(req.SortField, req.SortDirection, defaults.SortField, defaults.SortDirection)
	if d := s.SortItems(work, plan); d != nil {
		diags = append(diags, *d)
		plan = SortPlan{}
	}
	return work, plan, diags
}
