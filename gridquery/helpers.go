package gridquery

// FilterItems returns only items for which the predicate returns true.
func FilterItems[T any](items []T, pred Predicate[T]) []T {
	var result []T
	for _, item := range items {
		if pred(item) {
			result = append(result, item)
		}
	}
	return result
}

// CountItems returns the number of items for which the predicate returns true.
// More efficient than len(FilterItems(...)) when you only need the count.
func CountItems[T any](items []T, pred Predicate[T]) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// MatchAll returns a predicate that always returns true.
func MatchAll[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Count returns how many items the request's filter matches, ignoring sort
// and paging. Dropped rules are logged and returned as with Run.
func (s *Schema[T]) Count(items []T, req *Request) (int, []Diagnostic) {
	if req == nil || !req.SearchActive {
		return len(items), nil
	}
	pred, diags := s.Compose(req.Filter)
	s.logDiagnostics(diags)
	return CountItems(items, pred), diags
}

// Distinct returns the unique text values of the field at path, in first-seen
// order. Null values are skipped. Grids use it to fill filter drop-downs.
func (s *Schema[T]) Distinct(items []T, path string) ([]string, error) {
	f, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var result []string
	for _, item := range items {
		v, ok := f.Value(item)
		if !ok {
			continue
		}
		key := textOf(f.Kind, v)
		if !seen[key] {
			seen[key] = true
			result = append(result, key)
		}
	}
	return result, nil
}
