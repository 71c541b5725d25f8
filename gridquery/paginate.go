package gridquery

import "math"

// Paging holds the page directives for one call.
type Paging struct {
	Page            int // 1-based; values < 1 mean page 1
	PageSize        int // requested size; <= 0 defers to DefaultPageSize
	DefaultPageSize int
	LegacySkipGuard bool // skip only when the requested size is > 1
}

// EffectivePageSize is the requested size when positive, else the default.
func (p Paging) EffectivePageSize() int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return p.DefaultPageSize
}

// Window computes skip and take for a sequence. take = 0 means no limit.
//
// Rows are skipped only when a real page past the first is requested: page > 1
// with an effective size of at least one. Under LegacySkipGuard the requested
// size itself must exceed one, so such grids stay on the first page.
func (p Paging) Window() (skip, take int) {
	size := p.EffectivePageSize()
	if p.Page > 1 {
		switch {
		case p.LegacySkipGuard && p.PageSize > 1:
			skip = pageOffset(p.PageSize, p.Page)
		case !p.LegacySkipGuard && size >= 1:
			skip = pageOffset(size, p.Page)
		}
	}
	if size > 0 {
		take = size
	}
	return skip, take
}

// pageOffset is size * (page - 1), saturating at math.MaxInt for page
// numbers too large to multiply.
func pageOffset(size, page int) int {
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return size * (page - 1)
}

// Info computes page metadata for totalRecords matching items.
//
// TotalPages is the ceiling of totalRecords / page size with a minimum of one,
// so an empty result still reports a single empty page. Without any page size
// everything is on one page.
func (p Paging) Info(totalRecords int) PageInfo {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.EffectivePageSize()
	pages := 1
	if size > 0 {
		pages = totalRecords / size
		if totalRecords%size > 0 {
			pages++
		}
		if pages < 1 {
			pages = 1
		}
	}
	return PageInfo{Page: page, TotalRecords: totalRecords, TotalPages: pages}
}

// Paginate counts items, then returns the page window and its metadata.
// items must already be filtered and sorted; the count is taken before
// windowing so TotalRecords reflects the whole filtered sequence.
//
// Usage:
//
//	page, info := gridquery.Paginate(items, gridquery.Paging{Page: 2, PageSize: 10})
func Paginate[T any](items []T, p Paging) ([]T, PageInfo) {
	info := p.Info(len(items))
	skip, take := p.Window()
	return applySkipTake(items, skip, take), info
}

// applySkipTake performs the actual slicing. take=0 means no limit; a
// negative skip yields an empty window.
func applySkipTake[T any](items []T, skip, take int) []T {
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	return items
}
