package dashboard

import (
	"github.com/canaryct/canarywatch/internal/canary"
)

// Pagination is the navigation state written to the view.
type Pagination struct {
	Page        int // zero-based
	Pages       int // at least 1
	Total       int
	PrevEnabled bool
	NextEnabled bool
}

// PageView is one page of the filtered matches.
type PageView struct {
	Matches []canary.Match
	Pagination
}

// Paginate slices filtered into the page-th page of size rows.
func Paginate(filtered []canary.Match, page, size int) PageView {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	total := len(filtered)
	start := page * size
	end := start + size
	var rows []canary.Match
	if start < total {
		rows = filtered[start:min(end, total)]
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return PageView{
		Matches: rows,
		Pagination: Pagination{
			Page:        page,
			Pages:       pages,
			Total:       total,
			PrevEnabled: page > 0,
			NextEnabled: end < total,
		},
	}
}
