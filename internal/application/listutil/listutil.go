// Package listutil parses the paging, sorting and filtering query parameters
// shared by the member roster and attendance history pages.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
)

// DefaultPerPage is the rows-per-page value used when none is requested.
const DefaultPerPage = 25

// PerPageOptions are the rows-per-page values the list pages offer.
var PerPageOptions = []int{10, 25, 50, 100}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// SortParams carries sorting parameters parsed from a request.
type SortParams struct {
	Sort string // column name, empty for the page's default order
	Dir  string // "asc" or "desc"
}

// FilterParams carries search and exact-match filter parameters
// (e.g. status=Active, membership_type=Premium).
type FilterParams struct {
	Search  string
	Filters map[string]string
}

// ListParams combines all list view parameters.
type ListParams struct {
	PageParams
	SortParams
	FilterParams
}

// ParsePageParams extracts page and per_page from URL query values.
// Out-of-range values fall back to page 1 and DefaultPerPage.
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// ParseSortParams extracts sort and dir from URL query values. A sort column
// outside allowedColumns is dropped; Dir is always "asc" or "desc".
func ParseSortParams(q url.Values, allowedColumns []string) SortParams {
	sort := q.Get("sort")
	if !slices.Contains(allowedColumns, sort) {
		sort = ""
	}
	dir := q.Get("dir")
	if dir != "asc" && dir != "desc" {
		dir = "asc"
	}
	return SortParams{Sort: sort, Dir: dir}
}

// ParseFilterParams extracts the free-text search (q) and the named filters
// listed in filterKeys; unrecognised parameters are ignored.
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, allowedSortCols []string, filterKeys []string) ListParams {
	return ListParams{
		PageParams:   ParsePageParams(q),
		SortParams:   ParseSortParams(q, allowedSortCols),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page, clamped to [1, TotalPages]
	PerPage    int
	Total      int // total matching rows
	TotalPages int // at least 1, even when Total is 0
}

// NewPageInfo computes pagination metadata for a list of total rows.
// POST: Page is clamped so Offset never runs past the data
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

