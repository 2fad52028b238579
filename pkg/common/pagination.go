package common

// Pagination defaults. A limit above MaxLimit is treated like an invalid
// value and falls back to DefaultLimit, matching the query schema the API
// has always exposed.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationPlan describes how a listing query slices its result set.
// When neither page nor limit was supplied the plan is unpaginated: the
// full matching result set is returned and no metadata is attached.
type PaginationPlan struct {
	Paginated bool
	Page      int
	Limit     int
	Skip      int
}

// PageInfo is the pagination metadata attached to paginated responses
type PageInfo struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// BuildPaginationPlan computes the skip/limit plan from optional page and
// limit parameters. If either is supplied, both are coerced to valid
// positive values; invalid or non-positive values fall back to the
// defaults.
func BuildPaginationPlan(page, limit *int) PaginationPlan {
	if page == nil && limit == nil {
		return PaginationPlan{}
	}

	p := DefaultPage
	if page != nil && *page > 0 {
		p = *page
	}

	l := DefaultLimit
	if limit != nil && *limit > 0 && *limit <= MaxLimit {
		l = *limit
	}

	return PaginationPlan{
		Paginated: true,
		Page:      p,
		Limit:     l,
		Skip:      (p - 1) * l,
	}
}

// Meta builds the response metadata for this plan. The total comes from a
// separate count over the same filter, independent of skip/limit.
func (p PaginationPlan) Meta(total int) *PageInfo {
	if !p.Paginated {
		return nil
	}
	return &PageInfo{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: TotalPages(total, p.Limit),
	}
}

// TotalPages calculates ceil(total/limit)
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}
