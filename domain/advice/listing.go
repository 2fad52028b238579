package advice

import "sort"

// SortField is the field a listing is ordered by
type SortField string

const (
	SortByCreatedAt     SortField = "createdAt"
	SortByLikes         SortField = "likes"
	SortByTitle         SortField = "title"
	SortByPublishedDate SortField = "publishedDate"
)

// SortOrder is the direction a listing is ordered in
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Sort pairs a field with a direction
type Sort struct {
	Field SortField
	Order SortOrder
}

// Filter selects advice records for a listing. A zero Filter matches
// every record. A non-empty category set matches any record whose
// categories intersect it (OR semantics, not subset).
type Filter struct {
	Categories []Category
	AuthorID   string
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return len(f.Categories) == 0 && f.AuthorID == ""
}

// Matches reports whether the record satisfies the filter
func (f Filter) Matches(a *Advice) bool {
	if f.AuthorID != "" && a.AuthorID != f.AuthorID {
		return false
	}
	if len(f.Categories) == 0 {
		return true
	}
	for _, want := range f.Categories {
		for _, have := range a.Categories {
			if want == have {
				return true
			}
		}
	}
	return false
}

// BuildListing turns raw listing parameters into a filter and sort spec.
// It is pure and deterministic: absent categories yield a match-all
// filter, the default ordering is newest first, and any order other than
// "desc" sorts ascending.
func BuildListing(categories []string, sortBy, order string) (Filter, Sort) {
	var filter Filter
	if len(categories) > 0 {
		cats, _ := ParseCategories(categories)
		filter.Categories = cats
	}

	field := SortField(sortBy)
	switch field {
	case SortByCreatedAt, SortByLikes, SortByTitle, SortByPublishedDate:
	default:
		field = SortByCreatedAt
	}

	direction := OrderAsc
	if order == "" || order == string(OrderDesc) {
		direction = OrderDesc
	}

	return filter, Sort{Field: field, Order: direction}
}

// Less is the comparator for the given sort spec. Ties fall back to the
// record ID so ordering stays stable across pages.
func Less(a, b *Advice, s Sort) bool {
	cmp := 0
	switch s.Field {
	case SortByLikes:
		switch {
		case a.Likes < b.Likes:
			cmp = -1
		case a.Likes > b.Likes:
			cmp = 1
		}
	case SortByTitle:
		switch {
		case a.Title < b.Title:
			cmp = -1
		case a.Title > b.Title:
			cmp = 1
		}
	case SortByPublishedDate:
		cmp = a.PublishedDate.Compare(b.PublishedDate)
	default:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}

	if cmp == 0 {
		return a.ID < b.ID
	}
	if s.Order == OrderDesc {
		return cmp > 0
	}
	return cmp < 0
}

// SortSlice orders records in place according to the sort spec
func SortSlice(records []*Advice, s Sort) {
	sort.SliceStable(records, func(i, j int) bool {
		return Less(records[i], records[j], s)
	})
}
