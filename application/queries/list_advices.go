package queries

import (
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/common"
	"advicehub-backend/pkg/errors"
)

// ListAdvicesQuery lists advice records with optional category filtering,
// sorting and pagination. Page and Limit are pointers because absence and
// zero mean different things: when both are nil the full matching result
// set is returned with no pagination metadata.
type ListAdvicesQuery struct {
	Categories []string
	AuthorID   string
	Page       *int
	Limit      *int
	SortBy     string
	Order      string
}

// Validate validates the query
func (q ListAdvicesQuery) Validate() error {
	var violations []string

	for _, c := range q.Categories {
		if !advice.IsValidCategory(c) {
			violations = append(violations, "Invalid categories: "+c+". Valid categories are: "+advice.CategoryList())
		}
	}

	switch advice.SortField(q.SortBy) {
	case "", advice.SortByCreatedAt, advice.SortByLikes, advice.SortByTitle, advice.SortByPublishedDate:
	default:
		violations = append(violations, "sortBy must be one of: createdAt, likes, title, publishedDate")
	}

	switch advice.SortOrder(q.Order) {
	case "", advice.OrderAsc, advice.OrderDesc:
	default:
		violations = append(violations, "order must be either asc or desc")
	}

	if len(violations) > 0 {
		return errors.NewValidationError("Invalid query parameters", violations...)
	}
	return nil
}

// ListAdvicesResult is the result of a listing query. Pagination is nil
// when the caller did not ask for a paginated listing.
type ListAdvicesResult struct {
	Advices    []*advice.Advice
	Pagination *common.PageInfo
}
