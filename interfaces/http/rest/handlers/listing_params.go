package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// listingParams is the parsed form of a listing query string
type listingParams struct {
	Categories []string
	Page       *int
	Limit      *int
	SortBy     string
	Order      string
}

// allowedListingKeys is the closed query surface: anything else is a
// validation error, not silently ignored
var allowedListingKeys = map[string]bool{
	"page":       true,
	"limit":      true,
	"categories": true,
	"sortBy":     true,
	"order":      true,
}

// parseListingParams validates the query string against the closed
// surface and aggregates every violation into one response. page and
// limit must be positive integers when present; the sort and category
// vocabularies are closed.
func parseListingParams(r *http.Request, allowedSorts []advice.SortField) (listingParams, error) {
	var params listingParams
	var violations []string

	query := r.URL.Query()

	unknown := make([]string, 0)
	for key := range query {
		if !allowedListingKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		violations = append(violations, fmt.Sprintf("Unknown query parameter: %s", key))
	}

	// categories may be repeated and each value may be comma-separated
	for _, raw := range query["categories"] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				params.Categories = append(params.Categories, trimmed)
			}
		}
	}
	for _, c := range params.Categories {
		if !advice.IsValidCategory(c) {
			violations = append(violations, fmt.Sprintf("Invalid categories: %s. Valid categories are: %s", c, advice.CategoryList()))
		}
	}

	// Presence of either key switches pagination on; the values must be
	// positive integers
	if query.Has("page") {
		if n, ok := parsePositiveInt(query.Get("page")); ok {
			params.Page = &n
		} else {
			violations = append(violations, "page must be a positive integer")
		}
	}
	if query.Has("limit") {
		if n, ok := parsePositiveInt(query.Get("limit")); ok {
			params.Limit = &n
		} else {
			violations = append(violations, "limit must be a positive integer")
		}
	}

	if sortBy := query.Get("sortBy"); sortBy != "" {
		if !sortAllowed(advice.SortField(sortBy), allowedSorts) {
			violations = append(violations, fmt.Sprintf("Invalid sortBy: %s. Valid fields are: %s", sortBy, sortFieldList(allowedSorts)))
		} else {
			params.SortBy = sortBy
		}
	}
	if order := query.Get("order"); order != "" {
		switch advice.SortOrder(order) {
		case advice.OrderAsc, advice.OrderDesc:
			params.Order = order
		default:
			violations = append(violations, fmt.Sprintf("Invalid order: %s. Valid values are: asc, desc", order))
		}
	}

	if len(violations) > 0 {
		return listingParams{}, errors.NewValidationError("Validation error", violations...)
	}
	return params, nil
}

func parsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func sortAllowed(field advice.SortField, allowed []advice.SortField) bool {
	for _, f := range allowed {
		if f == field {
			return true
		}
	}
	return false
}

func sortFieldList(allowed []advice.SortField) string {
	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
