package handlers

import (
	"net/http/httptest"
	"testing"

	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseURL(t *testing.T, rawQuery string, allowed []advice.SortField) (listingParams, error) {
	t.Helper()
	r := httptest.NewRequest("GET", "/advices?"+rawQuery, nil)
	return parseListingParams(r, allowed)
}

func TestParseListingParams_Empty(t *testing.T) {
	params, err := parseURL(t, "", publicSortFields)
	require.NoError(t, err)

	assert.Nil(t, params.Page)
	assert.Nil(t, params.Limit)
	assert.Empty(t, params.Categories)
	assert.Empty(t, params.SortBy)
	assert.Empty(t, params.Order)
}

func TestParseListingParams_UnknownKeyRejected(t *testing.T) {
	_, err := parseURL(t, "search=foo", publicSortFields)

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	require.Len(t, appErr.Details, 1)
	assert.Contains(t, appErr.Details[0], "search")
}

func TestParseListingParams_AggregatesViolations(t *testing.T) {
	_, err := parseURL(t, "search=foo&categories=cooking&sortBy=age&order=sideways", publicSortFields)

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 4)
}

func TestParseListingParams_CategoriesRepeatedAndCommaSeparated(t *testing.T) {
	params, err := parseURL(t, "categories=career,health&categories=finance", publicSortFields)
	require.NoError(t, err)

	assert.Equal(t, []string{"career", "health", "finance"}, params.Categories)
}

func TestParseListingParams_PageAndLimit(t *testing.T) {
	params, err := parseURL(t, "page=2&limit=5", publicSortFields)
	require.NoError(t, err)

	require.NotNil(t, params.Page)
	require.NotNil(t, params.Limit)
	assert.Equal(t, 2, *params.Page)
	assert.Equal(t, 5, *params.Limit)
}

func TestParseListingParams_PageAndLimitMustBePositiveIntegers(t *testing.T) {
	for _, q := range []string{"page=abc", "page=-1", "page=0", "limit=xyz", "limit=-5"} {
		_, err := parseURL(t, q, publicSortFields)
		require.Error(t, err, q)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr, q)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type, q)
		require.Len(t, appErr.Details, 1, q)
		assert.Contains(t, appErr.Details[0], "must be a positive integer", q)
	}
}

func TestParseListingParams_PageAndLimitViolationsAggregate(t *testing.T) {
	_, err := parseURL(t, "page=abc&limit=-5&order=sideways", publicSortFields)

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 3)
}

func TestParseListingParams_SortWhitelistPerEndpoint(t *testing.T) {
	_, err := parseURL(t, "sortBy=publishedDate", publicSortFields)
	assert.Error(t, err)

	params, err := parseURL(t, "sortBy=publishedDate", ownSortFields)
	require.NoError(t, err)
	assert.Equal(t, "publishedDate", params.SortBy)
}

func TestParseListingParams_Order(t *testing.T) {
	params, err := parseURL(t, "order=asc", publicSortFields)
	require.NoError(t, err)
	assert.Equal(t, "asc", params.Order)

	_, err = parseURL(t, "order=up", publicSortFields)
	assert.Error(t, err)
}
