package advice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingRecord(t *testing.T, title string, categories []string, likes int, createdAt time.Time) *Advice {
	t.Helper()
	record, err := New(title, "Content long enough to satisfy the minimum length rule.", "author-1", categories, nil)
	require.NoError(t, err)
	record.CreatedAt = createdAt
	for i := 0; i < likes; i++ {
		require.NoError(t, record.AddLike(string(rune('a'+i))))
	}
	return record
}

func TestBuildListing_Defaults(t *testing.T) {
	filter, sortSpec := BuildListing(nil, "", "")

	assert.True(t, filter.IsEmpty())
	assert.Equal(t, SortByCreatedAt, sortSpec.Field)
	assert.Equal(t, OrderDesc, sortSpec.Order)
}

func TestBuildListing_EmptyAndNilCategoriesEquivalent(t *testing.T) {
	nilFilter, _ := BuildListing(nil, "", "")
	emptyFilter, _ := BuildListing([]string{}, "", "")

	record := listingRecord(t, "Anything", []string{"career"}, 0, time.Now())
	assert.Equal(t, nilFilter.Matches(record), emptyFilter.Matches(record))
	assert.True(t, nilFilter.IsEmpty())
	assert.True(t, emptyFilter.IsEmpty())
}

func TestFilter_IntersectionSemantics(t *testing.T) {
	base := time.Now()
	careerOnly := listingRecord(t, "Career advice", []string{"career"}, 0, base)
	both := listingRecord(t, "Career and health", []string{"career", "health"}, 0, base)
	financeOnly := listingRecord(t, "Finance advice", []string{"finance"}, 0, base)

	filter, _ := BuildListing([]string{"career", "health"}, "", "")

	// any overlap matches, not a subset requirement
	assert.True(t, filter.Matches(careerOnly))
	assert.True(t, filter.Matches(both))
	assert.False(t, filter.Matches(financeOnly))
}

func TestFilter_AuthorScope(t *testing.T) {
	record := listingRecord(t, "Mine", []string{"career"}, 0, time.Now())

	mine := Filter{AuthorID: "author-1"}
	theirs := Filter{AuthorID: "author-2"}

	assert.True(t, mine.Matches(record))
	assert.False(t, theirs.Matches(record))
}

func TestSortSlice_CreatedAtDesc(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := listingRecord(t, "Oldest", []string{"career"}, 0, base)
	middle := listingRecord(t, "Middle", []string{"career"}, 0, base.Add(time.Hour))
	newest := listingRecord(t, "Newest", []string{"career"}, 0, base.Add(2*time.Hour))

	records := []*Advice{middle, oldest, newest}
	SortSlice(records, Sort{Field: SortByCreatedAt, Order: OrderDesc})

	assert.Equal(t, []*Advice{newest, middle, oldest}, records)
}

func TestSortSlice_LikesAsc(t *testing.T) {
	base := time.Now()
	none := listingRecord(t, "No likes", []string{"career"}, 0, base)
	some := listingRecord(t, "Some likes", []string{"career"}, 2, base)
	many := listingRecord(t, "Many likes", []string{"career"}, 5, base)

	records := []*Advice{many, none, some}
	SortSlice(records, Sort{Field: SortByLikes, Order: OrderAsc})

	assert.Equal(t, []*Advice{none, some, many}, records)
}

func TestSortSlice_TitleDesc(t *testing.T) {
	base := time.Now()
	a := listingRecord(t, "Alpha", []string{"career"}, 0, base)
	b := listingRecord(t, "Beta", []string{"career"}, 0, base)
	c := listingRecord(t, "Gamma", []string{"career"}, 0, base)

	records := []*Advice{b, a, c}
	SortSlice(records, Sort{Field: SortByTitle, Order: OrderDesc})

	assert.Equal(t, []*Advice{c, b, a}, records)
}

func TestSortSlice_Deterministic(t *testing.T) {
	// equal sort keys fall back to the ID so order is stable across runs
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := listingRecord(t, "Same", []string{"career"}, 0, base)
	second := listingRecord(t, "Same", []string{"career"}, 0, base)

	forward := []*Advice{first, second}
	backward := []*Advice{second, first}
	SortSlice(forward, Sort{Field: SortByCreatedAt, Order: OrderAsc})
	SortSlice(backward, Sort{Field: SortByCreatedAt, Order: OrderAsc})

	assert.Equal(t, forward, backward)
}
