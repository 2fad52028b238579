package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int {
	return &n
}

func TestBuildPaginationPlan(t *testing.T) {
	tests := []struct {
		name  string
		page  *int
		limit *int
		want  PaginationPlan
	}{
		{
			name: "both absent means unpaginated",
			want: PaginationPlan{},
		},
		{
			name: "page alone switches pagination on",
			page: intPtr(2),
			want: PaginationPlan{Paginated: true, Page: 2, Limit: 10, Skip: 10},
		},
		{
			name:  "limit alone switches pagination on",
			limit: intPtr(5),
			want:  PaginationPlan{Paginated: true, Page: 1, Limit: 5, Skip: 0},
		},
		{
			name:  "both present",
			page:  intPtr(3),
			limit: intPtr(20),
			want:  PaginationPlan{Paginated: true, Page: 3, Limit: 20, Skip: 40},
		},
		{
			name:  "non-positive values fall back to defaults",
			page:  intPtr(0),
			limit: intPtr(-1),
			want:  PaginationPlan{Paginated: true, Page: 1, Limit: 10, Skip: 0},
		},
		{
			name:  "limit above the maximum falls back to the default",
			page:  intPtr(1),
			limit: intPtr(101),
			want:  PaginationPlan{Paginated: true, Page: 1, Limit: 10, Skip: 0},
		},
		{
			name:  "limit at the maximum is kept",
			page:  intPtr(1),
			limit: intPtr(100),
			want:  PaginationPlan{Paginated: true, Page: 1, Limit: 100, Skip: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPaginationPlan(tt.page, tt.limit))
		})
	}
}

func TestMeta(t *testing.T) {
	plan := BuildPaginationPlan(intPtr(2), intPtr(10))
	meta := plan.Meta(25)

	assert.Equal(t, &PageInfo{Total: 25, Page: 2, Limit: 10, Pages: 3}, meta)
}

func TestMeta_Unpaginated(t *testing.T) {
	assert.Nil(t, PaginationPlan{}.Meta(25))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}
