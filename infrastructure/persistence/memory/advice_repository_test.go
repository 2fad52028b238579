package memory

import (
	"context"
	"sync"
	"testing"

	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedAdvice(t *testing.T, repo *AdviceRepository, title string) *advice.Advice {
	t.Helper()
	record, err := advice.New(title, "Content long enough to satisfy the minimum length rule.", "author-1", []string{"career"}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), record))
	return record
}

func TestCreate_DuplicateIDConflicts(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")

	err := repo.Create(context.Background(), record)
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestGetByID_ReturnsClone(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	loaded, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)

	// mutating the returned record must not touch the stored one
	loaded.Title = "mutated"
	reloaded, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", reloaded.Title)
}

func TestGetByID_Missing(t *testing.T) {
	repo := NewAdviceRepository()

	_, err := repo.GetByID(context.Background(), "70b1c200-05a0-4f4f-9be3-7d0017a52c39")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdate_PreservesLikeState(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	_, err := repo.AddLike(ctx, record.ID, "user-1")
	require.NoError(t, err)

	// the caller's copy predates the like; updating it must not erase it
	record.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, record))

	reloaded, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Title)
	assert.Equal(t, 1, reloaded.Likes)
	assert.True(t, reloaded.LikedByUser("user-1"))
}

func TestDelete(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.GetByID(ctx, record.ID)
	assert.True(t, errors.IsNotFound(err))

	err = repo.Delete(ctx, record.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestFindMany_SkipAndLimit(t *testing.T) {
	repo := NewAdviceRepository()
	for _, title := range []string{"Aaa", "Bbb", "Ccc", "Ddd"} {
		storedAdvice(t, repo, title)
	}
	ctx := context.Background()
	sortSpec := advice.Sort{Field: advice.SortByTitle, Order: advice.OrderAsc}

	page, err := repo.FindMany(ctx, advice.Filter{}, sortSpec, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Bbb", page[0].Title)
	assert.Equal(t, "Ccc", page[1].Title)

	// negative limit means unbounded
	all, err := repo.FindMany(ctx, advice.Filter{}, sortSpec, 0, -1)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// skip past the end is an empty page, not an error
	empty, err := repo.FindMany(ctx, advice.Filter{}, sortSpec, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCount_IndependentOfSkipLimit(t *testing.T) {
	repo := NewAdviceRepository()
	for _, title := range []string{"Aaa", "Bbb", "Ccc"} {
		storedAdvice(t, repo, title)
	}

	total, err := repo.Count(context.Background(), advice.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestAddLike_ExactlyOneWinnerUnderContention(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.AddLike(ctx, record.ID, "user-1")
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
		} else {
			assert.True(t, errors.IsConflict(err))
		}
	}
	assert.Equal(t, 1, won)

	final, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, final.Likes)
	assert.Equal(t, final.Likes, len(final.LikedBy))
}

func TestRemoveLike_RequiresMembership(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	_, err := repo.RemoveLike(ctx, record.ID, "user-1")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	_, err = repo.AddLike(ctx, record.ID, "user-1")
	require.NoError(t, err)
	updated, err := repo.RemoveLike(ctx, record.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Likes)
}

func TestToggleOnDeletedRecordConflicts(t *testing.T) {
	repo := NewAdviceRepository()
	record := storedAdvice(t, repo, "First")
	ctx := context.Background()

	_, err := repo.AddLike(ctx, record.ID, "user-1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, record.ID))

	// a toggle that lost the race against a delete conflicts and says so
	_, err = repo.AddLike(ctx, record.ID, "user-2")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "no longer exists")

	_, err = repo.RemoveLike(ctx, record.ID, "user-1")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "no longer exists")
}
