package advice

import (
	"strings"
	"testing"
	"time"

	"advicehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAdvice(t *testing.T) *Advice {
	t.Helper()
	record, err := New(
		"Save before you spend",
		"Set the transfer up on payday so the decision is already made.",
		"author-1",
		[]string{"finance"},
		nil,
	)
	require.NoError(t, err)
	return record
}

func TestNew_Valid(t *testing.T) {
	record := validAdvice(t)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "author-1", record.AuthorID)
	assert.Equal(t, []Category{CategoryFinance}, record.Categories)
	assert.Equal(t, 0, record.Likes)
	assert.Empty(t, record.LikedBy)
	assert.False(t, record.PublishedDate.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
}

func TestNew_ExplicitPublishedDate(t *testing.T) {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record, err := New(
		"Walk after lunch",
		"Twenty minutes outside resets the afternoon better than coffee.",
		"author-1",
		[]string{"health"},
		&published,
	)
	require.NoError(t, err)
	assert.Equal(t, published, record.PublishedDate)
}

func TestNew_AggregatesViolations(t *testing.T) {
	_, err := New("ab", "too short", "", []string{"cooking"}, nil)
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	// every violation is reported at once
	assert.Len(t, appErr.Details, 4)
}

func TestNew_TitleBounds(t *testing.T) {
	content := "Long enough content to pass the minimum length check."

	_, err := New(strings.Repeat("x", TitleMaxLen+1), content, "author-1", []string{"career"}, nil)
	assert.Error(t, err)

	_, err = New(strings.Repeat("x", TitleMaxLen), content, "author-1", []string{"career"}, nil)
	assert.NoError(t, err)

	_, err = New(strings.Repeat("x", TitleMinLen), content, "author-1", []string{"career"}, nil)
	assert.NoError(t, err)
}

func TestNew_RequiresCategory(t *testing.T) {
	_, err := New("A fine title", "Long enough content to pass the minimum length check.", "author-1", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestAddLike_MaintainsInvariant(t *testing.T) {
	record := validAdvice(t)

	require.NoError(t, record.AddLike("user-1"))
	require.NoError(t, record.AddLike("user-2"))

	assert.Equal(t, 2, record.Likes)
	assert.Equal(t, record.Likes, len(record.LikedBy))
	assert.True(t, record.LikedByUser("user-1"))
	assert.True(t, record.LikedByUser("user-2"))
}

func TestAddLike_AlreadyLikedConflicts(t *testing.T) {
	record := validAdvice(t)
	require.NoError(t, record.AddLike("user-1"))

	err := record.AddLike("user-1")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Equal(t, 1, record.Likes)
}

func TestRemoveLike_NotLikedConflicts(t *testing.T) {
	record := validAdvice(t)

	err := record.RemoveLike("user-1")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
	assert.Equal(t, 0, record.Likes)
}

func TestLikeToggleRoundTrip(t *testing.T) {
	record := validAdvice(t)

	require.NoError(t, record.AddLike("user-1"))
	require.NoError(t, record.RemoveLike("user-1"))

	assert.Equal(t, 0, record.Likes)
	assert.False(t, record.LikedByUser("user-1"))
	assert.Equal(t, record.Likes, len(record.LikedBy))
}

func TestApplyUpdate_PartialFields(t *testing.T) {
	record := validAdvice(t)
	originalContent := record.Content

	title := "Automate your savings"
	require.NoError(t, record.ApplyUpdate(&title, nil, []string{"finance", "productivity"}))

	assert.Equal(t, title, record.Title)
	assert.Equal(t, originalContent, record.Content)
	assert.ElementsMatch(t, []Category{CategoryFinance, CategoryProductivity}, record.Categories)
}

func TestApplyUpdate_RejectsInvalidFields(t *testing.T) {
	record := validAdvice(t)

	badTitle := "ab"
	err := record.ApplyUpdate(&badTitle, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.NotEqual(t, badTitle, record.Title)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("70b1c200-05a0-4f4f-9be3-7d0017a52c39"))

	err := ValidateID("not-a-uuid")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInvalidID, appErr.Type)
}

func TestClone_Isolated(t *testing.T) {
	record := validAdvice(t)
	require.NoError(t, record.AddLike("user-1"))

	copied := record.Clone()
	require.NoError(t, copied.AddLike("user-2"))

	assert.Equal(t, 1, record.Likes)
	assert.Equal(t, 2, copied.Likes)
}

func TestParseCategories(t *testing.T) {
	cats, violations := ParseCategories([]string{"health", "career", "health"})
	assert.Empty(t, violations)
	// duplicates collapse
	assert.ElementsMatch(t, []Category{CategoryHealth, CategoryCareer}, cats)

	_, violations = ParseCategories([]string{"cooking"})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "cooking")
}
