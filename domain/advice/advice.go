package advice

import (
	"fmt"
	"time"

	"advicehub-backend/pkg/errors"

	"github.com/google/uuid"
)

// Field constraints for an advice record
const (
	TitleMinLen   = 3
	TitleMaxLen   = 60
	ContentMinLen = 20
)

// Advice is one user-authored tip. The author is attributed exclusively at
// creation and never reassigned. The record maintains the invariant
// Likes == len(LikedBy) across every mutation.
type Advice struct {
	ID            string
	Title         string
	Content       string
	AuthorID      string
	Categories    []Category
	Likes         int
	LikedBy       []string
	PublishedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New creates an advice record for the given author, validating every
// field and collecting all violations before failing.
func New(title, content, authorID string, categories []string, publishedDate *time.Time) (*Advice, error) {
	var violations []string

	if l := len(title); l < TitleMinLen || l > TitleMaxLen {
		violations = append(violations, fmt.Sprintf("title must be between %d and %d characters", TitleMinLen, TitleMaxLen))
	}
	if len(content) < ContentMinLen {
		violations = append(violations, fmt.Sprintf("content must be at least %d characters", ContentMinLen))
	}
	if authorID == "" {
		violations = append(violations, "author is required")
	}

	cats, catViolations := ParseCategories(categories)
	violations = append(violations, catViolations...)
	if len(catViolations) == 0 && len(cats) == 0 {
		violations = append(violations, "categories must contain at least 1 value")
	}

	if len(violations) > 0 {
		return nil, errors.NewValidationError("Validation error", violations...)
	}

	now := time.Now().UTC()
	published := now
	if publishedDate != nil {
		published = publishedDate.UTC()
	}

	return &Advice{
		ID:            uuid.New().String(),
		Title:         title,
		Content:       content,
		AuthorID:      authorID,
		Categories:    cats,
		Likes:         0,
		LikedBy:       []string{},
		PublishedDate: published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// LikedByUser reports whether the user is currently in the liked set
func (a *Advice) LikedByUser(userID string) bool {
	for _, id := range a.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike appends the user to the liked set and increments the counter.
// Returns a conflict error when the user is already present, so a caller
// racing against itself never applies the transition twice.
func (a *Advice) AddLike(userID string) error {
	if a.LikedByUser(userID) {
		return errors.NewConflictError("advice already liked by user")
	}
	a.LikedBy = append(a.LikedBy, userID)
	a.Likes = len(a.LikedBy)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveLike removes the user from the liked set and decrements the
// counter. Returns a conflict error when the user is not present.
func (a *Advice) RemoveLike(userID string) error {
	for i, id := range a.LikedBy {
		if id == userID {
			a.LikedBy = append(a.LikedBy[:i], a.LikedBy[i+1:]...)
			a.Likes = len(a.LikedBy)
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errors.NewConflictError("advice not liked by user")
}

// ApplyUpdate mutates the author-editable fields. Nil pointers leave the
// field untouched. All violations are collected before failing.
func (a *Advice) ApplyUpdate(title, content *string, categories []string) error {
	var violations []string

	if title != nil {
		if l := len(*title); l < TitleMinLen || l > TitleMaxLen {
			violations = append(violations, fmt.Sprintf("title must be between %d and %d characters", TitleMinLen, TitleMaxLen))
		}
	}
	if content != nil && len(*content) < ContentMinLen {
		violations = append(violations, fmt.Sprintf("content must be at least %d characters", ContentMinLen))
	}

	var cats []Category
	if categories != nil {
		var catViolations []string
		cats, catViolations = ParseCategories(categories)
		violations = append(violations, catViolations...)
		if len(catViolations) == 0 && len(cats) == 0 {
			violations = append(violations, "categories must contain at least 1 value")
		}
	}

	if len(violations) > 0 {
		return errors.NewValidationError("Validation error", violations...)
	}

	if title != nil {
		a.Title = *title
	}
	if content != nil {
		a.Content = *content
	}
	if categories != nil {
		a.Categories = cats
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy of the record. Repositories hand out clones so
// callers never alias stored state.
func (a *Advice) Clone() *Advice {
	c := *a
	c.Categories = append([]Category(nil), a.Categories...)
	c.LikedBy = append([]string(nil), a.LikedBy...)
	if c.LikedBy == nil {
		c.LikedBy = []string{}
	}
	return &c
}

// ValidateID reports whether the given string is a well-formed advice
// identifier. Malformed input fails before any store access.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewInvalidIDError("Invalid ID format. Must be a valid UUID")
	}
	return nil
}

// LikeAction names the transition applied by a like toggle
type LikeAction string

const (
	ActionLiked   LikeAction = "liked"
	ActionUnliked LikeAction = "unliked"
)
