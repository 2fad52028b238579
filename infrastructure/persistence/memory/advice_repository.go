// Package memory provides in-process repository implementations used for
// local development and tests. They honor the same conditional-write
// semantics as the DynamoDB implementations, with a mutex standing in for
// the document store's conditional writes.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// AdviceRepository is a map-backed ports.AdviceRepository
type AdviceRepository struct {
	mu      sync.RWMutex
	records map[string]*advice.Advice
}

// NewAdviceRepository creates an empty in-memory advice repository
func NewAdviceRepository() *AdviceRepository {
	return &AdviceRepository{
		records: make(map[string]*advice.Advice),
	}
}

func (r *AdviceRepository) Create(ctx context.Context, a *advice.Advice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[a.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("advice %s already exists", a.ID))
	}
	r.records[a.ID] = a.Clone()
	return nil
}

func (r *AdviceRepository) GetByID(ctx context.Context, id string) (*advice.Advice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("advice %s", id))
	}
	return record.Clone(), nil
}

func (r *AdviceRepository) FindMany(ctx context.Context, filter advice.Filter, sort advice.Sort, skip, limit int) ([]*advice.Advice, error) {
	r.mu.RLock()
	matches := make([]*advice.Advice, 0, len(r.records))
	for _, record := range r.records {
		if filter.Matches(record) {
			matches = append(matches, record.Clone())
		}
	}
	r.mu.RUnlock()

	advice.SortSlice(matches, sort)

	if skip >= len(matches) {
		return []*advice.Advice{}, nil
	}
	matches = matches[skip:]
	if limit >= 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *AdviceRepository) Count(ctx context.Context, filter advice.Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, record := range r.records {
		if filter.Matches(record) {
			total++
		}
	}
	return total, nil
}

func (r *AdviceRepository) Update(ctx context.Context, a *advice.Advice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.records[a.ID]
	if !exists {
		return errors.NewNotFoundError(fmt.Sprintf("advice %s", a.ID))
	}

	updated := a.Clone()
	// Like state is owned by the conditional writes below, not by Update
	updated.Likes = current.Likes
	updated.LikedBy = append([]string(nil), current.LikedBy...)
	r.records[a.ID] = updated
	return nil
}

func (r *AdviceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return errors.NewNotFoundError(fmt.Sprintf("advice %s", id))
	}
	delete(r.records, id)
	return nil
}

// AddLike re-checks membership inside the critical section, so concurrent
// likes by the same user resolve to exactly one winner
func (r *AdviceRepository) AddLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[adviceID]
	if !exists {
		return nil, errors.NewConflictError("advice no longer exists")
	}
	if err := record.AddLike(userID); err != nil {
		return nil, err
	}
	record.UpdatedAt = time.Now().UTC()
	return record.Clone(), nil
}

// RemoveLike mirrors AddLike with the opposite membership condition
func (r *AdviceRepository) RemoveLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[adviceID]
	if !exists {
		return nil, errors.NewConflictError("advice no longer exists")
	}
	if err := record.RemoveLike(userID); err != nil {
		return nil, err
	}
	record.UpdatedAt = time.Now().UTC()
	return record.Clone(), nil
}

var _ ports.AdviceRepository = (*AdviceRepository)(nil)
