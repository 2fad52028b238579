package ports

import (
	"context"

	"advicehub-backend/domain/advice"
	"advicehub-backend/domain/events"
	"advicehub-backend/domain/user"
)

// AdviceRepository is the port over the document store for advice records.
// Implementations must treat each record as self-contained: every mutation
// is a single-document operation, and the two like methods are conditional
// atomic writes.
type AdviceRepository interface {
	// Create stores a new record, failing with a conflict if the ID exists
	Create(ctx context.Context, a *advice.Advice) error

	// GetByID retrieves a record, failing with not-found when absent
	GetByID(ctx context.Context, id string) (*advice.Advice, error)

	// FindMany retrieves records matching the filter in the given order.
	// A negative limit means no limit; skip is applied after ordering.
	FindMany(ctx context.Context, filter advice.Filter, sort advice.Sort, skip, limit int) ([]*advice.Advice, error)

	// Count returns how many records match the filter, independent of any
	// skip/limit applied to the data query
	Count(ctx context.Context, filter advice.Filter) (int, error)

	// Update persists the author-editable fields of an existing record
	Update(ctx context.Context, a *advice.Advice) error

	// Delete permanently removes a record, failing with not-found when
	// absent
	Delete(ctx context.Context, id string) error

	// AddLike atomically adds userID to the liked set and increments the
	// counter, but only if userID is still absent at write time. A lost
	// race fails with a conflict; the caller must not retry.
	AddLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error)

	// RemoveLike atomically removes userID from the liked set and
	// decrements the counter, but only if userID is still present at
	// write time. A lost race fails with a conflict.
	RemoveLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error)
}

// UserRepository is the port over the document store for user accounts
type UserRepository interface {
	// Create stores a new account, failing with a conflict when the email
	// is already registered
	Create(ctx context.Context, u *user.User) error

	// GetByID retrieves an account, failing with not-found when absent
	GetByID(ctx context.Context, id string) (*user.User, error)

	// GetByEmail retrieves an account by its unique email
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// EventPublisher publishes domain events after state changes. Publishing
// failures are logged, never surfaced to the request that caused them.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
