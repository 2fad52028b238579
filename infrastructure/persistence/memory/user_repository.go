package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/user"
	"advicehub-backend/pkg/errors"
)

// UserRepository is a map-backed ports.UserRepository
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]string
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

func clone(u *user.User) *user.User {
	copied := *u
	return &copied
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, taken := r.byEmail[email]; taken {
		return errors.NewConflictError("email is already registered")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("user %s already exists", u.ID))
	}

	r.byID[u.ID] = clone(u)
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.byID[id]
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %s", id))
	}
	return clone(account), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, errors.NewNotFoundError("user")
	}
	return clone(r.byID[id]), nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
