package user

import (
	"time"

	"advicehub-backend/pkg/errors"

	"github.com/google/uuid"
)

// User is a registered account. The password hash is opaque to everything
// outside pkg/auth.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a user record. Credential validation happens at the request
// boundary; this only guards the structural invariants.
func New(username, email, passwordHash string) (*User, error) {
	if username == "" || email == "" || passwordHash == "" {
		return nil, errors.NewValidationError("username, email and password are required")
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
