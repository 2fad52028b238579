package commands

import (
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// ToggleLikeCommand flips the like state of an advice record for a user.
// The transition applied depends on the user's current membership in the
// liked set.
type ToggleLikeCommand struct {
	AdviceID string
	UserID   string
}

// Validate validates the command. The checks run in the order the
// taxonomy demands: authentication before identifier syntax, both before
// any store access.
func (c ToggleLikeCommand) Validate() error {
	if c.UserID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}
	return advice.ValidateID(c.AdviceID)
}
