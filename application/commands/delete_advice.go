package commands

import (
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// DeleteAdviceCommand permanently removes an advice record. There is no
// soft delete.
type DeleteAdviceCommand struct {
	AdviceID    string
	RequesterID string
}

// Validate validates the command
func (c DeleteAdviceCommand) Validate() error {
	if c.RequesterID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}
	return advice.ValidateID(c.AdviceID)
}
