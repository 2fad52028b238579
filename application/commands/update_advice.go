package commands

import (
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// UpdateAdviceCommand edits the author-editable fields of an advice
// record. Nil pointers leave a field untouched; a nil Categories slice
// leaves the tag set untouched.
type UpdateAdviceCommand struct {
	AdviceID    string
	RequesterID string
	Title       *string
	Content     *string
	Categories  []string
}

// Validate validates the command
func (c UpdateAdviceCommand) Validate() error {
	if c.RequesterID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}
	if err := advice.ValidateID(c.AdviceID); err != nil {
		return err
	}
	if c.Title == nil && c.Content == nil && c.Categories == nil {
		return errors.NewValidationError("no fields to update")
	}
	return nil
}
