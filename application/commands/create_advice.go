package commands

import (
	"time"

	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
)

// CreateAdviceCommand creates a new advice record attributed to its author
type CreateAdviceCommand struct {
	AdviceID      string
	AuthorID      string
	Title         string
	Content       string
	Categories    []string
	PublishedDate *time.Time
}

// Validate validates the command. Field-level rules live in the domain
// constructor; this guards the identifiers the handler needs.
func (c CreateAdviceCommand) Validate() error {
	if c.AuthorID == "" {
		return errors.NewUnauthorizedError("author is required")
	}
	if c.AdviceID != "" {
		if err := advice.ValidateID(c.AdviceID); err != nil {
			return err
		}
	}
	return nil
}
