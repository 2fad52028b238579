package queries

import "advicehub-backend/domain/advice"

// GetAdviceQuery retrieves a single advice record by ID
type GetAdviceQuery struct {
	AdviceID string
}

// Validate validates the query
func (q GetAdviceQuery) Validate() error {
	return advice.ValidateID(q.AdviceID)
}
