package handlers

import (
	"context"
	"fmt"

	"advicehub-backend/application/ports"
	"advicehub-backend/application/queries"
	"advicehub-backend/application/queries/bus"

	"go.uber.org/zap"
)

// GetAdviceHandler handles GetAdviceQuery
type GetAdviceHandler struct {
	advices ports.AdviceRepository
	logger  *zap.Logger
}

// NewGetAdviceHandler creates a new handler
func NewGetAdviceHandler(advices ports.AdviceRepository, logger *zap.Logger) *GetAdviceHandler {
	return &GetAdviceHandler{
		advices: advices,
		logger:  logger,
	}
}

// Handle implements bus.QueryHandler
func (h *GetAdviceHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	getQuery, ok := query.(queries.GetAdviceQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	return h.advices.GetByID(ctx, getQuery.AdviceID)
}
