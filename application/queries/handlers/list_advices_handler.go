package handlers

import (
	"context"
	"fmt"

	"advicehub-backend/application/ports"
	"advicehub-backend/application/queries"
	"advicehub-backend/application/queries/bus"
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/common"

	"go.uber.org/zap"
)

// ListAdvicesHandler handles ListAdvicesQuery. It builds the filter and
// sort spec, computes the pagination plan, and runs the data query plus a
// separate count over the same filter when pagination is requested.
type ListAdvicesHandler struct {
	advices ports.AdviceRepository
	logger  *zap.Logger
}

// NewListAdvicesHandler creates a new handler
func NewListAdvicesHandler(advices ports.AdviceRepository, logger *zap.Logger) *ListAdvicesHandler {
	return &ListAdvicesHandler{
		advices: advices,
		logger:  logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ListAdvicesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	listQuery, ok := query.(queries.ListAdvicesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	filter, sortSpec := advice.BuildListing(listQuery.Categories, listQuery.SortBy, listQuery.Order)
	filter.AuthorID = listQuery.AuthorID

	plan := common.BuildPaginationPlan(listQuery.Page, listQuery.Limit)

	skip, limit := 0, -1
	var meta *common.PageInfo

	if plan.Paginated {
		// The total reflects the filter, never the page
		total, err := h.advices.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
		skip, limit = plan.Skip, plan.Limit
		meta = plan.Meta(total)
	}

	records, err := h.advices.FindMany(ctx, filter, sortSpec, skip, limit)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("advices listed",
		zap.Int("count", len(records)),
		zap.Bool("paginated", plan.Paginated),
		zap.String("sortBy", string(sortSpec.Field)),
		zap.String("order", string(sortSpec.Order)),
	)

	return &queries.ListAdvicesResult{
		Advices:    records,
		Pagination: meta,
	}, nil
}
