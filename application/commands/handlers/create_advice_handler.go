package handlers

import (
	"context"
	"fmt"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/commands/bus"
	"advicehub-backend/application/ports"
	"advicehub-backend/domain/advice"
	"advicehub-backend/domain/events"
	"advicehub-backend/pkg/observability"

	"go.uber.org/zap"
)

// CreateAdviceHandler handles CreateAdviceCommand
type CreateAdviceHandler struct {
	advices ports.AdviceRepository
	events  ports.EventPublisher
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCreateAdviceHandler creates a new handler
func NewCreateAdviceHandler(
	advices ports.AdviceRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CreateAdviceHandler {
	return &CreateAdviceHandler{
		advices: advices,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle implements bus.CommandHandler
func (h *CreateAdviceHandler) Handle(ctx context.Context, cmd bus.Command) error {
	createCmd, ok := cmd.(commands.CreateAdviceCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	record, err := advice.New(
		createCmd.Title,
		createCmd.Content,
		createCmd.AuthorID,
		createCmd.Categories,
		createCmd.PublishedDate,
	)
	if err != nil {
		return err
	}

	// The HTTP layer pre-generates the ID so it can read back the record
	if createCmd.AdviceID != "" {
		record.ID = createCmd.AdviceID
	}

	if err := h.advices.Create(ctx, record); err != nil {
		return err
	}

	h.logger.Info("advice created",
		zap.String("adviceID", record.ID),
		zap.String("authorID", record.AuthorID),
		zap.Int("categories", len(record.Categories)),
	)
	h.metrics.Increment("AdviceCreated", nil)

	cats := make([]string, len(record.Categories))
	for i, c := range record.Categories {
		cats[i] = string(c)
	}
	if err := h.events.Publish(ctx, events.NewAdviceCreated(record.ID, record.AuthorID, cats)); err != nil {
		h.logger.Warn("failed to publish advice.created event",
			zap.String("adviceID", record.ID),
			zap.Error(err),
		)
	}

	return nil
}
