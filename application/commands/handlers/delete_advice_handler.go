package handlers

import (
	"context"
	"fmt"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/commands/bus"
	"advicehub-backend/application/ports"
	"advicehub-backend/domain/events"
	"advicehub-backend/pkg/errors"

	"go.uber.org/zap"
)

// DeleteAdviceHandler handles DeleteAdviceCommand
type DeleteAdviceHandler struct {
	advices ports.AdviceRepository
	events  ports.EventPublisher
	logger  *zap.Logger
}

// NewDeleteAdviceHandler creates a new handler
func NewDeleteAdviceHandler(
	advices ports.AdviceRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *DeleteAdviceHandler {
	return &DeleteAdviceHandler{
		advices: advices,
		events:  events,
		logger:  logger,
	}
}

// Handle implements bus.CommandHandler
func (h *DeleteAdviceHandler) Handle(ctx context.Context, cmd bus.Command) error {
	deleteCmd, ok := cmd.(commands.DeleteAdviceCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	record, err := h.advices.GetByID(ctx, deleteCmd.AdviceID)
	if err != nil {
		return err
	}

	if record.AuthorID != deleteCmd.RequesterID {
		return errors.NewForbiddenError("only the author can delete this advice")
	}

	// Deletion is immediate and permanent
	if err := h.advices.Delete(ctx, record.ID); err != nil {
		return err
	}

	h.logger.Info("advice deleted",
		zap.String("adviceID", record.ID),
		zap.String("authorID", record.AuthorID),
	)

	if err := h.events.Publish(ctx, events.NewAdviceDeleted(record.ID, record.AuthorID)); err != nil {
		h.logger.Warn("failed to publish advice.deleted event",
			zap.String("adviceID", record.ID),
			zap.Error(err),
		)
	}

	return nil
}
