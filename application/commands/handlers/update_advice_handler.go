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

// UpdateAdviceHandler handles UpdateAdviceCommand
type UpdateAdviceHandler struct {
	advices ports.AdviceRepository
	events  ports.EventPublisher
	logger  *zap.Logger
}

// NewUpdateAdviceHandler creates a new handler
func NewUpdateAdviceHandler(
	advices ports.AdviceRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *UpdateAdviceHandler {
	return &UpdateAdviceHandler{
		advices: advices,
		events:  events,
		logger:  logger,
	}
}

// Handle implements bus.CommandHandler
func (h *UpdateAdviceHandler) Handle(ctx context.Context, cmd bus.Command) error {
	updateCmd, ok := cmd.(commands.UpdateAdviceCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	record, err := h.advices.GetByID(ctx, updateCmd.AdviceID)
	if err != nil {
		return err
	}

	// Content fields are author-only
	if record.AuthorID != updateCmd.RequesterID {
		return errors.NewForbiddenError("only the author can edit this advice")
	}

	if err := record.ApplyUpdate(updateCmd.Title, updateCmd.Content, updateCmd.Categories); err != nil {
		return err
	}

	if err := h.advices.Update(ctx, record); err != nil {
		return err
	}

	h.logger.Info("advice updated",
		zap.String("adviceID", record.ID),
		zap.String("authorID", record.AuthorID),
	)

	if err := h.events.Publish(ctx, events.NewAdviceUpdated(record.ID, record.AuthorID)); err != nil {
		h.logger.Warn("failed to publish advice.updated event",
			zap.String("adviceID", record.ID),
			zap.Error(err),
		)
	}

	return nil
}
