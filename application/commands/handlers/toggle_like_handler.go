package handlers

import (
	"context"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/ports"
	"advicehub-backend/domain/advice"
	"advicehub-backend/domain/events"
	"advicehub-backend/pkg/errors"
	"advicehub-backend/pkg/observability"

	"go.uber.org/zap"
)

// ToggleLikeHandler applies the like/unlike state transition for one
// (advice, user) pair. It reads the current membership, then issues a
// single conditional atomic write for the transition it observed; the
// repository rejects the write if a concurrent request already flipped
// the state. A rejected write surfaces as a conflict and is never
// retried, so of two concurrent toggles by the same user at most one
// transition is ever applied.
type ToggleLikeHandler struct {
	advices ports.AdviceRepository
	events  ports.EventPublisher
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewToggleLikeHandler creates a new handler
func NewToggleLikeHandler(
	advices ports.AdviceRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ToggleLikeHandler {
	return &ToggleLikeHandler{
		advices: advices,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle executes the toggle and returns the updated record together with
// the action taken, so callers can update dependent state without a
// re-fetch.
func (h *ToggleLikeHandler) Handle(ctx context.Context, cmd commands.ToggleLikeCommand) (*advice.Advice, advice.LikeAction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, "", err
	}

	record, err := h.advices.GetByID(ctx, cmd.AdviceID)
	if err != nil {
		return nil, "", err
	}

	var updated *advice.Advice
	var action advice.LikeAction

	if record.LikedByUser(cmd.UserID) {
		updated, err = h.advices.RemoveLike(ctx, cmd.AdviceID, cmd.UserID)
		action = advice.ActionUnliked
	} else {
		updated, err = h.advices.AddLike(ctx, cmd.AdviceID, cmd.UserID)
		action = advice.ActionLiked
	}
	if err != nil {
		if errors.IsConflict(err) {
			h.metrics.Increment("LikeToggleConflict", nil)
		}
		return nil, "", err
	}

	h.logger.Info("like toggled",
		zap.String("adviceID", updated.ID),
		zap.String("userID", cmd.UserID),
		zap.String("action", string(action)),
		zap.Int("likes", updated.Likes),
	)
	h.metrics.Increment("LikeToggle", map[string]string{"Action": string(action)})

	event := events.NewLikeToggled(updated.ID, cmd.UserID, updated.Likes, action == advice.ActionLiked)
	if err := h.events.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish like event",
			zap.String("adviceID", updated.ID),
			zap.Error(err),
		)
	}

	return updated, action, nil
}
