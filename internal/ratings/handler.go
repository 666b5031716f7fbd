package ratings

import (
	"context"

	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/events"
	"sitterhub/pkg/kafka"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
)

// Recomputer rebuilds a babysitter's stored rating aggregate.
type Recomputer interface {
	RecomputeRating(ctx context.Context, babysitterID string) (*model.RatingAggregate, error)
}

// Handler re-runs the rating recompute for every review.created event.
type Handler struct {
	recomputer Recomputer
	log        *logger.Logger
}

func NewHandler(recomputer Recomputer, log *logger.Logger) *Handler {
	return &Handler{
		recomputer: recomputer,
		log:        log,
	}
}

func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != string(events.ReviewCreated) {
		h.log.Debug("Skipping unrelated event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var payload events.ReviewPayload
	if err := msg.DecodeValue(&payload); err != nil {
		return kafka.NewPermanentError("invalid review payload", err)
	}
	if payload.BabysitterID == "" {
		return kafka.NewPermanentError("review payload has no babysitter_id", nil)
	}

	aggregate, err := h.recomputer.RecomputeRating(ctx, payload.BabysitterID)
	if err != nil {
		if apperrors.AsAppError(err).Code == apperrors.CodeNotFound {
			h.log.Warn("Babysitter no longer exists, skipping recompute",
				"babysitter_id", payload.BabysitterID,
				"review_id", payload.ReviewID,
			)
			return nil
		}
		return kafka.NewTransientError("rating recompute failed", err)
	}

	h.log.Info("Rating aggregate healed",
		"babysitter_id", payload.BabysitterID,
		"review_id", payload.ReviewID,
		"rating", aggregate.Rating,
		"total_reviews", aggregate.TotalReviews,
		"correlation_id", msg.GetCorrelationID(),
	)
	return nil
}
