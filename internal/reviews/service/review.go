package service

import (
	"context"
	"errors"

	"sitterhub/internal/directory"
	reviewserrors "sitterhub/internal/reviews/errors"
	"sitterhub/internal/reviews/repository"
	"sitterhub/internal/reviews/validator"
	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/events"
	"sitterhub/pkg/model"
	"sitterhub/pkg/sanitizer"
)

const duplicateReview = "You have already reviewed this babysitter"

type ReviewService interface {
	Create(ctx context.Context, babysitterID string, req *model.ReviewCreate) (*model.Review, error)
	ListByBabysitter(ctx context.Context, babysitterID string) ([]*model.Review, error)
	// RecomputeRating rebuilds the babysitter's rating and total_reviews
	// from every stored review.
	RecomputeRating(ctx context.Context, babysitterID string) (*model.RatingAggregate, error)
}

// BabysitterDirectory is the slice of the account directory reviews need.
type BabysitterDirectory interface {
	BabysitterExists(ctx context.Context, babysitterID string) error
	AttachReviewParents(ctx context.Context, reviews ...*model.Review) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	directory BabysitterDirectory
	validator *validator.ReviewValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	directory BabysitterDirectory,
	validator *validator.ReviewValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		directory: directory,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reviewService) Create(ctx context.Context, babysitterID string, req *model.ReviewCreate) (*model.Review, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok || identity.ID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if !identity.IsParent() {
		return nil, apperrors.Forbidden("Only parents can submit reviews")
	}

	req.Comment = sanitizer.NormalizeText(req.Comment)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Review validation failed",
			"parent_id", identity.ID,
			"babysitter_id", babysitterID,
			"error", err,
		)
		return nil, apperrors.ValidationFields("Review validation failed", err)
	}

	if err := s.babysitterExists(ctx, babysitterID); err != nil {
		return nil, err
	}

	// The unique index still decides concurrent inserts.
	reviewed, err := s.repo.HasReviewed(ctx, babysitterID, identity.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to check for an existing review",
			"parent_id", identity.ID,
			"babysitter_id", babysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create review", err)
	}
	if reviewed {
		s.cfg.Log.Warn("Duplicate review rejected",
			"parent_id", identity.ID,
			"babysitter_id", babysitterID,
		)
		return nil, apperrors.Conflict(duplicateReview)
	}

	review := &model.Review{
		BabysitterID: babysitterID,
		ParentID:     identity.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, reviewserrors.ErrDuplicate) {
			s.cfg.Log.Warn("Duplicate review rejected",
				"parent_id", identity.ID,
				"babysitter_id", babysitterID,
			)
			return nil, apperrors.Conflict(duplicateReview)
		}
		s.cfg.Log.Error("Failed to create review",
			"parent_id", identity.ID,
			"babysitter_id", babysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create review", err)
	}

	s.cfg.Log.Info("Review created successfully",
		"id", review.ID,
		"parent_id", review.ParentID,
		"babysitter_id", review.BabysitterID,
		"rating", review.Rating,
	)

	// The ratings worker re-runs the recompute from the published event.
	if _, err := s.RecomputeRating(ctx, babysitterID); err != nil {
		s.cfg.Log.Error("Rating recompute failed after review insert",
			"babysitter_id", babysitterID,
			"review_id", review.ID,
			"error", err,
		)
	}

	s.attach(ctx, review)
	s.publisher.Publish(ctx, events.NewReviewEvent(review))

	return review, nil
}

func (s *reviewService) ListByBabysitter(ctx context.Context, babysitterID string) ([]*model.Review, error) {
	if err := s.babysitterExists(ctx, babysitterID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.FindByBabysitter(ctx, babysitterID, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews",
			"babysitter_id", babysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	s.attach(ctx, reviews...)
	return reviews, nil
}

func (s *reviewService) RecomputeRating(ctx context.Context, babysitterID string) (*model.RatingAggregate, error) {
	sum, count, err := s.repo.RatingTotals(ctx, babysitterID)
	if err != nil {
		return nil, apperrors.Internal("Failed to read review ratings", err)
	}

	aggregate := model.NewRatingAggregate(sum, count)
	if err := s.repo.SaveAggregate(ctx, babysitterID, aggregate); err != nil {
		if errors.Is(err, reviewserrors.ErrBabysitterNotFound) || errors.Is(err, reviewserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Babysitter", babysitterID)
		}
		return nil, apperrors.Internal("Failed to save rating aggregate", err)
	}

	s.cfg.Log.Info("Babysitter rating recomputed",
		"babysitter_id", babysitterID,
		"rating", aggregate.Rating,
		"total_reviews", aggregate.TotalReviews,
	)
	return &aggregate, nil
}

func (s *reviewService) babysitterExists(ctx context.Context, babysitterID string) error {
	if babysitterID == "" {
		return apperrors.InvalidInput("Babysitter ID cannot be empty")
	}

	if err := s.directory.BabysitterExists(ctx, babysitterID); err != nil {
		if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrInvalidID) {
			return apperrors.NotFoundWithID("Babysitter", babysitterID)
		}
		s.cfg.Log.Error("Failed to check babysitter",
			"babysitter_id", babysitterID,
			"error", err,
		)
		return apperrors.Internal("Failed to check babysitter", err)
	}
	return nil
}

func (s *reviewService) attach(ctx context.Context, reviews ...*model.Review) {
	if err := s.directory.AttachReviewParents(ctx, reviews...); err != nil {
		s.cfg.Log.Error("Failed to attach review parents",
			"count", len(reviews),
			"error", err,
		)
	}
}
