package service

import (
	"context"
	"errors"
	"fmt"

	"sitterhub/internal/directory"
	reservationserrors "sitterhub/internal/reservations/errors"
	"sitterhub/internal/reservations/repository"
	"sitterhub/internal/reservations/validator"
	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/events"
	"sitterhub/pkg/model"
	"sitterhub/pkg/sanitizer"
	"sitterhub/pkg/validation"
)

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error)
	List(ctx context.Context) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, req *model.ReservationStatusUpdate) (*model.Reservation, error)
	Cancel(ctx context.Context, id string) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// PartyDirectory is the slice of the account directory reservations need.
type PartyDirectory interface {
	BabysitterRate(ctx context.Context, babysitterID string) (float64, error)
	AttachReservationParties(ctx context.Context, reservations ...*model.Reservation) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	directory PartyDirectory
	validator *validator.ReservationValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	directory PartyDirectory,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		directory: directory,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func caller(ctx context.Context) (auth.Identity, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok || identity.ID == "" {
		return auth.Identity{}, apperrors.Unauthorized("Authentication required")
	}
	return identity, nil
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	req.BabysitterID = sanitizer.TrimAndNormalize(req.BabysitterID)
	req.Description = sanitizer.NormalizeText(req.Description)

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed",
			"parent_id", identity.ID,
			"babysitter_id", req.BabysitterID,
			"error", err,
		)
		return nil, apperrors.ValidationFields("Reservation validation failed", err)
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.ValidationFields("Reservation validation failed", validation.ValidationErrors{
			{Field: "date", Message: err.Error()},
		})
	}

	rate, err := s.directory.BabysitterRate(ctx, req.BabysitterID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Babysitter", req.BabysitterID)
		}
		s.cfg.Log.Error("Failed to read babysitter rate",
			"babysitter_id", req.BabysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	reservation := &model.Reservation{
		BabysitterID: req.BabysitterID,
		ParentID:     identity.ID,
		Date:         date,
		Time:         req.Time,
		Duration:     req.Duration,
		Total:        rate * float64(req.Duration),
		Status:       model.StatusPending,
		Description:  req.Description,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		s.cfg.Log.Error("Failed to create reservation",
			"parent_id", identity.ID,
			"babysitter_id", req.BabysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"parent_id", reservation.ParentID,
		"babysitter_id", reservation.BabysitterID,
		"total", reservation.Total,
	)

	s.attach(ctx, reservation)
	s.publisher.Publish(ctx, events.NewReservationEvent(events.ReservationCreated, reservation, ""))

	return reservation, nil
}

func (s *reservationService) List(ctx context.Context) ([]*model.Reservation, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.FindByParty(ctx, identity.Role, identity.ID, repository.SortByDate, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations",
			"user_id", identity.ID,
			"role", identity.Role,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	s.attach(ctx, reservations...)
	return reservations, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, req *model.ReservationStatusUpdate) (*model.Reservation, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if !identity.IsBabysitter() {
		return nil, apperrors.Forbidden("Only babysitters can update reservation status")
	}

	existing, err := s.load(ctx, id, identity, ActionTransition)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateStatusUpdate(req); err != nil {
		s.cfg.Log.Warn("Reservation status validation failed",
			"id", id,
			"status", req.Status,
			"error", err,
		)
		return nil, apperrors.ValidationFields("Reservation status validation failed", err)
	}

	updated, err := s.transition(ctx, existing, req.Status)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewReservationEvent(events.ReservationStatusChanged, updated, existing.Status))
	return updated, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string) (*model.Reservation, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.load(ctx, id, identity, ActionCancel)
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, existing, model.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewReservationEvent(events.ReservationCancelled, updated, existing.Status))
	return updated, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	identity, err := caller(ctx)
	if err != nil {
		return err
	}

	existing, err := s.load(ctx, id, identity, ActionDelete)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to delete reservation",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.cfg.Log.Info("Reservation deleted successfully",
		"id", id,
		"deleted_by", identity.ID,
	)

	s.publisher.Publish(ctx, events.NewReservationEvent(events.ReservationDeleted, existing, existing.Status))
	return nil
}

// load fetches the reservation and runs the ownership predicate for action.
func (s *reservationService) load(ctx context.Context, id string, identity auth.Identity, action Action) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to get reservation by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	if !Owns(identity, existing, action) {
		s.cfg.Log.Warn("Reservation access denied",
			"id", id,
			"user_id", identity.ID,
			"action", action,
		)
		return nil, apperrors.Forbidden(fmt.Sprintf("You are not allowed to %s this reservation", action))
	}

	return existing, nil
}

func (s *reservationService) transition(ctx context.Context, existing *model.Reservation, to model.ReservationStatus) (*model.Reservation, error) {
	from := existing.Status
	if !from.CanTransitionTo(to) {
		return nil, invalidTransition(existing.ID, from, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, existing.ID, from, to)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Reservation status was changed by another request").WithDetails(map[string]any{
				"from": from,
				"to":   to,
			})
		}
		s.cfg.Log.Error("Failed to update reservation status",
			"id", existing.ID,
			"from", from,
			"to", to,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to update reservation status", err)
	}

	s.cfg.Log.Info("Reservation status updated successfully",
		"id", updated.ID,
		"from", from,
		"to", to,
	)

	s.attach(ctx, updated)
	return updated, nil
}

func invalidTransition(id string, from, to model.ReservationStatus) error {
	return apperrors.Conflict(fmt.Sprintf("Cannot change reservation status from %s to %s", from, to)).WithDetails(map[string]any{
		"id":   id,
		"from": from,
		"to":   to,
	})
}

// attach adds party summaries. A lookup failure degrades to a response without them.
func (s *reservationService) attach(ctx context.Context, reservations ...*model.Reservation) {
	if err := s.directory.AttachReservationParties(ctx, reservations...); err != nil {
		s.cfg.Log.Error("Failed to attach reservation parties",
			"count", len(reservations),
			"error", err,
		)
	}
}
