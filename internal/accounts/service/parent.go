package service

import (
	"context"
	"errors"

	"sitterhub/internal/directory"
	reservationsrepo "sitterhub/internal/reservations/repository"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/locale"
	"sitterhub/pkg/model"

	"golang.org/x/sync/errgroup"
)

func (s *accountService) AddFavorite(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error) {
	identity, err := parentCaller(ctx)
	if err != nil {
		return nil, err
	}
	if babysitterID == "" {
		return nil, apperrors.InvalidInput("Babysitter ID cannot be empty")
	}

	if err := s.directory.BabysitterExists(ctx, babysitterID); err != nil {
		if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Babysitter", babysitterID)
		}
		s.cfg.Log.Error("Failed to check babysitter existence",
			"babysitter_id", babysitterID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to add favorite", err)
	}

	favorites, err := s.repo.AddFavorite(ctx, identity.ID, babysitterID)
	if err != nil {
		return nil, s.mapLookupError("Parent", identity.ID, err)
	}

	cards, err := s.repo.BabysitterCards(ctx, favorites)
	if err != nil {
		s.cfg.Log.Error("Failed to load favorite babysitters", "id", identity.ID, "error", err)
		return nil, apperrors.Internal("Failed to load favorites", err)
	}

	s.cfg.Log.Info("Favorite added successfully",
		"parent_id", identity.ID,
		"babysitter_id", babysitterID,
	)
	return cards, nil
}

func (s *accountService) Favorites(ctx context.Context) ([]*model.BabysitterCard, error) {
	identity, err := parentCaller(ctx)
	if err != nil {
		return nil, err
	}

	parent, err := s.repo.FindParent(ctx, identity.ID)
	if err != nil {
		return nil, s.mapLookupError("Parent", identity.ID, err)
	}

	cards, err := s.repo.BabysitterCards(ctx, parent.Favorites)
	if err != nil {
		s.cfg.Log.Error("Failed to load favorite babysitters", "id", identity.ID, "error", err)
		return nil, apperrors.Internal("Failed to load favorites", err)
	}
	return cards, nil
}

// Dashboard considers the parent's five most recently created
// reservations. Upcoming is judged in the parent's local timezone.
func (s *accountService) Dashboard(ctx context.Context) (*model.ParentDashboard, error) {
	identity, err := parentCaller(ctx)
	if err != nil {
		return nil, err
	}
	id := identity.ID

	var (
		parent       *model.Parent
		reservations []*model.Reservation
		stats        *model.ReservationStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		parent, err = s.repo.FindParent(gctx, id)
		if err != nil {
			return s.mapLookupError("Parent", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reservations, err = s.reservations.FindByParty(gctx, model.RoleParent, id, reservationsrepo.SortByCreated, model.RecentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reservations.Stats(gctx, model.RoleParent, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to build parent dashboard",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to fetch dashboard data", err)
	}

	favorites, err := s.repo.BabysitterCards(ctx, parent.Favorites)
	if err != nil {
		s.cfg.Log.Error("Failed to load favorite babysitters", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to fetch dashboard data", err)
	}

	if err := s.directory.AttachReservationParties(ctx, reservations...); err != nil {
		s.cfg.Log.Error("Failed to attach reservation parties", "id", id, "error", err)
	}

	upcoming := model.Upcoming(reservations, locale.LocationForPhone(parent.Contact), s.now())

	return &model.ParentDashboard{
		RecentReservations:   reservations,
		UpcomingReservations: upcoming,
		Favorites:            favorites,
		Stats: model.ParentStats{
			TotalReservations:         stats.Total,
			UpcomingReservationsCount: len(upcoming),
			FavoritesCount:            len(parent.Favorites),
			TotalHoursBooked:          stats.HoursBooked,
		},
	}, nil
}
