package service

import (
	"context"
	"errors"
	"sync"
	"time"

	babysitterserrors "sitterhub/internal/babysitters/errors"
	"sitterhub/internal/babysitters/repository"
	"sitterhub/internal/babysitters/validator"
	reservationsrepo "sitterhub/internal/reservations/repository"
	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/locale"
	"sitterhub/pkg/model"
	"sitterhub/pkg/sanitizer"

	"golang.org/x/sync/errgroup"
)

type BabysitterService interface {
	List(ctx context.Context, address string) (*model.BabysitterListing, error)
	// Search normalizes search.Page and search.Limit in place.
	Search(ctx context.Context, search *model.BabysitterSearch) ([]*model.Babysitter, int64, error)
	GetByID(ctx context.Context, id string) (*model.BabysitterDetail, error)
	SetAvailability(ctx context.Context, req *model.AvailabilityUpdate) (*model.Babysitter, error)
	Dashboard(ctx context.Context) (*model.BabysitterDashboard, error)
}

type ReservationReader interface {
	FindByParty(ctx context.Context, role model.Role, partyID string, sort reservationsrepo.SortOrder, limit int) ([]*model.Reservation, error)
	Stats(ctx context.Context, role model.Role, partyID string) (*model.ReservationStats, error)
}

type ReviewReader interface {
	FindByBabysitter(ctx context.Context, babysitterID string, limit int) ([]*model.Review, error)
	RatingTotals(ctx context.Context, babysitterID string) (int, int, error)
}

type PartyDirectory interface {
	AttachReservationParties(ctx context.Context, reservations ...*model.Reservation) error
	AttachReviewParents(ctx context.Context, reviews ...*model.Review) error
}

type babysitterService struct {
	repo         repository.BabysitterRepository
	reservations ReservationReader
	reviews      ReviewReader
	directory    PartyDirectory
	validator    *validator.BabysitterValidator
	cfg          *config.Config
	now          func() time.Time
}

func NewBabysitterService(
	repo repository.BabysitterRepository,
	reservations ReservationReader,
	reviews ReviewReader,
	directory PartyDirectory,
	validator *validator.BabysitterValidator,
	cfg *config.Config,
) BabysitterService {
	return &babysitterService{
		repo:         repo,
		reservations: reservations,
		reviews:      reviews,
		directory:    directory,
		validator:    validator,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *babysitterService) List(ctx context.Context, address string) (*model.BabysitterListing, error) {
	address = sanitizer.NormalizeAddress(address)

	babysitters, err := s.repo.FindByAddress(ctx, address, address != "")
	if err == nil && address != "" && len(babysitters) == 0 {
		babysitters, err = s.repo.FindByAddress(ctx, address, false)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list babysitters",
			"address", address,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve babysitters", err)
	}

	return &model.BabysitterListing{
		Babysitters: babysitters,
		Total:       len(babysitters),
		SearchTerm:  address,
	}, nil
}

func (s *babysitterService) Search(ctx context.Context, search *model.BabysitterSearch) ([]*model.Babysitter, int64, error) {
	search.Location = sanitizer.NormalizeAddress(search.Location)
	search.Skills = sanitizer.NormalizeSkills(search.Skills)
	search.Page = config.NormalizePage(search.Page)
	search.Limit = s.cfg.NormalizePaginationLimit(search.Limit)

	if err := s.validator.ValidateSearch(search); err != nil {
		s.cfg.Log.Warn("Babysitter search validation failed", "error", err)
		return nil, 0, apperrors.ValidationFields("Invalid search parameters", err)
	}

	offset := (search.Page - 1) * search.Limit

	var count int64
	var babysitters []*model.Babysitter
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountSearch(ctx, search)
		if err != nil {
			s.cfg.Log.Error("Failed to count babysitters", "error", err)
			errCount = apperrors.Internal("Failed to count babysitters", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		babysitters, err = s.repo.Search(ctx, search, search.Limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search babysitters",
				"page", search.Page,
				"limit", search.Limit,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search babysitters", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return babysitters, count, nil
}

func (s *babysitterService) GetByID(ctx context.Context, id string) (*model.BabysitterDetail, error) {
	babysitter, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.FindByBabysitter(ctx, id, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to load babysitter reviews",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve babysitter", err)
	}
	if err := s.directory.AttachReviewParents(ctx, reviews...); err != nil {
		s.cfg.Log.Error("Failed to attach review parents", "id", id, "error", err)
	}

	return &model.BabysitterDetail{Babysitter: babysitter, Reviews: reviews}, nil
}

func (s *babysitterService) SetAvailability(ctx context.Context, req *model.AvailabilityUpdate) (*model.Babysitter, error) {
	identity, err := babysitterCaller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateAvailability(req); err != nil {
		return nil, apperrors.ValidationFields("Availability validation failed", err)
	}

	babysitter, err := s.repo.SetAvailable(ctx, identity.ID, *req.Available)
	if err != nil {
		return nil, s.mapLookupError(identity.ID, err)
	}

	s.cfg.Log.Info("Babysitter availability updated successfully",
		"id", identity.ID,
		"available", babysitter.Available,
	)
	return babysitter, nil
}

// Dashboard reads the babysitter's profile, reservations and reviews
// concurrently. Upcoming is judged in the babysitter's local timezone.
func (s *babysitterService) Dashboard(ctx context.Context) (*model.BabysitterDashboard, error) {
	identity, err := babysitterCaller(ctx)
	if err != nil {
		return nil, err
	}
	id := identity.ID

	var (
		babysitter   *model.Babysitter
		reservations []*model.Reservation
		stats        *model.ReservationStats
		reviews      []*model.Review
		ratingSum    int
		reviewCount  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		babysitter, err = s.find(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = s.reservations.FindByParty(gctx, model.RoleBabysitter, id, reservationsrepo.SortByCreated, 0)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reservations.Stats(gctx, model.RoleBabysitter, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.FindByBabysitter(gctx, id, model.RecentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		ratingSum, reviewCount, err = s.reviews.RatingTotals(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to build babysitter dashboard",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to fetch dashboard data", err)
	}

	recent := reservations[:min(model.RecentLimit, len(reservations))]
	upcoming := model.Upcoming(reservations, locale.LocationForPhone(babysitter.Contact), s.now())

	if err := s.directory.AttachReservationParties(ctx, reservations...); err != nil {
		s.cfg.Log.Error("Failed to attach reservation parties", "id", id, "error", err)
	}
	if err := s.directory.AttachReviewParents(ctx, reviews...); err != nil {
		s.cfg.Log.Error("Failed to attach review parents", "id", id, "error", err)
	}

	aggregate := model.NewRatingAggregate(ratingSum, reviewCount)

	return &model.BabysitterDashboard{
		Available:            babysitter.Available,
		UpcomingReservations: upcoming,
		RecentReservations:   recent,
		RecentReviews:        reviews,
		Stats: model.BabysitterStats{
			TotalReservations:         stats.Total,
			UpcomingReservationsCount: len(upcoming),
			TotalReviews:              aggregate.TotalReviews,
			TotalEarnings:             stats.Earnings,
			AverageRating:             aggregate.Rating,
		},
	}, nil
}

func (s *babysitterService) find(ctx context.Context, id string) (*model.Babysitter, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Babysitter ID cannot be empty")
	}

	babysitter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(id, err)
	}
	return babysitter, nil
}

func (s *babysitterService) mapLookupError(id string, err error) error {
	if errors.Is(err, babysitterserrors.ErrNotFound) || errors.Is(err, babysitterserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Babysitter", id)
	}
	s.cfg.Log.Error("Failed to get babysitter by ID",
		"id", id,
		"error", err,
	)
	return apperrors.Internal("Failed to retrieve babysitter", err)
}

func babysitterCaller(ctx context.Context) (auth.Identity, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok || identity.ID == "" {
		return auth.Identity{}, apperrors.Unauthorized("Authentication required")
	}
	if !identity.IsBabysitter() {
		return auth.Identity{}, apperrors.Forbidden("Only babysitters can access this resource")
	}
	return identity, nil
}
