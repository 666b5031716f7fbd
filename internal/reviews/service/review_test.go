package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"sitterhub/internal/directory"
	reviewserrors "sitterhub/internal/reviews/errors"
	"sitterhub/internal/reviews/validator"
	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/events"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
)

const (
	parentID     = "64b000000000000000000001"
	babysitterID = "64b000000000000000000002"
	reviewID     = "64b0000000000000000000bb"
)

type mockReviewRepository struct {
	createFunc        func(ctx context.Context, r *model.Review) error
	reviewedFunc      func(ctx context.Context, babysitterID, parentID string) (bool, error)
	findFunc          func(ctx context.Context, babysitterID string, limit int) ([]*model.Review, error)
	totalsFunc        func(ctx context.Context, babysitterID string) (int, int, error)
	saveAggregateFunc func(ctx context.Context, babysitterID string, a model.RatingAggregate) error
	created           []*model.Review
	saved             []model.RatingAggregate
}

func (m *mockReviewRepository) Create(ctx context.Context, r *model.Review) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, r); err != nil {
			return err
		}
	}
	r.ID = reviewID
	m.created = append(m.created, r)
	return nil
}

func (m *mockReviewRepository) HasReviewed(ctx context.Context, babysitterID, parentID string) (bool, error) {
	if m.reviewedFunc != nil {
		return m.reviewedFunc(ctx, babysitterID, parentID)
	}
	for _, r := range m.created {
		if r.BabysitterID == babysitterID && r.ParentID == parentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepository) FindByBabysitter(ctx context.Context, babysitterID string, limit int) ([]*model.Review, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, babysitterID, limit)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepository) RatingTotals(ctx context.Context, babysitterID string) (int, int, error) {
	if m.totalsFunc != nil {
		return m.totalsFunc(ctx, babysitterID)
	}
	sum := 0
	for _, r := range m.created {
		sum += r.Rating
	}
	return sum, len(m.created), nil
}

func (m *mockReviewRepository) SaveAggregate(ctx context.Context, babysitterID string, a model.RatingAggregate) error {
	if m.saveAggregateFunc != nil {
		if err := m.saveAggregateFunc(ctx, babysitterID, a); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, a)
	return nil
}

type mockDirectory struct {
	existsFunc func(ctx context.Context, id string) error
}

func (m *mockDirectory) BabysitterExists(ctx context.Context, id string) error {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return nil
}

func (m *mockDirectory) AttachReviewParents(ctx context.Context, reviews ...*model.Review) error {
	for _, r := range reviews {
		r.Parent = &model.PartySummary{ID: r.ParentID, Name: "Parent"}
	}
	return nil
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(repo *mockReviewRepository, dir *mockDirectory) (*reviewService, *recordingPublisher) {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	if dir == nil {
		dir = &mockDirectory{}
	}
	pub := &recordingPublisher{}
	return &reviewService{
		repo:      repo,
		directory: dir,
		validator: validator.NewReviewValidator(log),
		publisher: pub,
		cfg:       cfg,
	}, pub
}

func asParent() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{ID: parentID, Role: model.RoleParent})
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with status %d, got %v", want, err)
	}
	if appErr.StatusCode() != want {
		t.Errorf("status = %d, want %d (%v)", appErr.StatusCode(), want, appErr)
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockReviewRepository{}
	svc, pub := newTestService(repo, nil)

	review, err := svc.Create(asParent(), babysitterID, &model.ReviewCreate{
		Rating:  4,
		Comment: "   Very patient and kind   ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.ID != reviewID || review.ParentID != parentID || review.BabysitterID != babysitterID {
		t.Errorf("unexpected review: %+v", review)
	}
	if review.Comment != "Very patient and kind" {
		t.Errorf("comment = %q, want trimmed", review.Comment)
	}
	if review.Parent == nil {
		t.Error("expected parent summary to be attached")
	}
	if len(repo.saved) != 1 || repo.saved[0] != (model.RatingAggregate{Rating: 4, TotalReviews: 1}) {
		t.Errorf("saved aggregates = %+v", repo.saved)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.ReviewCreated || pub.events[0].Key != babysitterID {
		t.Errorf("published = %+v", pub.events)
	}
}

func TestCreate_CheckOrder(t *testing.T) {
	valid := func() *model.ReviewCreate {
		return &model.ReviewCreate{Rating: 5, Comment: "Great with toddlers"}
	}

	tests := []struct {
		name       string
		ctx        context.Context
		req        *model.ReviewCreate
		dir        *mockDirectory
		repo       *mockReviewRepository
		wantStatus int
	}{
		{
			name:       "anonymous",
			ctx:        context.Background(),
			req:        valid(),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "babysitter caller is forbidden before validation",
			ctx:        auth.WithIdentity(context.Background(), auth.Identity{ID: babysitterID, Role: model.RoleBabysitter}),
			req:        &model.ReviewCreate{Rating: 9},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "validation before existence",
			ctx:  asParent(),
			req:  &model.ReviewCreate{Rating: 5, Comment: "   short    "},
			dir: &mockDirectory{existsFunc: func(ctx context.Context, id string) error {
				return fmt.Errorf("%w: %s", directory.ErrNotFound, id)
			}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "babysitter with malformed rating is still forbidden",
			ctx:        auth.WithIdentity(context.Background(), auth.Identity{ID: babysitterID, Role: model.RoleBabysitter}),
			req:        &model.ReviewCreate{Rating: 0, Comment: "Great with toddlers"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed rating",
			ctx:        asParent(),
			req:        &model.ReviewCreate{Rating: 0, Comment: "Great with toddlers"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "rating out of range",
			ctx:        asParent(),
			req:        &model.ReviewCreate{Rating: 6, Comment: "Great with toddlers"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "comment too long",
			ctx:        asParent(),
			req:        &model.ReviewCreate{Rating: 3, Comment: strings.Repeat("x", 501)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "babysitter missing",
			ctx:  asParent(),
			req:  valid(),
			dir: &mockDirectory{existsFunc: func(ctx context.Context, id string) error {
				return fmt.Errorf("%w: %s", directory.ErrNotFound, id)
			}},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "already reviewed",
			ctx:  asParent(),
			req:  valid(),
			repo: &mockReviewRepository{reviewedFunc: func(ctx context.Context, b, p string) (bool, error) {
				return b == babysitterID && p == parentID, nil
			}},
			wantStatus: http.StatusConflict,
		},
		{
			name: "existing review lookup fails",
			ctx:  asParent(),
			req:  valid(),
			repo: &mockReviewRepository{reviewedFunc: func(ctx context.Context, b, p string) (bool, error) {
				return false, errors.New("connection reset")
			}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "duplicate pair",
			ctx:  asParent(),
			req:  valid(),
			repo: &mockReviewRepository{createFunc: func(ctx context.Context, r *model.Review) error {
				return fmt.Errorf("%w: dup", reviewserrors.ErrDuplicate)
			}},
			wantStatus: http.StatusConflict,
		},
		{
			name: "store failure",
			ctx:  asParent(),
			req:  valid(),
			repo: &mockReviewRepository{createFunc: func(ctx context.Context, r *model.Review) error {
				return errors.New("connection reset")
			}},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.repo
			if repo == nil {
				repo = &mockReviewRepository{}
			}
			svc, pub := newTestService(repo, tt.dir)

			_, err := svc.Create(tt.ctx, babysitterID, tt.req)
			assertStatus(t, err, tt.wantStatus)
			if len(pub.events) != 0 {
				t.Errorf("expected no events, got %d", len(pub.events))
			}
		})
	}
}

func TestCreate_CommentTrimmedBeforeLengthCheck(t *testing.T) {
	tests := []struct {
		name       string
		comment    string
		wantStatus int
	}{
		{"nine chars padded", "    Very kind    ", http.StatusUnprocessableEntity},
		{"ten chars padded", "    Very kind!    ", 0},
		{"whitespace only", strings.Repeat(" ", 20), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReviewRepository{}
			svc, _ := newTestService(repo, nil)

			review, err := svc.Create(asParent(), babysitterID, &model.ReviewCreate{Rating: 4, Comment: tt.comment})
			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
				if len(repo.created) != 0 {
					t.Errorf("stored reviews = %d, want 0", len(repo.created))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if review.Comment != "Very kind!" {
				t.Errorf("comment = %q", review.Comment)
			}
		})
	}
}

func TestCreate_SecondReviewFromSameParent(t *testing.T) {
	repo := &mockReviewRepository{}
	svc, pub := newTestService(repo, nil)

	if _, err := svc.Create(asParent(), babysitterID, &model.ReviewCreate{Rating: 5, Comment: "Great with toddlers"}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := svc.Create(asParent(), babysitterID, &model.ReviewCreate{Rating: 1, Comment: "Changed my mind about her"})
	assertStatus(t, err, http.StatusConflict)

	if len(repo.created) != 1 {
		t.Errorf("stored reviews = %d, want 1", len(repo.created))
	}
	if len(repo.saved) != 1 || repo.saved[0].Rating != 5 {
		t.Errorf("saved aggregates = %+v", repo.saved)
	}
	if len(pub.events) != 1 {
		t.Errorf("published = %d, want 1", len(pub.events))
	}
}

func TestCreate_RecomputeFailureDoesNotFailRequest(t *testing.T) {
	repo := &mockReviewRepository{
		totalsFunc: func(ctx context.Context, id string) (int, int, error) {
			return 0, 0, errors.New("aggregate timed out")
		},
	}
	svc, pub := newTestService(repo, nil)

	review, err := svc.Create(asParent(), babysitterID, &model.ReviewCreate{Rating: 2, Comment: "Arrived late twice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review == nil || len(repo.saved) != 0 {
		t.Errorf("review = %+v, saved = %+v", review, repo.saved)
	}
	if len(pub.events) != 1 {
		t.Errorf("expected the review event to still be published, got %d", len(pub.events))
	}
}

func TestRecomputeRating(t *testing.T) {
	tests := []struct {
		name       string
		sum, count int
		saveErr    error
		want       model.RatingAggregate
		wantStatus int
	}{
		{name: "mean rounded to one decimal", sum: 13, count: 3, want: model.RatingAggregate{Rating: 4.3, TotalReviews: 3}},
		{name: "no reviews resets aggregate", sum: 0, count: 0, want: model.RatingAggregate{}},
		{name: "babysitter gone", sum: 5, count: 1, saveErr: reviewserrors.ErrBabysitterNotFound, wantStatus: http.StatusNotFound},
		{name: "write failure", sum: 5, count: 1, saveErr: errors.New("write concern"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReviewRepository{
				totalsFunc: func(ctx context.Context, id string) (int, int, error) {
					return tt.sum, tt.count, nil
				},
				saveAggregateFunc: func(ctx context.Context, id string, a model.RatingAggregate) error {
					return tt.saveErr
				},
			}
			svc, _ := newTestService(repo, nil)

			got, err := svc.RecomputeRating(context.Background(), babysitterID)
			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("aggregate = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestRecomputeRating_Idempotent(t *testing.T) {
	repo := &mockReviewRepository{
		totalsFunc: func(ctx context.Context, id string) (int, int, error) { return 9, 2, nil },
	}
	svc, _ := newTestService(repo, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.RecomputeRating(context.Background(), babysitterID); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	for _, a := range repo.saved {
		if a != (model.RatingAggregate{Rating: 4.5, TotalReviews: 2}) {
			t.Errorf("aggregate = %+v", a)
		}
	}
}

func TestListByBabysitter(t *testing.T) {
	t.Run("missing babysitter", func(t *testing.T) {
		dir := &mockDirectory{existsFunc: func(ctx context.Context, id string) error {
			return fmt.Errorf("%w: %s", directory.ErrInvalidID, id)
		}}
		svc, _ := newTestService(&mockReviewRepository{}, dir)

		_, err := svc.ListByBabysitter(context.Background(), "nope")
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("attaches parents", func(t *testing.T) {
		repo := &mockReviewRepository{
			findFunc: func(ctx context.Context, id string, limit int) ([]*model.Review, error) {
				if limit != 0 {
					t.Errorf("limit = %d, want all", limit)
				}
				return []*model.Review{
					{ID: "r2", ParentID: parentID, BabysitterID: id},
					{ID: "r1", ParentID: parentID, BabysitterID: id},
				}, nil
			},
		}
		svc, _ := newTestService(repo, nil)

		reviews, err := svc.ListByBabysitter(context.Background(), babysitterID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reviews) != 2 || reviews[0].ID != "r2" {
			t.Fatalf("reviews = %+v", reviews)
		}
		for _, r := range reviews {
			if r.Parent == nil || r.Parent.ID != parentID {
				t.Errorf("review %s missing parent summary", r.ID)
			}
		}
	})
}
