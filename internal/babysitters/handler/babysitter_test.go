package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sitterhub/pkg/auth"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBabysitterService struct {
	listFunc      func(ctx context.Context, address string) (*model.BabysitterListing, error)
	searchFunc    func(ctx context.Context, search *model.BabysitterSearch) ([]*model.Babysitter, int64, error)
	getByIDFunc   func(ctx context.Context, id string) (*model.BabysitterDetail, error)
	setAvailFunc  func(ctx context.Context, req *model.AvailabilityUpdate) (*model.Babysitter, error)
	dashboardFunc func(ctx context.Context) (*model.BabysitterDashboard, error)
}

func (m *mockBabysitterService) List(ctx context.Context, address string) (*model.BabysitterListing, error) {
	return m.listFunc(ctx, address)
}

func (m *mockBabysitterService) Search(ctx context.Context, search *model.BabysitterSearch) ([]*model.Babysitter, int64, error) {
	return m.searchFunc(ctx, search)
}

func (m *mockBabysitterService) GetByID(ctx context.Context, id string) (*model.BabysitterDetail, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBabysitterService) SetAvailability(ctx context.Context, req *model.AvailabilityUpdate) (*model.Babysitter, error) {
	return m.setAvailFunc(ctx, req)
}

func (m *mockBabysitterService) Dashboard(ctx context.Context) (*model.BabysitterDashboard, error) {
	return m.dashboardFunc(ctx)
}

func newRouter(svc *mockBabysitterService) (*httprouter.Router, *auth.TokenManager) {
	tokens := auth.NewTokenManager("babysitter-handler-secret-0123456789", time.Hour)
	router := httprouter.New()
	NewBabysitterHandler(svc, middleware.NewAuthenticator(tokens, nil, logger.Discard()), logger.Discard()).RegisterRoutes(router)
	return router, tokens
}

func TestSearch_ParsesQuery(t *testing.T) {
	svc := &mockBabysitterService{
		searchFunc: func(ctx context.Context, s *model.BabysitterSearch) ([]*model.Babysitter, int64, error) {
			if s.Location != "Lyon" || *s.MinPrice != 10 || *s.MaxPrice != 25 || *s.Experience != 2 || !*s.Available || *s.MinRating != 4 {
				t.Errorf("search = %+v", s)
			}
			if len(s.Skills) != 2 || s.Skills[1] != "cooking" {
				t.Errorf("skills = %v", s.Skills)
			}
			s.Page, s.Limit = 2, 5
			return []*model.Babysitter{{ID: "b1"}}, 11, nil
		},
	}
	router, _ := newRouter(svc)

	url := "/api/v1/babysitters/search?location=Lyon&min_price=10&max_price=25&experience=2&available=true&skills=first%20aid,cooking&rating=4&page=2&limit=5"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data struct {
			Babysitters []model.Babysitter `json:"babysitters"`
			Pagination  struct {
				Total int64 `json:"total"`
				Page  int   `json:"page"`
				Pages int   `json:"pages"`
			} `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p := body.Data.Pagination; p.Total != 11 || p.Page != 2 || p.Pages != 3 {
		t.Errorf("pagination = %+v", p)
	}
}

func TestSearch_BadNumber(t *testing.T) {
	router, _ := newRouter(&mockBabysitterService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/babysitters/search?min_price=cheap", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetByID_RoutesDetail(t *testing.T) {
	svc := &mockBabysitterService{
		getByIDFunc: func(ctx context.Context, id string) (*model.BabysitterDetail, error) {
			return &model.BabysitterDetail{Babysitter: &model.Babysitter{ID: id, PasswordHash: "secret"}}, nil
		},
	}
	router, _ := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/babysitters/64b000000000000000000002", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret") || strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks the password hash: %s", rec.Body.String())
	}
}

func TestDashboard_RequiresBabysitter(t *testing.T) {
	svc := &mockBabysitterService{
		dashboardFunc: func(ctx context.Context) (*model.BabysitterDashboard, error) {
			return &model.BabysitterDashboard{Available: true}, nil
		},
	}
	router, tokens := newRouter(svc)

	tests := []struct {
		name       string
		role       model.Role
		wantStatus int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"parent", model.RoleParent, http.StatusForbidden},
		{"babysitter", model.RoleBabysitter, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/babysitters/dashboard", nil)
			if tt.role != "" {
				token, err := tokens.Issue("64b000000000000000000002", tt.role)
				if err != nil {
					t.Fatalf("issue: %v", err)
				}
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSetAvailability(t *testing.T) {
	svc := &mockBabysitterService{
		setAvailFunc: func(ctx context.Context, req *model.AvailabilityUpdate) (*model.Babysitter, error) {
			return &model.Babysitter{ID: "b1", Available: *req.Available}, nil
		},
	}
	router, tokens := newRouter(svc)
	token, _ := tokens.Issue("b1", model.RoleBabysitter)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/babysitters/availability", strings.NewReader(`{"available":false}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"available":false`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
