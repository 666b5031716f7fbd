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
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAccountService struct {
	signupFunc      func(ctx context.Context, req *model.Signup) (*model.AuthResult, error)
	loginFunc       func(ctx context.Context, req *model.Login) (*model.AuthResult, error)
	logoutFunc      func(ctx context.Context) error
	profileFunc     func(ctx context.Context) (any, error)
	updateFunc      func(ctx context.Context, req *model.BabysitterUpdate) (any, error)
	addFavoriteFunc func(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error)
	favoritesFunc   func(ctx context.Context) ([]*model.BabysitterCard, error)
	dashboardFunc   func(ctx context.Context) (*model.ParentDashboard, error)
}

func (m *mockAccountService) Signup(ctx context.Context, req *model.Signup) (*model.AuthResult, error) {
	return m.signupFunc(ctx, req)
}

func (m *mockAccountService) Login(ctx context.Context, req *model.Login) (*model.AuthResult, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAccountService) Logout(ctx context.Context) error {
	return m.logoutFunc(ctx)
}

func (m *mockAccountService) Profile(ctx context.Context) (any, error) {
	return m.profileFunc(ctx)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, req *model.BabysitterUpdate) (any, error) {
	return m.updateFunc(ctx, req)
}

func (m *mockAccountService) AddFavorite(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error) {
	return m.addFavoriteFunc(ctx, babysitterID)
}

func (m *mockAccountService) Favorites(ctx context.Context) ([]*model.BabysitterCard, error) {
	return m.favoritesFunc(ctx)
}

func (m *mockAccountService) Dashboard(ctx context.Context) (*model.ParentDashboard, error) {
	return m.dashboardFunc(ctx)
}

func newRouter(svc *mockAccountService, revocations auth.RevocationStore) (*httprouter.Router, *auth.TokenManager) {
	tokens := auth.NewTokenManager("account-handler-secret-0123456789", time.Hour)
	router := httprouter.New()
	authenticator := middleware.NewAuthenticator(tokens, revocations, logger.Discard())
	NewAccountHandler(svc, authenticator, logger.Discard()).RegisterRoutes(router)
	return router, tokens
}

func bearer(t *testing.T, tokens *auth.TokenManager, id string, role model.Role) string {
	t.Helper()
	token, err := tokens.Issue(id, role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + token
}

func TestSignup_Created(t *testing.T) {
	svc := &mockAccountService{
		signupFunc: func(ctx context.Context, req *model.Signup) (*model.AuthResult, error) {
			if req.Email != "sam@example.com" || req.Role != model.RoleBabysitter {
				t.Errorf("req = %+v", req)
			}
			return &model.AuthResult{Token: "tok", User: model.AccountUser{ID: "b1", Role: req.Role}}, nil
		},
	}
	router, _ := newRouter(svc, nil)

	body := `{"name":"Sam","email":"sam@example.com","password":"secret1","role":"babysitter"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    model.AuthResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != "Account created successfully" || resp.Data.Token != "tok" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	svc := &mockAccountService{
		loginFunc: func(ctx context.Context, req *model.Login) (*model.AuthResult, error) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		},
	}
	router, _ := newRouter(svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.co","password":"x"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLogout_TokenRejectedAfterwards(t *testing.T) {
	revocations := auth.NewInMemoryRevocationStore(time.Minute)
	defer revocations.Stop()

	svc := &mockAccountService{
		logoutFunc: func(ctx context.Context) error {
			identity, _ := auth.FromContext(ctx)
			return revocations.Revoke(ctx, identity.TokenID, time.Unix(identity.ExpireAt, 0))
		},
		profileFunc: func(ctx context.Context) (any, error) {
			return &model.Parent{ID: "p1"}, nil
		},
	}
	router, tokens := newRouter(svc, revocations)
	header := bearer(t, tokens, "p1", model.RoleParent)

	do := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(http.MethodGet, "/api/v1/profile"); code != http.StatusOK {
		t.Fatalf("profile before logout = %d", code)
	}
	if code := do(http.MethodPost, "/api/v1/auth/logout"); code != http.StatusOK {
		t.Fatalf("logout = %d", code)
	}
	if code := do(http.MethodGet, "/api/v1/profile"); code != http.StatusUnauthorized {
		t.Errorf("profile after logout = %d, want 401", code)
	}
}

func TestParentRoutes_RequireParent(t *testing.T) {
	svc := &mockAccountService{
		addFavoriteFunc: func(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error) {
			return []*model.BabysitterCard{{ID: babysitterID}}, nil
		},
		favoritesFunc: func(ctx context.Context) ([]*model.BabysitterCard, error) {
			return []*model.BabysitterCard{}, nil
		},
		dashboardFunc: func(ctx context.Context) (*model.ParentDashboard, error) {
			return &model.ParentDashboard{}, nil
		},
	}
	router, tokens := newRouter(svc, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/parents/favorites/64b000000000000000000002"},
		{http.MethodGet, "/api/v1/parents/favorites"},
		{http.MethodGet, "/api/v1/parents/dashboard"},
	}
	roles := []struct {
		role model.Role
		want int
	}{
		{"", http.StatusUnauthorized},
		{model.RoleBabysitter, http.StatusForbidden},
		{model.RoleParent, http.StatusOK},
	}

	for _, route := range routes {
		for _, tt := range roles {
			req := httptest.NewRequest(route.method, route.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, tokens, "u1", tt.role))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("%s %s as %q = %d, want %d", route.method, route.path, tt.role, rec.Code, tt.want)
			}
		}
	}
}

func TestAddFavorite_Message(t *testing.T) {
	svc := &mockAccountService{
		addFavoriteFunc: func(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error) {
			return []*model.BabysitterCard{{ID: babysitterID, Name: "Sam"}}, nil
		},
	}
	router, tokens := newRouter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parents/favorites/b9", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "p1", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Added to favorites") || !strings.Contains(rec.Body.String(), `"id":"b9"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUpdateProfile_MalformedJSON(t *testing.T) {
	router, tokens := newRouter(&mockAccountService{}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", strings.NewReader(`{"name":`))
	req.Header.Set("Authorization", bearer(t, tokens, "p1", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
