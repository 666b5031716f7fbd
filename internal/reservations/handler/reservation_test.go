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

type mockReservationService struct {
	createFunc       func(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error)
	listFunc         func(ctx context.Context) ([]*model.Reservation, error)
	updateStatusFunc func(ctx context.Context, id string, req *model.ReservationStatusUpdate) (*model.Reservation, error)
	cancelFunc       func(ctx context.Context, id string) (*model.Reservation, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error) {
	return m.createFunc(ctx, req)
}

func (m *mockReservationService) List(ctx context.Context) ([]*model.Reservation, error) {
	return m.listFunc(ctx)
}

func (m *mockReservationService) UpdateStatus(ctx context.Context, id string, req *model.ReservationStatusUpdate) (*model.Reservation, error) {
	return m.updateStatusFunc(ctx, id, req)
}

func (m *mockReservationService) Cancel(ctx context.Context, id string) (*model.Reservation, error) {
	return m.cancelFunc(ctx, id)
}

func (m *mockReservationService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

const testSecret = "handler-test-secret-handler-test-secret"

func newRouter(svc *mockReservationService) (*httprouter.Router, *auth.TokenManager) {
	tokens := auth.NewTokenManager(testSecret, time.Hour)
	authenticator := middleware.NewAuthenticator(tokens, nil, logger.Discard())
	router := httprouter.New()
	NewReservationHandler(svc, authenticator, logger.Discard()).RegisterRoutes(router)
	return router, tokens
}

func bearer(t *testing.T, tokens *auth.TokenManager, id string, role model.Role) string {
	t.Helper()
	token, err := tokens.Issue(id, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func TestCreate_PassesCallerAndBody(t *testing.T) {
	var gotCaller auth.Identity
	var gotReq *model.ReservationCreate
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error) {
			gotCaller, _ = auth.FromContext(ctx)
			gotReq = req
			return &model.Reservation{ID: "r1", Status: model.StatusPending, Total: 60}, nil
		},
	}
	router, tokens := newRouter(svc)

	body := `{"babysitter_id":"64b000000000000000000002","date":"2026-07-04","time":"19:00","duration":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, tokens, "64b000000000000000000001", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if gotCaller.ID != "64b000000000000000000001" || gotCaller.Role != model.RoleParent {
		t.Errorf("caller = %+v", gotCaller)
	}
	if gotReq.Duration != 4 || gotReq.Time != "19:00" {
		t.Errorf("request = %+v", gotReq)
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    model.Reservation `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data.ID != "r1" || resp.Data.Total != 60 {
		t.Errorf("response = %+v", resp)
	}
}

func TestRoutesRequireAuthentication(t *testing.T) {
	router, _ := newRouter(&mockReservationService{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/reservations"},
		{http.MethodGet, "/api/v1/reservations"},
		{http.MethodPatch, "/api/v1/reservations/r1/status"},
		{http.MethodPatch, "/api/v1/reservations/r1/cancel"},
		{http.MethodDelete, "/api/v1/reservations/r1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestUpdateStatus_ErrorEnvelope(t *testing.T) {
	svc := &mockReservationService{
		updateStatusFunc: func(ctx context.Context, id string, req *model.ReservationStatusUpdate) (*model.Reservation, error) {
			if id != "r1" || req.Status != model.StatusCompleted {
				t.Errorf("unexpected args %s %+v", id, req)
			}
			return nil, apperrors.Conflict("Cannot change reservation status from pending to completed").WithDetails(map[string]any{
				"from": "pending",
				"to":   "completed",
			})
		},
	}
	router, tokens := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/r1/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Authorization", bearer(t, tokens, "64b000000000000000000002", model.RoleBabysitter))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Code != apperrors.CodeConflict || body.Details["from"] != "pending" {
		t.Errorf("body = %+v", body)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	router, tokens := newRouter(&mockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{"duration":`))
	req.Header.Set("Authorization", bearer(t, tokens, "64b000000000000000000001", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDelete_Confirmation(t *testing.T) {
	svc := &mockReservationService{
		deleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	router, tokens := newRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/r1", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "64b000000000000000000001", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Reservation deleted successfully") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreate_StringDuration(t *testing.T) {
	var gotDuration int
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationCreate) (*model.Reservation, error) {
			gotDuration = req.Duration
			return &model.Reservation{ID: "r1", Duration: req.Duration}, nil
		},
	}
	router, tokens := newRouter(svc)

	body := `{"babysitter_id":"64b000000000000000000002","date":"2026-07-04","time":"19:00","duration":"3"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, tokens, "64b000000000000000000001", model.RoleParent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if gotDuration != 3 {
		t.Errorf("duration = %d, want 3", gotDuration)
	}
}
