package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "sitterhub/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		diagnostics bool
		wantStatus  int
		wantCode    string
		wantDebug   string
	}{
		{
			name:       "app error keeps its status",
			err:        apperrors.NotFoundWithID("Reservation", "r1"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("Invalid status transition"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("socket closed"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
		},
		{
			name:        "debug only with diagnostics",
			err:         apperrors.Internal("Failed to create review", errors.New("socket closed")),
			diagnostics: true,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.CodeInternal,
			wantDebug:   "socket closed",
		},
		{
			name:       "no debug without diagnostics",
			err:        apperrors.Internal("Failed to create review", errors.New("socket closed")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.diagnostics {
				r = r.WithContext(WithDiagnostics(r.Context()))
			}
			w := httptest.NewRecorder()

			if err := WriteError(w, r, tt.err); err != nil {
				t.Fatalf("WriteError() error = %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body apperrors.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body.Success {
				t.Errorf("expected success=false")
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
			}
			if body.Debug != tt.wantDebug {
				t.Errorf("debug = %q, want %q", body.Debug, tt.wantDebug)
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteSuccess(w, map[string]string{"id": "r1"}); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("missing success flag: %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total       int64
		page, limit int
		wantPages   int
	}{
		{0, 1, 10, 0},
		{10, 1, 10, 1},
		{11, 2, 10, 2},
		{95, 1, 20, 5},
	}
	for _, tt := range tests {
		if got := NewPagination(tt.total, tt.page, tt.limit); got.Pages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).Pages = %d, want %d", tt.total, tt.page, tt.limit, got.Pages, tt.wantPages)
		}
	}
}

func TestDecodeJSONResponseHelpers(t *testing.T) {
	var dst struct {
		Rating int `json:"rating"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":4}`))
	if err := DecodeJSON(r, &dst); err != nil || dst.Rating != 4 {
		t.Errorf("DecodeJSON() = %v, rating %d", err, dst.Rating)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(r, &dst); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input for empty body, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":`))
	if err := DecodeJSON(r, &dst); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input for malformed body, got %v", err)
	}
}

func TestExtractPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=25", nil)
	page, limit, err := ExtractPage(r)
	if err != nil || page != 3 || limit != 25 {
		t.Errorf("ExtractPage() = %d, %d, %v", page, limit, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/?page=x", nil)
	if _, _, err := ExtractPage(r); err == nil {
		t.Errorf("expected error for non-numeric page")
	}
}
