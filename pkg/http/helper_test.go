package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/validation"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Hours int    `json:"hours"`
	}

	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "valid", body: `{"name":"Ana","hours":3}`},
		{name: "empty body", body: ``, wantCode: apperrors.CodeInvalidInput},
		{name: "malformed", body: `{"name":`, wantCode: apperrors.CodeInvalidInput},
		{name: "wrong type", body: `{"name":"Ana","hours":"three"}`, wantCode: apperrors.CodeValidation, wantField: "hours"},
		{name: "number for string field", body: `{"name":42}`, wantCode: apperrors.CodeValidation, wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(r, &dst)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("err = %v, want AppError", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
			if tt.wantField == "" {
				return
			}
			if appErr.HTTPStatus != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", appErr.HTTPStatus)
			}
			fields, ok := appErr.Details["fields"].(validation.ValidationErrors)
			if !ok || len(fields) != 1 || fields[0].Field != tt.wantField {
				t.Errorf("fields = %#v, want one entry for %s", appErr.Details["fields"], tt.wantField)
			}
		})
	}
}
