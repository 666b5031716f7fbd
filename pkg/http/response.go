package http

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "sitterhub/pkg/errors"
)

type diagnosticsKey struct{}

// WithDiagnostics marks the request so that error responses carry the
// underlying cause in the debug field.
func WithDiagnostics(ctx context.Context) context.Context {
	return context.WithValue(ctx, diagnosticsKey{}, true)
}

func diagnosticsEnabled(r *http.Request) bool {
	if r == nil {
		return false
	}
	enabled, _ := r.Context().Value(diagnosticsKey{}).(bool)
	return enabled
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, Pages: pages}
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, r *http.Request, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), appErr.ToResponse(diagnosticsEnabled(r)))
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func WriteMessage(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
