package handler

import (
	"net/http"

	"sitterhub/internal/reservations/service"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, auth *middleware.Authenticator, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationCreate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req model.ReservationStatusUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Reservation cancelled successfully", reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Reservation deleted successfully", nil); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteMessage", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.auth.Authenticate(h.Create))
	router.GET("/api/v1/reservations", h.auth.Authenticate(h.List))
	router.PATCH("/api/v1/reservations/:id/status", h.auth.Authenticate(h.UpdateStatus))
	router.PATCH("/api/v1/reservations/:id/cancel", h.auth.Authenticate(h.Cancel))
	router.DELETE("/api/v1/reservations/:id", h.auth.Authenticate(h.Delete))
}
