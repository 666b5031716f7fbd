package handler

import (
	"net/http"

	"sitterhub/internal/reviews/service"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, auth *middleware.Authenticator, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.ReviewCreate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	review, err := h.service.Create(r.Context(), ps.ByName("babysitterId"), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := httputil.SuccessResponse{Success: true, Message: "Review submitted successfully", Data: review}
	if err := httputil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteJSON", "error", err)
	}
}

func (h *ReviewHandler) ListByBabysitter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ListByBabysitter(r.Context(), ps.ByName("babysitterId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByBabysitter", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByBabysitter", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reviews/:babysitterId", h.auth.Authenticate(h.Create))
	router.GET("/api/v1/reviews/babysitter/:babysitterId", h.ListByBabysitter)
}
