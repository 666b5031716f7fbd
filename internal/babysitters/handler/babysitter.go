package handler

import (
	"net/http"
	"strings"

	"sitterhub/internal/babysitters/service"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BabysitterHandler struct {
	service service.BabysitterService
	auth    *middleware.Authenticator
	log     *logger.Logger

	dashboard httprouter.Handle
}

type searchResponse struct {
	Babysitters []*model.Babysitter `json:"babysitters"`
	Pagination  httputil.Pagination `json:"pagination"`
}

func NewBabysitterHandler(service service.BabysitterService, auth *middleware.Authenticator, log *logger.Logger) *BabysitterHandler {
	h := &BabysitterHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
	h.dashboard = auth.RequireRole(model.RoleBabysitter, h.Dashboard)
	return h
}

func (h *BabysitterHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BabysitterHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listing, err := h.service.List(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		h.writeError(w, r, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, listing); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BabysitterHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	search, err := parseSearch(r)
	if err != nil {
		h.writeError(w, r, "Search", err)
		return
	}

	babysitters, total, err := h.service.Search(r.Context(), search)
	if err != nil {
		h.writeError(w, r, "Search", err)
		return
	}

	resp := searchResponse{
		Babysitters: babysitters,
		Pagination:  httputil.NewPagination(total, search.Page, search.Limit),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func parseSearch(r *http.Request) (*model.BabysitterSearch, error) {
	query := r.URL.Query()
	search := &model.BabysitterSearch{Location: query.Get("location")}

	var err error
	if search.Page, search.Limit, err = httputil.ExtractPage(r); err != nil {
		return nil, err
	}
	if search.MinPrice, err = httputil.QueryFloat(r, "min_price"); err != nil {
		return nil, err
	}
	if search.MaxPrice, err = httputil.QueryFloat(r, "max_price"); err != nil {
		return nil, err
	}
	if search.Experience, err = httputil.QueryInt(r, "experience"); err != nil {
		return nil, err
	}
	if search.Available, err = httputil.QueryBool(r, "available"); err != nil {
		return nil, err
	}
	if search.MinRating, err = httputil.QueryFloat(r, "rating"); err != nil {
		return nil, err
	}
	if skills := query.Get("skills"); skills != "" {
		search.Skills = strings.Split(skills, ",")
	}
	return search, nil
}

// GetByID also serves the static search and dashboard paths, which share
// the :id segment in the router tree.
func (h *BabysitterHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch id := ps.ByName("id"); id {
	case "search":
		h.Search(w, r, ps)
	case "dashboard":
		h.dashboard(w, r, ps)
	default:
		detail, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			h.writeError(w, r, "GetByID", err)
			return
		}
		if err := httputil.WriteSuccess(w, detail); err != nil {
			h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *BabysitterHandler) SetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "SetAvailability", err)
		return
	}

	babysitter, err := h.service.SetAvailability(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "SetAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, babysitter); err != nil {
		h.log.Error("failed to write success response", "handler", "SetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BabysitterHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, "Dashboard", err)
		return
	}

	if err := httputil.WriteSuccess(w, dashboard); err != nil {
		h.log.Error("failed to write success response", "handler", "Dashboard", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BabysitterHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/babysitters", h.List)
	router.GET("/api/v1/babysitters/:id", h.GetByID)
	router.PATCH("/api/v1/babysitters/availability", h.auth.RequireRole(model.RoleBabysitter, h.SetAvailability))
}
