package handler

import (
	"net/http"

	"sitterhub/internal/accounts/service"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AccountHandler struct {
	service service.AccountService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAccountHandler(service service.AccountService, auth *middleware.Authenticator, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *AccountHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AccountHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.Signup
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Signup", err)
		return
	}

	result, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "Signup", err)
		return
	}

	resp := httputil.SuccessResponse{
		Success: true,
		Message: "Account created successfully",
		Data:    result,
	}
	if err := httputil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "operation", "WriteJSON", "error", err)
	}
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.Login
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Login", err)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "Login", err)
		return
	}

	h.writeSuccess(w, "Login", result)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.writeError(w, r, "Logout", err)
		return
	}

	if err := httputil.WriteMessage(w, "Logged out successfully", nil); err != nil {
		h.log.Error("failed to write message response", "handler", "Logout", "operation", "WriteMessage", "error", err)
	}
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	profile, err := h.service.Profile(r.Context())
	if err != nil {
		h.writeError(w, r, "Profile", err)
		return
	}

	h.writeSuccess(w, "Profile", profile)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BabysitterUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "UpdateProfile", err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "UpdateProfile", err)
		return
	}

	if err := httputil.WriteMessage(w, "Profile updated successfully", profile); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateProfile", "operation", "WriteMessage", "error", err)
	}
}

func (h *AccountHandler) AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	favorites, err := h.service.AddFavorite(r.Context(), ps.ByName("babysitterId"))
	if err != nil {
		h.writeError(w, r, "AddFavorite", err)
		return
	}

	if err := httputil.WriteMessage(w, "Added to favorites", favorites); err != nil {
		h.log.Error("failed to write message response", "handler", "AddFavorite", "operation", "WriteMessage", "error", err)
	}
}

func (h *AccountHandler) Favorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	favorites, err := h.service.Favorites(r.Context())
	if err != nil {
		h.writeError(w, r, "Favorites", err)
		return
	}

	h.writeSuccess(w, "Favorites", favorites)
}

func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, "Dashboard", err)
		return
	}

	h.writeSuccess(w, "Dashboard", dashboard)
}

func (h *AccountHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/signup", h.Signup)
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/logout", h.auth.Authenticate(h.Logout))

	router.GET("/api/v1/profile", h.auth.Authenticate(h.Profile))
	router.PATCH("/api/v1/profile", h.auth.Authenticate(h.UpdateProfile))

	router.GET("/api/v1/parents/favorites", h.auth.RequireRole(model.RoleParent, h.Favorites))
	router.POST("/api/v1/parents/favorites/:babysitterId", h.auth.RequireRole(model.RoleParent, h.AddFavorite))
	router.GET("/api/v1/parents/dashboard", h.auth.RequireRole(model.RoleParent, h.Dashboard))
}
