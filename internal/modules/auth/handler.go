package auth

import (
	"encoding/json"
	"net/http"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}
	if req.Email == "" || req.Password == "" {
		api.Error(w, apperr.New(apperr.Invalid, "email and password are required"))
		return
	}

	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.Respond(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}
