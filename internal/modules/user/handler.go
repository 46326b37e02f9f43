package user

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// ActorFunc extracts the authenticated caller from the request context. It is
// provided by the auth module at wiring time.
type ActorFunc func(r *http.Request) (Actor, bool)

type Handler struct {
	service Service
	actorOf ActorFunc
}

func NewHandler(service Service, actorOf ActorFunc) *Handler {
	return &Handler{service: service, actorOf: actorOf}
}

// RegisterRoutes mounts the user routes onto an authenticated router.
// requireManager and requireAdmin wrap the role-gated routes.
func (h *Handler) RegisterRoutes(r chi.Router, requireManager, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/me", h.me)
	r.With(requireManager).Get("/users", h.list)
	r.With(requireManager).Post("/users", h.create)
	r.Patch("/users/{id}", h.update)
	r.With(requireAdmin).Delete("/users/{id}", h.remove)
	r.Post("/users/{id}/avatar", h.uploadAvatar)
	r.Delete("/users/{id}/avatar", h.removeAvatar)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorOf(r)
	if !ok {
		api.Error(w, apperr.New(apperr.Unauthenticated, "missing bearer token"))
		return
	}
	u, err := h.service.GetUser(r.Context(), actor.UserID)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	if users == nil {
		users = []*User{}
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.actorOf(r)
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}
	u, err := h.service.CreateUser(r.Context(), actor, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, map[string]interface{}{"user": u})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.actorOf(r)
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}
	u, err := h.service.UpdateUser(r.Context(), actor, id, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.actorOf(r)
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.actorOf(r)
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarBytes+4096)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "avatar file is required", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarBytes+1))
	if err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "could not read avatar upload", err))
		return
	}

	u, err := h.service.UploadAvatar(r.Context(), actor, id, data)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) removeAvatar(w http.ResponseWriter, r *http.Request) {
	actor, _ := h.actorOf(r)
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	u, err := h.service.RemoveAvatar(r.Context(), actor, id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"user": u})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.Invalid, "invalid user id")
	}
	return id, nil
}
