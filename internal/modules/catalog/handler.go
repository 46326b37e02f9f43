package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes product HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.listActive)
	r.Get("/products/inactive", h.listInactive)
	r.Post("/products", h.create)
	r.Patch("/products/{id}", h.update)
	r.Delete("/products/{id}", h.deactivate)
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *Handler) listInactive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, active bool) {
	products, err := h.service.ListProducts(r.Context(), active)
	if err != nil {
		api.Error(w, err)
		return
	}
	if products == nil {
		products = []*Product{}
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, map[string]interface{}{"product": p})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"product": p})
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeactivateProduct(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.Invalid, "invalid product id")
	}
	return id, nil
}
