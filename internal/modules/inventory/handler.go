package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the inventory dashboard endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.list)
	r.Patch("/inventory/{productID}/vendor", h.setVendorLink)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListInventory(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"inventory": rows})
}

func (h *Handler) setVendorLink(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		api.Error(w, apperr.New(apperr.Invalid, "invalid product id"))
		return
	}
	var req SetVendorLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.New(apperr.Invalid, "invalid request body"))
		return
	}
	link, err := h.service.SetVendorLink(r.Context(), productID, &req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"link": link})
}
