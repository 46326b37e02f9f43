package restock

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// RequesterFunc resolves the authenticated user id for a request.
type RequesterFunc func(r *http.Request) (int64, bool)

// Handler exposes the restock workflow endpoints.
type Handler struct {
	service   Service
	requester RequesterFunc
}

func NewHandler(service Service, requester RequesterFunc) *Handler {
	return &Handler{service: service, requester: requester}
}

// RegisterRoutes mounts the restock routes. Delivery confirmation is gated
// behind requireManager; requesting stock needs any authenticated role.
func (h *Handler) RegisterRoutes(r chi.Router, requireManager func(http.Handler) http.Handler) {
	r.Post("/inventory/order", h.request)
	r.Get("/restock/orders", h.listOrders)
	r.Get("/restock/deliveries", h.listDeliveries)
	r.With(requireManager).Post("/restock/orders/{id}/deliver", h.deliver)
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(r)
	if !ok {
		api.Error(w, apperr.New(apperr.Unauthenticated, "invalid or expired token"))
		return
	}
	var req RequestOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.New(apperr.Invalid, "invalid request body"))
		return
	}
	order, err := h.service.RequestOrder(r.Context(), requesterID, &req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, map[string]interface{}{"order": order})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOpenOrders(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *Handler) listDeliveries(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.service.ListDeliveries(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"deliveries": deliveries})
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request) {
	restockID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.Error(w, apperr.New(apperr.Invalid, "invalid restock id"))
		return
	}
	var req DeliverRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, apperr.New(apperr.Invalid, "invalid request body"))
			return
		}
	}
	delivery, err := h.service.Deliver(r.Context(), restockID, &req)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"delivery": delivery})
}
