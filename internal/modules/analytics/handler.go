package analytics

import (
	"net/http"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the dashboard aggregation endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.salesForDay)
	r.Get("/revenue/monthly", h.monthlyRevenue)
	r.Get("/inventory/worth", h.inventoryWorth)
	r.Get("/inventory/stock-by-category", h.stockByCategory)
}

func (h *Handler) salesForDay(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.SalesForDay(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"totalSales": total})
}

func (h *Handler) monthlyRevenue(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.MonthlyRevenue(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"monthlyTotals": totals})
}

func (h *Handler) inventoryWorth(w http.ResponseWriter, r *http.Request) {
	worth, err := h.service.InventoryWorth(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"totalWorth": worth})
}

func (h *Handler) stockByCategory(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.StockByCategory(r.Context(), r.URL.Query().Get("metric"))
	if err != nil {
		api.Error(w, err)
		return
	}
	labels := make([]string, len(buckets))
	data := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		data[i] = b.Value
	}
	api.Respond(w, http.StatusOK, map[string]interface{}{"labels": labels, "data": data})
}
