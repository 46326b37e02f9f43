package insight

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the /ask endpoint.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask", h.ask)
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, apperr.New(apperr.Invalid, "invalid request body"))
		return
	}
	answer, err := h.service.Ask(r.Context(), req.Question)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.QueryFailed:
			api.ErrorDetail(w, http.StatusInternalServerError, "query failed", causeMessage(err))
		case apperr.Generation:
			api.ErrorDetail(w, http.StatusInternalServerError, "failed to generate SQL", causeMessage(err))
		default:
			api.Error(w, err)
		}
		return
	}
	api.Respond(w, http.StatusOK, answer)
}

func causeMessage(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return apperr.Message(err)
}
