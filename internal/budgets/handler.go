package budgets

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, budgets)
}

// HandleGetByEvent fetches the budget for an event, creating an empty one
// on first access. It never 404s.
func (h *Handler) HandleGetByEvent(w http.ResponseWriter, r *http.Request) {
	budget, err := h.service.GetOrCreate(r.Context(), r.PathValue("eventID"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, budget)
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, err := h.service.Upsert(r.Context(), r.PathValue("eventID"), budget)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, stored)
}
