package intentions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fretehub/fretehub/internal/cep"
	"github.com/fretehub/fretehub/pkg/logging"
)

// Handler handles HTTP requests for intentions
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new intentions handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /intention requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	intention, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidZipcode),
			errors.Is(err, cep.ErrMalformed),
			errors.Is(err, cep.ErrInvalid):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, ErrSaveFailed.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, intention)
}

// Associate handles PUT /intention/{id} requests
func (h *Handler) Associate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AssociateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := uuid.Parse(req.LeadID); err != nil {
		writeError(w, http.StatusBadRequest, "lead_id must be a valid UUID")
		return
	}

	// A malformed intention id cannot reference an existing row.
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, ErrIntentionNotFound.Error())
		return
	}

	intention, err := h.service.Associate(r.Context(), id, req.LeadID)
	if err != nil {
		switch {
		case errors.Is(err, ErrIntentionNotFound), errors.Is(err, ErrLeadNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, ErrSaveFailed.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, intention)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"statusCode": status,
		"message":    message,
	})
}
