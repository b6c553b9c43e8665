package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

const maxActionBody = 16 << 10

// Handler exposes booking wizards over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("booking: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the wizard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Open)
	r.Get("/{draftID}", h.Get)
	r.Post("/{draftID}/actions/{action}", h.Act)
	r.Delete("/{draftID}", h.Close)
	return r
}

type openRequest struct {
	ProviderID int `json:"provider_id"`
}

// Open handles POST /api/bookings
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxActionBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	d, err := h.service.Open(r.Context(), req.ProviderID)
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, h.service.Wizard().Render(d))
}

// Get handles GET /api/bookings/{draftID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Wizard().Render(d))
}

// Act handles POST /api/bookings/{draftID}/actions/{action}
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxActionBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body", nil)
		return
	}
	d, err := h.service.Apply(r.Context(), chi.URLParam(r, "draftID"), chi.URLParam(r, "action"), payload)
	if err != nil {
		h.fail(w, err, d)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Wizard().Render(d))
}

// Close handles DELETE /api/bookings/{draftID}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Close(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		h.fail(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProviderSlots handles GET /api/doctors/{providerID}/slots?date=YYYY-MM-DD
func (h *Handler) ProviderSlots(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "providerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid provider id", nil)
		return
	}
	slots, err := h.service.ProviderSlots(r.Context(), id, r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

type errorResponse struct {
	Error   string       `json:"error"`
	Fields  []FieldError `json:"fields,omitempty"`
	Booking *View        `json:"booking,omitempty"`
}

func (h *Handler) fail(w http.ResponseWriter, err error, d *Draft) {
	var view *View
	if d != nil {
		v := h.service.Wizard().Render(d)
		view = &v
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Fields: verr.Fields, Booking: view})
	case errors.Is(err, ErrProviderNotFound), errors.Is(err, ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrProviderUnavailable):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ErrUnknownAction), errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error(), view)
	case errors.Is(err, ErrDateRequired), errors.Is(err, ErrTimeRequired), errors.Is(err, ErrPastDate),
		errors.Is(err, ErrWrongStep), errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrCannotGoBack),
		errors.Is(err, ErrConfirmed):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), view)
	default:
		h.logger.Error("booking request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, view *View) {
	writeJSON(w, status, errorResponse{Error: msg, Booking: view})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
