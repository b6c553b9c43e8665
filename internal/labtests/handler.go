package labtests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// Handler serves the lab test catalog endpoints.
type Handler struct {
	catalog Catalog
	logger  *logging.Logger
}

// NewHandler creates a lab tests handler.
func NewHandler(catalog Catalog, logger *logging.Logger) *Handler {
	if catalog == nil {
		catalog = NewStaticCatalog(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: catalog, logger: logger}
}

// Routes mounts the handler under a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/categories", h.ListCategories)
	r.Get("/{testID}", h.GetDetail)
	r.Post("/{testID}/bookings", h.Book)
	return r
}

// List handles GET /api/tests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tests, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list lab tests", "error", err)
		jsonError(w, "failed to list tests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, Render(f, view, Apply(tests, f)))
}

// GetDetail handles GET /api/tests/{testID}
func (h *Handler) GetDetail(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RenderDetail(t))
}

// Book handles POST /api/tests/{testID}/bookings. Test bookings have no
// backend yet, so this only returns the informational notice.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.logger.Info("lab test booking requested", "test_id", t.ID, "test", t.Name)
	writeJSON(w, http.StatusAccepted, RenderBookingNotice(t))
}

// ListCategories handles GET /api/tests/categories
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := append([]Category{CategoryAll}, Categories()...)
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (LabTest, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "testID"))
	if err != nil {
		jsonError(w, "invalid test id", http.StatusBadRequest)
		return LabTest{}, false
	}
	t, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, ErrTestNotFound) {
		jsonError(w, "test not found", http.StatusNotFound)
		return LabTest{}, false
	}
	if err != nil {
		h.logger.Error("failed to load lab test", "error", err, "test_id", id)
		jsonError(w, "failed to load test", http.StatusInternalServerError)
		return LabTest{}, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
