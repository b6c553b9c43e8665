package doctors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/healthsense/healthsense-ai/pkg/logging"
)

// Handler serves the provider search endpoints.
type Handler struct {
	catalog Catalog
	logger  *logging.Logger
}

// NewHandler creates a new doctors handler
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
	r.Get("/", h.Search)
	r.Get("/specialties", h.ListSpecialties)
	r.Get("/{providerID}", h.GetProvider)
	return r
}

// HospitalRoutes serves the hospital comparison table built from the catalog.
func (h *Handler) HospitalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListHospitals)
	r.Get("/compare", h.CompareHospitals)
	return r
}

// FilterFromRequest reads the search form from query parameters. The page-load
// "q" parameter pre-fills search when no explicit search term is given.
func FilterFromRequest(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{
		Search:    q.Get("search"),
		Specialty: q.Get("specialty"),
		Location:  q.Get("location"),
	}
	if f.Search == "" {
		f.Search = q.Get("q")
	}
	if v := strings.TrimSpace(q.Get("available")); v != "" {
		// The page sends any non-empty availability option as "only available".
		if b, err := strconv.ParseBool(v); err == nil {
			f.AvailableOnly = b
		} else {
			f.AvailableOnly = true
		}
	}
	return f
}

// Search handles GET /api/doctors
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	providers, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		jsonError(w, "failed to list doctors", http.StatusInternalServerError)
		return
	}
	f := FilterFromRequest(r)
	res := RenderResults(f, Apply(providers, f))
	h.logger.Debug("provider search", "search", f.Search, "specialty", f.Specialty, "count", res.Count)
	writeJSON(w, http.StatusOK, res)
}

// GetProvider handles GET /api/doctors/{providerID}
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "providerID"))
	if err != nil {
		jsonError(w, "invalid provider id", http.StatusBadRequest)
		return
	}
	p, err := h.catalog.Get(r.Context(), id)
	if errors.Is(err, ErrProviderNotFound) {
		jsonError(w, "doctor not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load provider", "error", err, "provider_id", id)
		jsonError(w, "failed to load doctor", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doctor": p,
		"card":   RenderCard(p),
	})
}

// ListHospitals handles GET /api/hospitals
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := HospitalFilter{
		Search:    q.Get("search"),
		Specialty: q.Get("specialty"),
		Location:  q.Get("location"),
	}
	if v := strings.TrimSpace(q.Get("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			jsonError(w, "rating must be a number between 0 and 5", http.StatusBadRequest)
			return
		}
		f.MinRating = rating
	}
	all, ok := h.hospitals(w, r)
	if !ok {
		return
	}
	list := FilterHospitals(all, f)
	writeJSON(w, http.StatusOK, map[string]any{
		"filter":    f,
		"count":     len(list),
		"hospitals": list,
	})
}

// CompareHospitals handles GET /api/hospitals/compare?names=A,B
func (h *Handler) CompareHospitals(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, n := range strings.Split(r.URL.Query().Get("names"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) < 2 {
		jsonError(w, "at least 2 hospitals required for comparison", http.StatusBadRequest)
		return
	}
	all, ok := h.hospitals(w, r)
	if !ok {
		return
	}
	rows := make([]Hospital, 0, len(names))
	for _, name := range names {
		row, found := findHospital(all, name)
		if !found {
			jsonError(w, "hospital not found: "+name, http.StatusNotFound)
			return
		}
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"hospitals": rows})
}

func (h *Handler) hospitals(w http.ResponseWriter, r *http.Request) ([]Hospital, bool) {
	providers, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		jsonError(w, "failed to list hospitals", http.StatusInternalServerError)
		return nil, false
	}
	return Hospitals(providers), true
}

func findHospital(list []Hospital, name string) (Hospital, bool) {
	for _, h := range list {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Hospital{}, false
}

// ListSpecialties handles GET /api/doctors/specialties
func (h *Handler) ListSpecialties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"specialties": Specialties()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
