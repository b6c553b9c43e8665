package doctors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalsAggregatesProviders(t *testing.T) {
	list := Hospitals(DefaultProviders())
	require.Len(t, list, 7)

	// NYU Langone has two 4.9 providers and sorts ahead of NewYork-Presbyterian on name.
	nyu := list[0]
	assert.Equal(t, "NYU Langone Health", nyu.Name)
	assert.Equal(t, 2, nyu.DoctorCount)
	assert.Equal(t, 4.9, nyu.Rating)
	assert.Equal(t, []string{"Oncology", "Pediatrics"}, nyu.Specialties)
	assert.Equal(t, 200, nyu.MinFee)

	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Rating, list[i].Rating)
	}

	lenox, ok := findHospital(list, "lenox hill hospital")
	require.True(t, ok)
	assert.Zero(t, lenox.AvailableDoctors)
}

func TestFilterHospitals(t *testing.T) {
	all := Hospitals(DefaultProviders())

	tests := []struct {
		name string
		f    HospitalFilter
		want []string
	}{
		{"search", HospitalFilter{Search: "queens"}, []string{"Queens Hospital Center"}},
		{"specialty", HospitalFilter{Specialty: "oncology"}, []string{"NYU Langone Health"}},
		{"location", HospitalFilter{Location: "bronx"}, []string{"Montefiore Medical Center"}},
		{"rating", HospitalFilter{MinRating: 4.85}, []string{"NYU Langone Health", "NewYork-Presbyterian Hospital"}},
		{"none", HospitalFilter{Search: "nowhere"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := []string{}
			for _, h := range FilterHospitals(all, tt.f) {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func newHospitalHandler() http.Handler {
	return NewHandler(NewStaticCatalog(nil), nil).HospitalRoutes()
}

func TestListHospitalsEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	newHospitalHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?location=Manhattan&rating=4.8", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count     int        `json:"count"`
		Hospitals []Hospital `json:"hospitals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
	for _, h := range body.Hospitals {
		assert.Equal(t, "Manhattan", h.Location)
		assert.GreaterOrEqual(t, h.Rating, 4.8)
	}

	w = httptest.NewRecorder()
	newHospitalHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?rating=high", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"rating must be a number between 0 and 5"}`, w.Body.String())
}

func TestCompareHospitalsEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/compare?names=Queens%20Hospital%20Center,%20mount%20sinai%20hospital", nil)
	newHospitalHandler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Hospitals []Hospital `json:"hospitals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Hospitals, 2)
	assert.Equal(t, "Queens Hospital Center", body.Hospitals[0].Name)
	assert.Equal(t, "Mount Sinai Hospital", body.Hospitals[1].Name)

	w = httptest.NewRecorder()
	newHospitalHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compare?names=Queens%20Hospital%20Center", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	newHospitalHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compare?names=Queens%20Hospital%20Center,Nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
