package doctors

import (
	"math"
	"sort"
	"strings"
)

// Hospital is a comparison row derived from the providers practising there.
type Hospital struct {
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Rating           float64  `json:"rating"`
	DoctorCount      int      `json:"doctor_count"`
	AvailableDoctors int      `json:"available_doctors"`
	Specialties      []string `json:"specialties"`
	MinFee           int      `json:"min_consultation_fee"`
}

// HospitalFilter narrows the comparison table. Zero values disable a predicate.
type HospitalFilter struct {
	Search    string  `json:"search,omitempty"`
	Specialty string  `json:"specialty,omitempty"`
	Location  string  `json:"location,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

// Hospitals groups providers by hospital. Rating is the mean provider rating
// rounded to one decimal; rows are ordered by rating, then name.
func Hospitals(providers []Provider) []Hospital {
	byName := make(map[string]*Hospital)
	sums := make(map[string]float64)
	for _, p := range providers {
		h, ok := byName[p.Hospital]
		if !ok {
			h = &Hospital{Name: p.Hospital, Location: p.Location, MinFee: p.ConsultationFee}
			byName[p.Hospital] = h
		}
		h.DoctorCount++
		sums[p.Hospital] += p.Rating
		if p.Available {
			h.AvailableDoctors++
		}
		if p.ConsultationFee < h.MinFee {
			h.MinFee = p.ConsultationFee
		}
		if !containsFold(h.Specialties, p.Specialty) {
			h.Specialties = append(h.Specialties, p.Specialty)
		}
	}

	out := make([]Hospital, 0, len(byName))
	for name, h := range byName {
		h.Rating = math.Round(sums[name]/float64(h.DoctorCount)*10) / 10
		sort.Strings(h.Specialties)
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MatchesHospital reports whether h satisfies every enabled predicate of f.
func MatchesHospital(h Hospital, f HospitalFilter) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" && !strings.Contains(strings.ToLower(h.Name), s) {
		return false
	}
	if f.Specialty != "" && !containsFold(h.Specialties, f.Specialty) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(h.Location, f.Location) {
		return false
	}
	return h.Rating >= f.MinRating
}

// FilterHospitals keeps the rows matching f, preserving order.
func FilterHospitals(hospitals []Hospital, f HospitalFilter) []Hospital {
	out := make([]Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if MatchesHospital(h, f) {
			out = append(out, h)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
