package doctors

// Provider is a doctor record in the static catalog. Records are never mutated.
type Provider struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Hospital        string   `json:"hospital"`
	Location        string   `json:"location"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	YearsExperience int      `json:"years_experience"`
	PatientCount    string   `json:"patient_count"`
	Languages       []string `json:"languages"`
	Education       string   `json:"education"`
	ConsultationFee int      `json:"consultation_fee"`
	Available       bool     `json:"available"`
}

// Filter is the provider search form. Zero values disable a predicate.
type Filter struct {
	Search        string `json:"search,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	Location      string `json:"location,omitempty"`
	AvailableOnly bool   `json:"available_only,omitempty"`
}
