package doctors

import (
	"context"
	"fmt"
)

// Catalog serves provider records.
type Catalog interface {
	List(ctx context.Context) ([]Provider, error)
	Get(ctx context.Context, id int) (Provider, error)
}

// StaticCatalog is the built-in reference catalog loaded at start.
type StaticCatalog struct {
	providers []Provider
	byID      map[int]int
}

// NewStaticCatalog indexes the given providers. Passing nil loads DefaultProviders.
func NewStaticCatalog(providers []Provider) *StaticCatalog {
	if providers == nil {
		providers = DefaultProviders()
	}
	c := &StaticCatalog{
		providers: providers,
		byID:      make(map[int]int, len(providers)),
	}
	for i, p := range providers {
		c.byID[p.ID] = i
	}
	return c
}

// List returns a copy of every provider in catalog order.
func (c *StaticCatalog) List(_ context.Context) ([]Provider, error) {
	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out, nil
}

// Get returns the provider with the given id.
func (c *StaticCatalog) Get(_ context.Context, id int) (Provider, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %d", ErrProviderNotFound, id)
	}
	return c.providers[idx], nil
}

// Specialties lists the specialties offered by the booking page filter.
func Specialties() []string {
	return []string{
		"Cardiology",
		"Neurology",
		"Orthopedics",
		"Pediatrics",
		"Dermatology",
		"Psychiatry",
		"Internal Medicine",
		"General Surgery",
		"Oncology",
		"Radiology",
	}
}

// DefaultProviders returns a fresh copy of the reference provider list.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID: 1, Name: "Dr. Sarah Johnson", Specialty: "Cardiology",
			Hospital: "NewYork-Presbyterian Hospital", Location: "Manhattan",
			Rating: 4.9, ReviewCount: 156, YearsExperience: 15, PatientCount: "2,500+",
			Languages: []string{"English", "Spanish"}, Education: "MD, Harvard Medical School",
			ConsultationFee: 250, Available: true,
		},
		{
			ID: 2, Name: "Dr. Michael Chen", Specialty: "Neurology",
			Hospital: "Mount Sinai Hospital", Location: "Manhattan",
			Rating: 4.8, ReviewCount: 142, YearsExperience: 12, PatientCount: "1,800+",
			Languages: []string{"English", "Mandarin"}, Education: "MD, Johns Hopkins University",
			ConsultationFee: 275, Available: true,
		},
		{
			ID: 3, Name: "Dr. Emily Rodriguez", Specialty: "Pediatrics",
			Hospital: "NYU Langone Health", Location: "Manhattan",
			Rating: 4.9, ReviewCount: 198, YearsExperience: 10, PatientCount: "3,200+",
			Languages: []string{"English", "Spanish"}, Education: "MD, Columbia University",
			ConsultationFee: 200, Available: true,
		},
		{
			ID: 4, Name: "Dr. James Williams", Specialty: "Orthopedics",
			Hospital: "Lenox Hill Hospital", Location: "Manhattan",
			Rating: 4.7, ReviewCount: 134, YearsExperience: 18, PatientCount: "2,100+",
			Languages: []string{"English"}, Education: "MD, Stanford University",
			ConsultationFee: 300, Available: false,
		},
		{
			ID: 5, Name: "Dr. Aisha Patel", Specialty: "Dermatology",
			Hospital: "Brooklyn Hospital Center", Location: "Brooklyn",
			Rating: 4.8, ReviewCount: 167, YearsExperience: 8, PatientCount: "1,600+",
			Languages: []string{"English", "Hindi"}, Education: "MD, Yale School of Medicine",
			ConsultationFee: 225, Available: true,
		},
		{
			ID: 6, Name: "Dr. Robert Taylor", Specialty: "Psychiatry",
			Hospital: "Montefiore Medical Center", Location: "Bronx",
			Rating: 4.6, ReviewCount: 89, YearsExperience: 20, PatientCount: "1,200+",
			Languages: []string{"English", "French"}, Education: "MD, Duke University",
			ConsultationFee: 280, Available: true,
		},
		{
			ID: 7, Name: "Dr. Lisa Zhang", Specialty: "Oncology",
			Hospital: "NYU Langone Health", Location: "Manhattan",
			Rating: 4.9, ReviewCount: 203, YearsExperience: 14, PatientCount: "1,900+",
			Languages: []string{"English", "Mandarin"}, Education: "MD, University of Pennsylvania",
			ConsultationFee: 350, Available: true,
		},
		{
			ID: 8, Name: "Dr. David Kumar", Specialty: "General Medicine",
			Hospital: "Queens Hospital Center", Location: "Queens",
			Rating: 4.5, ReviewCount: 112, YearsExperience: 7, PatientCount: "2,800+",
			Languages: []string{"English", "Hindi", "Tamil"}, Education: "MD, Boston University",
			ConsultationFee: 150, Available: true,
		},
	}
}
