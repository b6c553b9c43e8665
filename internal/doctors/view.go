package doctors

import (
	"fmt"
	"math"
	"strings"
)

// Card is the render model for one provider in the results grid.
type Card struct {
	ID              int     `json:"id"`
	Initials        string  `json:"initials"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Hospital        string  `json:"hospital"`
	YearsExperience int     `json:"years_experience"`
	PatientCount    string  `json:"patient_count"`
	Fee             string  `json:"fee"`
	Stars           string  `json:"stars"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	Education       string  `json:"education"`
	Languages       string  `json:"languages"`
	Availability    string  `json:"availability"`
	BookLabel       string  `json:"book_label"`
	BookEnabled     bool    `json:"book_enabled"`
}

// Placeholder is rendered instead of the grid when nothing matched.
type Placeholder struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// Results is the full render model of the search page.
type Results struct {
	Filter      Filter       `json:"filter"`
	Count       int          `json:"count"`
	CountLabel  string       `json:"count_label"`
	Doctors     []Card       `json:"doctors"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// RenderResults builds the page model for a filtered provider list.
func RenderResults(f Filter, providers []Provider) Results {
	res := Results{
		Filter:     f,
		Count:      len(providers),
		CountLabel: CountLabel(len(providers)),
		Doctors:    make([]Card, 0, len(providers)),
	}
	if len(providers) == 0 {
		res.Placeholder = &Placeholder{Title: "No doctors found", Hint: "Try adjusting your filters"}
		return res
	}
	for _, p := range providers {
		res.Doctors = append(res.Doctors, RenderCard(p))
	}
	return res
}

// CountLabel formats the results counter, e.g. "1 doctor found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 doctor found"
	}
	return fmt.Sprintf("%d doctors found", n)
}

// RenderCard builds the card model for p.
func RenderCard(p Provider) Card {
	c := Card{
		ID:              p.ID,
		Initials:        Initials(p.Name),
		Name:            p.Name,
		Specialty:       p.Specialty,
		Hospital:        p.Hospital,
		YearsExperience: p.YearsExperience,
		PatientCount:    p.PatientCount,
		Fee:             fmt.Sprintf("$%d", p.ConsultationFee),
		Stars:           Stars(p.Rating),
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Education:       p.Education,
		Languages:       strings.Join(p.Languages, ", "),
		BookEnabled:     p.Available,
	}
	if p.Available {
		c.Availability = "Available This Week"
		c.BookLabel = "Book Appointment"
	} else {
		c.Availability = "Fully Booked"
		c.BookLabel = "Not Available"
	}
	return c
}

// Initials takes the first letter of every word, so "Dr. Sarah Johnson" is "DSJ".
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Stars renders a 5-star bar with floor(rating) filled stars.
func Stars(rating float64) string {
	filled := int(math.Floor(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}
