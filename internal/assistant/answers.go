package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthsense/healthsense-ai/internal/doctors"
	"github.com/healthsense/healthsense-ai/internal/labtests"
)

const maxListed = 5

const emergencyGuidance = "⚠️ For life-threatening emergencies, please CALL 911 immediately!\n\n" +
	"For non-emergency urgent care, I can help you find:\n" +
	"🚨 Nearest emergency rooms\n" +
	"🚨 Ambulance services\n" +
	"🚨 24/7 urgent care centers\n\n" +
	"Visit our Emergency Services page for detailed information and locations."

const generalGuidance = "I'm your AI health assistant. I can help you with:\n\n" +
	"🏥 Finding and comparing hospitals\n" +
	"👨‍⚕️ Searching for doctors and booking appointments\n" +
	"🔬 Browsing lab tests and health screening packages\n" +
	"🚨 Locating emergency services\n" +
	"💊 Answering general health-related questions\n\n" +
	"What would you like to know more about?"

// defaultPanel is suggested when a diagnostic query names no specific test.
var defaultPanel = []int{1, 2, 3, 5}

var stopwords = map[string]bool{
	"what": true, "which": true, "with": true, "about": true, "need": true, "want": true,
	"test": true, "tests": true, "have": true, "should": true, "does": true, "your": true,
	"there": true, "this": true, "that": true, "from": true, "much": true, "cost": true,
	"price": true, "book": true, "blood": true, "check": true, "checks": true, "checkup": true,
	"level": true, "levels": true, "please": true,
}

// localAnswerer builds replies from the static catalogs when no model is
// configured or the model call fails.
type localAnswerer struct {
	doctors doctors.Catalog
	tests   labtests.Catalog
}

func (a localAnswerer) answer(ctx context.Context, agent Agent, message string) (string, error) {
	switch agent {
	case AgentEmergency:
		return emergencyGuidance, nil
	case AgentDoctor:
		return a.doctorAnswer(ctx, message)
	case AgentDiagnostic:
		return a.diagnosticAnswer(ctx, message)
	case AgentHospital:
		return a.hospitalAnswer(ctx)
	default:
		return generalGuidance, nil
	}
}

func (a localAnswerer) doctorAnswer(ctx context.Context, message string) (string, error) {
	all, err := a.doctors.List(ctx)
	if err != nil {
		return "", fmt.Errorf("assistant: list providers: %w", err)
	}
	specialty := mentionedSpecialty(message)
	matches := doctors.Apply(all, doctors.Filter{Specialty: specialty, AvailableOnly: true})
	if len(matches) == 0 {
		matches = doctors.Apply(all, doctors.Filter{AvailableOnly: true})
		specialty = ""
	}

	var b strings.Builder
	if specialty != "" {
		fmt.Fprintf(&b, "Here are available %s specialists:\n\n", specialty)
	} else {
		b.WriteString("Here are some doctors with open appointments:\n\n")
	}
	for i, p := range matches {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "👨‍⚕️ %s (%s, %.1f★, $%d) at %s\n", p.Name, p.Specialty, p.Rating, p.ConsultationFee, p.Hospital)
	}
	b.WriteString("\nWould you like to book an appointment? Visit our Doctor Booking page to see availability and schedule online.")
	return b.String(), nil
}

// mentionedSpecialty finds a catalog specialty named in message. Single-word
// specialties also match by stem ("cardiologist" for Cardiology).
func mentionedSpecialty(message string) string {
	lower := strings.ToLower(message)
	for _, s := range doctors.Specialties() {
		name := strings.ToLower(s)
		if strings.Contains(lower, name) {
			return s
		}
		if !strings.Contains(name, " ") && len(name) > 7 && strings.Contains(lower, name[:7]) {
			return s
		}
	}
	return ""
}

func (a localAnswerer) diagnosticAnswer(ctx context.Context, message string) (string, error) {
	all, err := a.tests.List(ctx)
	if err != nil {
		return "", fmt.Errorf("assistant: list tests: %w", err)
	}

	seen := make(map[int]bool)
	var picked []labtests.LabTest
	for _, term := range searchTerms(message) {
		for _, t := range labtests.Apply(all, labtests.Filter{Search: term}) {
			if !seen[t.ID] {
				seen[t.ID] = true
				picked = append(picked, t)
			}
		}
	}

	intro := "Based on your question, these tests may help:\n\n"
	if len(picked) == 0 {
		intro = "For a comprehensive health checkup, I recommend:\n\n"
		for _, id := range defaultPanel {
			if t, err := a.tests.Get(ctx, id); err == nil {
				picked = append(picked, t)
			}
		}
	}

	var b strings.Builder
	b.WriteString(intro)
	for i, t := range picked {
		if i == maxListed {
			break
		}
		fasting := ""
		if t.RequiresFasting {
			fasting = ", fasting required"
		}
		fmt.Fprintf(&b, "🔬 %s - $%d (results in %s%s)\n", t.Name, t.Price, t.ResultDuration, fasting)
	}
	b.WriteString("\nVisit our Lab Tests page to see all options and prices.")
	return b.String(), nil
}

// searchTerms keeps the meaningful words of a query for catalog search.
func searchTerms(message string) []string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) < 4 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (a localAnswerer) hospitalAnswer(ctx context.Context) (string, error) {
	all, err := a.doctors.List(ctx)
	if err != nil {
		return "", fmt.Errorf("assistant: list providers: %w", err)
	}
	list := doctors.Hospitals(all)

	var b strings.Builder
	b.WriteString("I can help you find and compare hospitals! I found several options:\n\n")
	for i, h := range list {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&b, "🏥 %s, %s (%.1f★ average across %d doctors)\n", h.Name, h.Location, h.Rating, h.DoctorCount)
	}
	b.WriteString("\nWould you like to see detailed comparisons? You can also visit our Hospital Comparison page for more filters and options.")
	return b.String(), nil
}
