package doctors

import "strings"

// Matches reports whether p satisfies every enabled predicate of f.
func Matches(p Provider, f Filter) bool {
	search := strings.ToLower(f.Search)
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Hospital), search) {
		return false
	}
	if f.Specialty != "" && !strings.EqualFold(p.Specialty, f.Specialty) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(p.Location, f.Location) {
		return false
	}
	if f.AvailableOnly && !p.Available {
		return false
	}
	return true
}

// Apply returns the providers matching f, preserving catalog order.
func Apply(providers []Provider, f Filter) []Provider {
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}
