package labtests

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Matches reports whether t satisfies every enabled predicate of f.
func Matches(t LabTest, f Filter) bool {
	if f.Category != "" && f.Category != CategoryAll && t.Category != f.Category {
		return false
	}
	if f.Search != "" && !matchesSearch(t, strings.ToLower(f.Search)) {
		return false
	}
	if f.MaxPrice != nil && float64(t.Price) > *f.MaxPrice {
		return false
	}
	switch f.Fasting {
	case FastingYes:
		return t.RequiresFasting
	case FastingNo:
		return !t.RequiresFasting
	}
	return true
}

func matchesSearch(t LabTest, term string) bool {
	if strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, p := range t.Parameters {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}
	return false
}

// Apply returns the tests matching f in catalog order.
func Apply(tests []LabTest, f Filter) []LabTest {
	out := make([]LabTest, 0, len(tests))
	for _, t := range tests {
		if Matches(t, f) {
			out = append(out, t)
		}
	}
	return out
}

// ParseFilter reads the catalog filter from query values. "q" pre-fills the
// search box when search is empty. A max price of zero or less is unbounded.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		Category: CategoryAll,
		Search:   q.Get("search"),
	}
	if f.Search == "" {
		f.Search = q.Get("q")
	}

	if c := strings.ToLower(strings.TrimSpace(q.Get("category"))); c != "" {
		f.Category = Category(c)
		if !f.Category.Valid() {
			return Filter{}, fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, c)
		}
	}

	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: max_price %q", ErrInvalidFilter, raw)
		}
		if price > 0 {
			f.MaxPrice = &price
		}
	}

	switch v := strings.ToLower(strings.TrimSpace(q.Get("fasting"))); v {
	case "", "any":
		f.Fasting = FastingAny
	case "yes":
		f.Fasting = FastingYes
	case "no":
		f.Fasting = FastingNo
	default:
		return Filter{}, fmt.Errorf("%w: fasting %q", ErrInvalidFilter, v)
	}
	return f, nil
}

// ParseViewMode defaults to the card grid.
func ParseViewMode(v string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", ViewCard:
		return ViewCard, nil
	case ViewTable:
		return ViewTable, nil
	default:
		return "", fmt.Errorf("%w: view %q", ErrInvalidFilter, v)
	}
}
