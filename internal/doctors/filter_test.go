package doctors

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceFilter is a deliberately naive restatement of the search rules.
func referenceFilter(all []Provider, f Filter) []Provider {
	var out []Provider
	for _, p := range all {
		ok := true
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			ok = strings.Contains(strings.ToLower(p.Name), s) || strings.Contains(strings.ToLower(p.Hospital), s)
		}
		if ok && f.Specialty != "" {
			ok = strings.ToLower(p.Specialty) == strings.ToLower(f.Specialty)
		}
		if ok && f.Location != "" {
			ok = strings.ToLower(p.Location) == strings.ToLower(f.Location)
		}
		if ok && f.AvailableOnly {
			ok = p.Available
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

func TestApplyMatchesReferenceForRandomFilters(t *testing.T) {
	all := DefaultProviders()
	rng := rand.New(rand.NewSource(7))
	searches := []string{"", "dr", "SARAH", "nyu", "hospital", "langone", "zzz", "Mount", "center"}
	specialties := []string{"", "cardiology", "NEUROLOGY", "Oncology", "Radiology", "general medicine"}
	locations := []string{"", "manhattan", "Brooklyn", "bronx", "QUEENS", "Staten Island"}

	for i := 0; i < 500; i++ {
		f := Filter{
			Search:        searches[rng.Intn(len(searches))],
			Specialty:     specialties[rng.Intn(len(specialties))],
			Location:      locations[rng.Intn(len(locations))],
			AvailableOnly: rng.Intn(2) == 0,
		}
		got := Apply(all, f)
		want := referenceFilter(all, f)
		require.Equal(t, len(want), len(got), "filter %+v", f)
		for j := range got {
			assert.Equal(t, want[j].ID, got[j].ID, "filter %+v", f)
			assert.True(t, Matches(got[j], f))
		}
	}
}

func TestApplyPreservesCatalogOrder(t *testing.T) {
	got := Apply(DefaultProviders(), Filter{Location: "Manhattan"})
	ids := make([]int, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 7}, ids)
}

func TestApplySearchesNameAndHospital(t *testing.T) {
	byHospital := Apply(DefaultProviders(), Filter{Search: "nyu langone"})
	require.Len(t, byHospital, 2)
	assert.Equal(t, "Dr. Emily Rodriguez", byHospital[0].Name)
	assert.Equal(t, "Dr. Lisa Zhang", byHospital[1].Name)

	byName := Apply(DefaultProviders(), Filter{Search: "kumar"})
	require.Len(t, byName, 1)
	assert.Equal(t, 8, byName[0].ID)

	// Specialty is not part of free-text search.
	assert.Empty(t, Apply(DefaultProviders(), Filter{Search: "cardiology"}))
}

func TestApplyAvailabilityOnly(t *testing.T) {
	got := Apply(DefaultProviders(), Filter{AvailableOnly: true})
	assert.Len(t, got, 7)
	for _, p := range got {
		assert.NotEqual(t, 4, p.ID)
	}
}
