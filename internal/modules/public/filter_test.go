package public

import (
	"testing"

	"github.com/kmabtech/web/internal/backend"
	"github.com/stretchr/testify/assert"
)

var catalog = []backend.Product{
	{ID: 1, Name: "PLA Filament", CategoryID: 1, Color: "Kırmızı"},
	{ID: 2, Name: "ABS Filament", CategoryID: 1, Color: "Siyah"},
	{ID: 3, Name: "Yedek Nozzle", CategoryID: 2, Color: "Siyah"},
	{ID: 4, Name: "Cam Tabla", CategoryID: 2},
}

func ids(products []backend.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterFromQuery(t *testing.T) {
	f := FilterFromQuery("  pla ", "2", "Siyah")
	assert.Equal(t, "pla", f.Query)
	assert.Equal(t, 2, f.CategoryID)
	assert.Equal(t, "Siyah", f.Color)

	// Garbage and non-positive category values deactivate the predicate.
	assert.Zero(t, FilterFromQuery("", "abc", "").CategoryID)
	assert.Zero(t, FilterFromQuery("", "-3", "").CategoryID)
}

func TestApplyNameIsCaseInsensitiveSubstring(t *testing.T) {
	got := ProductFilter{Query: "filament"}.Apply(catalog)
	assert.Equal(t, []int{1, 2}, ids(got))

	got = ProductFilter{Query: "FILAMENT"}.Apply(catalog)
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestApplyPredicatesIntersect(t *testing.T) {
	got := ProductFilter{Query: "filament", CategoryID: 1, Color: "siyah"}.Apply(catalog)
	assert.Equal(t, []int{2}, ids(got))
}

func TestApplyEmptyFilterReturnsEverything(t *testing.T) {
	got := ProductFilter{}.Apply(catalog)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(got))
}

func TestApplyNoMatches(t *testing.T) {
	got := ProductFilter{Query: "reçine"}.Apply(catalog)
	assert.Empty(t, got)
}

func TestColorsDistinctFirstSeen(t *testing.T) {
	assert.Equal(t, []string{"Kırmızı", "Siyah"}, Colors(catalog))
}
