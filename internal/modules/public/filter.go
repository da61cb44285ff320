package public

import (
	"strconv"
	"strings"

	"github.com/kmabtech/web/internal/backend"
)

// ProductFilter is the client-side predicate set for the products page.
// Filtering runs over the already-fetched array; no query parameters go to
// the backend.
type ProductFilter struct {
	Query      string
	CategoryID int
	Color      string
}

// FilterFromQuery parses filter parameters from the request query string.
func FilterFromQuery(q, category, color string) ProductFilter {
	f := ProductFilter{Query: strings.TrimSpace(q), Color: strings.TrimSpace(color)}
	if id, err := strconv.Atoi(category); err == nil && id > 0 {
		f.CategoryID = id
	}
	return f
}

// Apply returns the products matching every active predicate. The name match
// is a case-insensitive substring check.
func (f ProductFilter) Apply(products []backend.Product) []backend.Product {
	query := strings.ToLower(f.Query)
	color := strings.ToLower(f.Color)

	out := make([]backend.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if color != "" && strings.ToLower(p.Color) != color {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Colors collects the distinct non-empty colors for the filter dropdown,
// in first-seen order.
func Colors(products []backend.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Color == "" || seen[strings.ToLower(p.Color)] {
			continue
		}
		seen[strings.ToLower(p.Color)] = true
		out = append(out, p.Color)
	}
	return out
}
