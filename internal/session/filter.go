package session

import (
	"strings"

	"github.com/Canzo32/farmer-web/internal/types"
)

// Filters are the marketplace filter criteria. Zero values mean "unset":
// an empty Filters leaves the catalog untouched.
type Filters struct {
	Category types.Category
	Region   types.Region
	Search   string
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f.Category == "" && f.Region == "" && strings.TrimSpace(f.Search) == ""
}

// Filter restricts listings to those matching every set criterion. The
// search term matches title or description, case-insensitive. Input order
// is preserved and the input slice is never mutated.
func Filter(listings []types.ProduceListing, f Filters) []types.ProduceListing {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]types.ProduceListing, 0, len(listings))
	for _, p := range listings {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Region != "" && p.Region != f.Region {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
