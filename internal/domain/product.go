package domain

import (
	"sort"
	"time"
)

// Product is one fully-populated row of the retailer price catalog.
// Rows missing any of name/price/ABV/volume never make it this far; the
// parser drops them.
type Product struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ABVPercent   float64 `json:"abvPercent"`
	VolumeLiters float64 `json:"volumeLiters"`
	Category     string  `json:"category"` // normalized lowercase

	// Derived by the field builder
	PureAlcoholLiters float64  `json:"pureAlcoholLiters"`
	ValueRatio        *float64 `json:"valueRatio"` // nil when price <= 0
}

// CatalogSnapshot is an immutable view of the catalog built by one refresh.
// A new refresh supersedes it wholesale; nothing mutates Products in place.
type CatalogSnapshot struct {
	ID         string    `json:"id"`
	FetchedAt  time.Time `json:"fetchedAt"`
	FromBackup bool      `json:"fromBackup"`
	Products   []Product `json:"products"`
}

// Categories returns the distinct product categories in sorted order.
func (s *CatalogSnapshot) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.Products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}
