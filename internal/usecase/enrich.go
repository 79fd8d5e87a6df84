package usecase

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/drinkdex/backend/internal/domain"
)

// Enrich computes the derived value fields for a catalog row: the litres of
// pure alcohol in the bottle and the value ratio (pure alcohol per currency
// unit). The ratio is nil when price is not positive; it is never zero,
// negative, or infinite.
func Enrich(p domain.Product) domain.Product {
	p.PureAlcoholLiters = p.ABVPercent / 100 * p.VolumeLiters
	if p.Price > 0 {
		ratio := p.PureAlcoholLiters / p.Price
		p.ValueRatio = &ratio
	} else {
		p.ValueRatio = nil
	}
	return p
}

// SortByValueRatio orders products by value ratio descending. Products
// without a ratio sort last, in their original relative order.
func SortByValueRatio(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		ri, rj := products[i].ValueRatio, products[j].ValueRatio
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return *ri > *rj
	})
}

// IngredientIndexConfig is the policy for building ingredient indexes:
// how many slot columns the dataset carries and the alias table collapsing
// naming variants onto one canonical token. Both are configuration data.
type IngredientIndexConfig struct {
	MaxSlots int
	Aliases  map[string]string
}

// Validate rejects unusable policy values before any index is built.
func (c IngredientIndexConfig) Validate() error {
	if c.MaxSlots <= 0 {
		return fmt.Errorf("%w: ingredient slot count %d must be positive", domain.ErrInvalidConfig, c.MaxSlots)
	}
	return nil
}

// canonical resolves a raw ingredient name to its canonical token:
// normalize, then apply the alias table. Returns "" for blank names.
func (c IngredientIndexConfig) canonical(raw string) string {
	token := Normalize(raw)
	if token == "" {
		return ""
	}
	if alias, ok := c.Aliases[token]; ok {
		return alias
	}
	return token
}

// BuildIngredientIndex derives the canonical ingredient tokens for one
// cocktail row. Slots beyond MaxSlots are ignored, blank slots are skipped,
// and duplicate tokens keep their first position so the index preserves
// encounter order for display.
func BuildIngredientIndex(pairs []domain.IngredientMeasure, cfg IngredientIndexConfig) []string {
	slots := pairs
	if len(slots) > cfg.MaxSlots {
		slots = slots[:cfg.MaxSlots]
	}

	var index []string
	seen := make(map[string]bool)
	for _, pair := range slots {
		token := cfg.canonical(pair.Name)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		index = append(index, token)
	}
	return index
}

// DisplayName renders a canonical token for presentation ("white rum" ->
// "White Rum").
func DisplayName(token string) string {
	return cases.Title(language.English).String(token)
}
