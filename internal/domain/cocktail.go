package domain

// IngredientMeasure is one (ingredient, measure) slot of a cocktail row.
// Measure may be empty. Order is preserved for display.
type IngredientMeasure struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// Cocktail is one row of the cocktail dataset plus its derived ingredient
// index: canonical, alias-resolved tokens used as filtering keys.
type Cocktail struct {
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Ingredients []IngredientMeasure `json:"ingredients"`
	Index       []string            `json:"ingredientIndex"`
}

// HasIngredient reports whether the canonical token appears in the index.
func (c *Cocktail) HasIngredient(token string) bool {
	for _, t := range c.Index {
		if t == token {
			return true
		}
	}
	return false
}

// IndexSubsetOf reports whether every token of the index is present in the
// given owned set. A cocktail with an empty index is trivially makeable.
func (c *Cocktail) IndexSubsetOf(owned map[string]bool) bool {
	for _, t := range c.Index {
		if !owned[t] {
			return false
		}
	}
	return true
}
