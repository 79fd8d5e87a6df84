package usecase

import (
	"fmt"
	"log"
	"sort"

	"github.com/drinkdex/backend/internal/domain"
	"github.com/drinkdex/backend/internal/infrastructure/cocktaildb"
)

// CocktailServiceConfig holds the dataset location, the ingredient-index
// policy, and the family grouping used by the ingredient catalog.
type CocktailServiceConfig struct {
	Path        string
	Index       IngredientIndexConfig
	Families    map[string]string
	FamilyOrder []string
	Debug       bool
}

// IngredientInfo is one entry of the ingredient catalog.
type IngredientInfo struct {
	Token   string `json:"token"`
	Display string `json:"display"`
}

// IngredientFamily groups the catalog's ingredients for presentation.
type IngredientFamily struct {
	Family      string           `json:"family"`
	Ingredients []IngredientInfo `json:"ingredients"`
}

// CocktailService serves filtered views over the cocktail dataset. The
// dataset is static, so it is loaded once at construction and every view
// is a pure transform over that snapshot.
type CocktailService struct {
	cfg       CocktailServiceConfig
	prefs     domain.PreferenceRepository
	cocktails []domain.Cocktail
}

// NewCocktailService loads the cocktail dataset and derives each row's
// ingredient index. Index policy is validated before anything is built.
func NewCocktailService(cfg CocktailServiceConfig, prefs domain.PreferenceRepository) (*CocktailService, error) {
	if err := cfg.Index.Validate(); err != nil {
		return nil, err
	}

	rows, err := cocktaildb.Load(cfg.Path, cfg.Index.MaxSlots)
	if err != nil {
		return nil, fmt.Errorf("load cocktails: %w", err)
	}

	cocktails := make([]domain.Cocktail, 0, len(rows))
	for _, row := range rows {
		cocktails = append(cocktails, domain.Cocktail{
			Name:        row.Name,
			Category:    row.Category,
			Ingredients: row.Ingredients,
			Index:       BuildIngredientIndex(row.Ingredients, cfg.Index),
		})
	}

	if cfg.Debug {
		log.Printf("[COCKTAILS] Loaded %d cocktails from %s", len(cocktails), cfg.Path)
	}

	return &CocktailService{cfg: cfg, prefs: prefs, cocktails: cocktails}, nil
}

// List returns the cocktails passing the spec. Required ingredients are
// accepted in raw form and canonicalized here; when OwnedOnly is set the
// owned set is read from the preference store.
func (s *CocktailService) List(spec FilterSpec) ([]domain.Cocktail, error) {
	spec.RequiredIngredients = s.canonicalTokens(spec.RequiredIngredients)

	if spec.OwnedOnly && spec.Owned == nil {
		shelf, err := s.prefs.Shelf()
		if err != nil {
			return nil, fmt.Errorf("load shelf: %w", err)
		}
		spec.Owned = shelf
	}

	return Apply(s.cocktails, spec, func(c domain.Cocktail) RecordView {
		return RecordView{Name: c.Name, Category: c.Category, Index: c.Index}
	}), nil
}

// Makeable returns the cocktails whose every ingredient is on the user's
// bar shelf.
func (s *CocktailService) Makeable() ([]domain.Cocktail, error) {
	return s.List(FilterSpec{OwnedOnly: true})
}

// IngredientCatalog returns every distinct canonical ingredient grouped by
// family, in the configured family order with "Other" collecting the rest.
func (s *CocktailService) IngredientCatalog() []IngredientFamily {
	seen := make(map[string]bool)
	groups := make(map[string][]IngredientInfo)
	for _, c := range s.cocktails {
		for _, token := range c.Index {
			if seen[token] {
				continue
			}
			seen[token] = true
			family := s.cfg.Families[token]
			if family == "" {
				family = "Other"
			}
			groups[family] = append(groups[family], IngredientInfo{
				Token:   token,
				Display: DisplayName(token),
			})
		}
	}

	var out []IngredientFamily
	for _, family := range s.cfg.FamilyOrder {
		ingredients, ok := groups[family]
		if !ok {
			continue
		}
		sort.Slice(ingredients, func(i, j int) bool {
			return ingredients[i].Token < ingredients[j].Token
		})
		out = append(out, IngredientFamily{Family: family, Ingredients: ingredients})
		delete(groups, family)
	}

	// Families outside the configured order still show up, sorted by name
	var rest []string
	for family := range groups {
		rest = append(rest, family)
	}
	sort.Strings(rest)
	for _, family := range rest {
		ingredients := groups[family]
		sort.Slice(ingredients, func(i, j int) bool {
			return ingredients[i].Token < ingredients[j].Token
		})
		out = append(out, IngredientFamily{Family: family, Ingredients: ingredients})
	}
	return out
}

// Shelf returns the user's owned ingredient tokens.
func (s *CocktailService) Shelf() (map[string]bool, error) {
	return s.prefs.Shelf()
}

// SaveShelf replaces the user's bar shelf. Raw names are canonicalized
// through the same policy as the ingredient index.
func (s *CocktailService) SaveShelf(names []string) error {
	return s.prefs.SaveShelf(s.canonicalTokens(names))
}

// canonicalTokens normalizes and alias-resolves raw ingredient names,
// dropping blanks.
func (s *CocktailService) canonicalTokens(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if token := s.cfg.Index.canonical(name); token != "" {
			out = append(out, token)
		}
	}
	return out
}
