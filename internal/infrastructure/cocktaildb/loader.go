// Package cocktaildb loads the cocktail dataset: one CSV row per drink
// with a bounded set of ingredient/measure slot columns.
package cocktaildb

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/drinkdex/backend/internal/domain"
)

// Dataset column headers, as published by the cocktail database export.
const (
	colDrink    = "strDrink"
	colCategory = "strCategory"

	ingredientColFmt = "strIngredient%d"
	measureColFmt    = "strMeasure%d"
)

// Row is one cocktail before ingredient-index derivation. Ingredients keep
// their slot order; blank slots are already skipped.
type Row struct {
	Name        string
	Category    string
	Ingredients []domain.IngredientMeasure
}

// Load reads the cocktail dataset. Slot columns are resolved by name up to
// maxSlots; datasets with fewer slots simply resolve fewer columns. Rows
// without a drink name are dropped. Returns ErrEmptyDataset when nothing
// usable remains.
func Load(path string, maxSlots int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cocktail dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cocktail dataset: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrEmptyDataset
	}

	header := rows[0]
	nameIdx := columnOf(header, colDrink)
	categoryIdx := columnOf(header, colCategory)
	if nameIdx < 0 {
		return nil, domain.ErrEmptyDataset
	}

	// Resolve every slot column pair once
	type slot struct{ ingredient, measure int }
	var slots []slot
	for i := 1; i <= maxSlots; i++ {
		ing := columnOf(header, fmt.Sprintf(ingredientColFmt, i))
		if ing < 0 {
			continue
		}
		slots = append(slots, slot{
			ingredient: ing,
			measure:    columnOf(header, fmt.Sprintf(measureColFmt, i)),
		})
	}

	var out []Row
	for _, record := range rows[1:] {
		cell := func(i int) string {
			if i < 0 || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := cell(nameIdx)
		if name == "" {
			continue
		}

		row := Row{
			Name:     name,
			Category: cell(categoryIdx),
		}
		for _, s := range slots {
			ing := cell(s.ingredient)
			if ing == "" {
				continue
			}
			row.Ingredients = append(row.Ingredients, domain.IngredientMeasure{
				Name:    ing,
				Measure: cell(s.measure),
			})
		}
		out = append(out, row)
	}

	if len(out) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return out, nil
}

func columnOf(header []string, name string) int {
	for i, cell := range header {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}
