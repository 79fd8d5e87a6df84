package alko

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/drinkdex/backend/internal/domain"
)

// Feed column headers. The feed is Finnish; these names are part of its
// published format and must be preserved for compatibility.
const (
	colName     = "Nimi"
	colPrice    = "Hinta"
	colABV      = "Alkoholi-%"
	colVolume   = "Pullokoko"
	colCategory = "Tyyppi"
)

// columnIndex maps each required feed column to its position in the header
// row, resolved once by name presence rather than fixed position.
type columnIndex struct {
	name, price, abv, volume, category int
}

// ParsePriceList turns the raw feed payload into catalog rows. The feed
// carries preamble rows before the header, so the parser scans for the row
// containing all required column names first. Rows missing any required
// field or failing numeric conversion are dropped; exact duplicates across
// the retained columns are removed.
//
// Returns ErrEmptyDataset when no usable row survives, which callers must
// treat differently from the feed being unavailable.
func ParsePriceList(data []byte) ([]domain.Product, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	cols, headerRow := resolveHeader(rows)
	if headerRow < 0 {
		log.Printf("[FEED] Header row with required columns not found")
		return nil, domain.ErrEmptyDataset
	}

	var products []domain.Product
	seen := make(map[string]bool)
	dropped := 0

	for _, row := range rows[headerRow+1:] {
		p, ok := parseRow(row, cols)
		if !ok {
			dropped++
			continue
		}

		// Byte-identical duplicates across the retained columns
		key := strings.Join([]string{
			p.Name,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.FormatFloat(p.ABVPercent, 'f', -1, 64),
			strconv.FormatFloat(p.VolumeLiters, 'f', -1, 64),
			p.Category,
		}, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	if dropped > 0 {
		log.Printf("[FEED] Parsed %d products (%d rows dropped)", len(products), dropped)
	}
	return products, nil
}

// detectDelimiter sniffs the field separator from the first line. The feed
// ships tab-separated; exported copies are sometimes resaved with ; or ,.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	switch {
	case bytes.ContainsRune(line, '\t'):
		return '\t'
	case bytes.ContainsRune(line, ';'):
		return ';'
	default:
		return ','
	}
}

// resolveHeader finds the header row and the position of every required
// column. Returns -1 when no row carries all of them.
func resolveHeader(rows [][]string) (columnIndex, int) {
	for i, row := range rows {
		idx := columnIndex{name: -1, price: -1, abv: -1, volume: -1, category: -1}
		for j, cell := range row {
			switch strings.TrimSpace(cell) {
			case colName:
				idx.name = j
			case colPrice:
				idx.price = j
			case colABV:
				idx.abv = j
			case colVolume:
				idx.volume = j
			case colCategory:
				idx.category = j
			}
		}
		if idx.name >= 0 && idx.price >= 0 && idx.abv >= 0 && idx.volume >= 0 && idx.category >= 0 {
			return idx, i
		}
	}
	return columnIndex{}, -1
}

// parseRow converts one data row. ok is false when any required field is
// absent or unparsable.
func parseRow(row []string, cols columnIndex) (domain.Product, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell(cols.name)
	category := strings.ToLower(cell(cols.category))
	if name == "" || category == "" {
		return domain.Product{}, false
	}

	price, ok := parseDecimal(cell(cols.price))
	if !ok {
		return domain.Product{}, false
	}
	abv, ok := parseDecimal(cell(cols.abv))
	if !ok {
		return domain.Product{}, false
	}
	volume, ok := parseVolume(cell(cols.volume))
	if !ok {
		return domain.Product{}, false
	}

	return domain.Product{
		Name:         name,
		Price:        price,
		ABVPercent:   abv,
		VolumeLiters: volume,
		Category:     category,
	}, true
}

// parseDecimal accepts both dot and comma decimal separators.
func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseVolume strips the unit suffix from a volume descriptor ("0,75 l" ->
// 0.75) and parses the magnitude.
func parseVolume(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "l")
	return parseDecimal(strings.TrimSpace(s))
}
