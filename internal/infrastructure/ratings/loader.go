// Package ratings loads secondary rating datasets (rum, whiskey) from
// static CSV files.
package ratings

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/drinkdex/backend/internal/domain"
)

// Loader implements domain.RatingLoader over CSV files.
type Loader struct {
	debug bool
}

// NewLoader creates a new rating dataset loader.
func NewLoader(debug bool) *Loader {
	return &Loader{debug: debug}
}

// Load reads a rating dataset using its configured schema mapping. Column
// positions are resolved once from the header row by name presence. A
// missing file yields ErrDatasetUnavailable; a file whose header lacks the
// name or score column loads as an empty dataset, since ratings are
// supplementary and must never break the pipeline. Rows with a blank
// subject or unparsable score are skipped.
func (l *Loader) Load(path string, schema domain.DatasetSchema) ([]domain.RatingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetUnavailable, path)
		}
		return nil, fmt.Errorf("open rating dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rating dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	nameIdx := columnOf(header, schema.NameColumn)
	scoreIdx := columnOf(header, schema.ScoreColumn)
	if nameIdx < 0 || scoreIdx < 0 {
		log.Printf("[RATINGS] %s: schema columns %q/%q not present, treating dataset as empty",
			path, schema.NameColumn, schema.ScoreColumn)
		return nil, nil
	}

	countIdx := columnOf(header, schema.ReviewCountColumn)

	// First configured source column present in the header wins.
	sourceIdx := -1
	for _, candidate := range schema.SourceColumns {
		if i := columnOf(header, candidate); i >= 0 {
			sourceIdx = i
			break
		}
	}

	var records []domain.RatingRecord
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := cell(nameIdx)
		if name == "" {
			continue
		}
		score, err := strconv.ParseFloat(strings.ReplaceAll(cell(scoreIdx), ",", "."), 64)
		if err != nil {
			continue
		}

		rec := domain.RatingRecord{
			SubjectName: name,
			Score:       score,
			SourceLabel: cell(sourceIdx),
		}
		if count, err := strconv.Atoi(cell(countIdx)); err == nil && count >= 0 {
			rec.ReviewCount = &count
		}
		records = append(records, rec)
	}

	if l.debug {
		log.Printf("[RATINGS] Loaded %d records from %s", len(records), path)
	}
	return records, nil
}

// columnOf returns the index of the named header column, or -1. Empty
// column names (unconfigured optional columns) never match.
func columnOf(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, cell := range header {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}
