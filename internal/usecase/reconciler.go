package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/drinkdex/backend/internal/domain"
)

// CategoryContains returns a subset predicate that keeps products whose
// category contains the keyword, case-insensitive. An empty keyword keeps
// every product.
func CategoryContains(keyword string) func(domain.Product) bool {
	kw := strings.ToLower(keyword)
	return func(p domain.Product) bool {
		return kw == "" || strings.Contains(strings.ToLower(p.Category), kw)
	}
}

// Reconcile joins the catalog subset selected by the predicate against a
// secondary rating dataset. Each selected product gets the fields of its
// best-matching rating record when the similarity score meets the
// per-dataset threshold; otherwise its rating fields stay nil.
//
// An empty or missing secondary dataset is not an error: every product
// comes back with nil rating fields. The threshold must be in [0,100];
// anything else is a configuration error rejected before any matching.
//
// Deterministic and idempotent: the same inputs always produce the same
// output, and no input slice is mutated.
func Reconcile(
	ctx context.Context,
	products []domain.Product,
	secondary []domain.RatingRecord,
	threshold float64,
	subset func(domain.Product) bool,
) ([]domain.ReconciledProduct, error) {
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("%w: threshold %.1f outside [0,100]", domain.ErrInvalidConfig, threshold)
	}
	if subset == nil {
		subset = func(domain.Product) bool { return true }
	}

	// Normalize all candidate subject names once. Records whose names
	// normalize to nothing carry no matchable key and are left out of
	// the pool.
	candidates := make([]string, 0, len(secondary))
	candidateRecords := make([]domain.RatingRecord, 0, len(secondary))
	for _, r := range secondary {
		key := Normalize(r.SubjectName)
		if key == "" {
			continue
		}
		candidates = append(candidates, key)
		candidateRecords = append(candidateRecords, r)
	}

	var out []domain.ReconciledProduct
	for _, p := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !subset(p) {
			continue
		}

		rec := domain.ReconciledProduct{Product: p}

		query := Normalize(p.Name)
		if query != "" {
			if m, ok := BestMatch(query, candidates); ok && m.Score >= threshold {
				matched := candidateRecords[m.Index]
				score := matched.Score
				rec.Rating = &score
				if matched.ReviewCount != nil {
					count := *matched.ReviewCount
					rec.ReviewCount = &count
				}
				rec.Source = matched.SourceLabel
			}
		}

		out = append(out, rec)
	}

	return out, nil
}
