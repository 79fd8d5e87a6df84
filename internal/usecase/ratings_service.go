package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/drinkdex/backend/internal/domain"
)

// RatingViewConfig is the per-dataset reconciliation policy: dataset
// location, which catalog subset it covers, the acceptance threshold, and
// the column schema.
type RatingViewConfig struct {
	Path            string
	Threshold       float64
	CategoryKeyword string
	Schema          domain.DatasetSchema
}

// RatingsServiceConfig holds configuration for the ratings service.
type RatingsServiceConfig struct {
	Views    map[string]RatingViewConfig
	CacheTTL time.Duration
	Debug    bool
}

// RatingsService builds reconciled rating views over the current catalog
// snapshot: the configured subset of products joined against a secondary
// rating dataset by fuzzy name match, with the user's personal ratings
// merged on top.
type RatingsService struct {
	catalog  *CatalogService
	loader   domain.RatingLoader
	prefs    domain.PreferenceRepository
	cache    domain.CacheRepository
	views    map[string]RatingViewConfig
	cacheTTL time.Duration
	debug    bool
}

// NewRatingsService creates a ratings service. Threshold policy is
// validated here, once, so a bad configuration can never reach the
// matching loop.
func NewRatingsService(
	catalog *CatalogService,
	loader domain.RatingLoader,
	prefs domain.PreferenceRepository,
	cache domain.CacheRepository,
	config RatingsServiceConfig,
) (*RatingsService, error) {
	for name, view := range config.Views {
		if view.Threshold < 0 || view.Threshold > 100 {
			return nil, fmt.Errorf("%w: view %q threshold %.1f outside [0,100]",
				domain.ErrInvalidConfig, name, view.Threshold)
		}
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &RatingsService{
		catalog:  catalog,
		loader:   loader,
		prefs:    prefs,
		cache:    cache,
		views:    config.Views,
		cacheTTL: cacheTTL,
		debug:    config.Debug,
	}, nil
}

// View returns the reconciled products for a named rating view. The
// reconciled slice is cached per (view, snapshot); personal ratings are
// merged on every call since the user can change them at any time.
func (s *RatingsService) View(ctx context.Context, name string) ([]domain.ReconciledProduct, error) {
	view, ok := s.views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownView, name)
	}

	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	records, err := s.reconciled(ctx, name, view, snap)
	if err != nil {
		return nil, err
	}

	return s.withPersonalRatings(name, records), nil
}

// reconciled returns the cached reconciliation for this view and snapshot,
// computing and caching it on a miss.
func (s *RatingsService) reconciled(
	ctx context.Context,
	name string,
	view RatingViewConfig,
	snap *domain.CatalogSnapshot,
) ([]domain.ReconciledProduct, error) {
	cacheKey := fmt.Sprintf("ratings:%s:%s", name, snap.ID)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if records, ok := cached.([]domain.ReconciledProduct); ok {
			return records, nil
		}
	}

	// A missing or unreadable dataset never breaks the view: ratings are
	// supplementary, so the products come back with nil rating fields.
	secondary, err := s.loader.Load(view.Path, view.Schema)
	if err != nil {
		if !errors.Is(err, domain.ErrDatasetUnavailable) || s.debug {
			log.Printf("[RECONCILE] View %q without ratings: %v", name, err)
		}
		secondary = nil
	}

	records, err := Reconcile(ctx, snap.Products, secondary, view.Threshold, CategoryContains(view.CategoryKeyword))
	if err != nil {
		return nil, err
	}

	if s.debug {
		matched := 0
		for _, r := range records {
			if r.Rating != nil {
				matched++
			}
		}
		log.Printf("[RECONCILE] View %q: %d/%d products matched at threshold %.0f",
			name, matched, len(records), view.Threshold)
	}

	if err := s.cache.Set(ctx, cacheKey, records, s.cacheTTL); err != nil {
		log.Printf("[RECONCILE] Cache store failed: %v", err)
	}
	return records, nil
}

// withPersonalRatings copies the records and fills in the user's own
// scores, keyed by canonical product name. The cached slice is shared, so
// it is never written in place.
func (s *RatingsService) withPersonalRatings(view string, records []domain.ReconciledProduct) []domain.ReconciledProduct {
	personal, err := s.prefs.PersonalRatings(view)
	if err != nil {
		log.Printf("[RECONCILE] Personal ratings unavailable for %q: %v", view, err)
		personal = nil
	}

	out := make([]domain.ReconciledProduct, len(records))
	copy(out, records)
	for i := range out {
		if rating, ok := personal[Normalize(out[i].Name)]; ok {
			r := rating
			out[i].PersonalRating = &r
		}
	}
	return out
}

// PersonalRatings returns the user's own scores for a view.
func (s *RatingsService) PersonalRatings(view string) (map[string]int, error) {
	if _, ok := s.views[view]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownView, view)
	}
	return s.prefs.PersonalRatings(view)
}

// SetPersonalRatings replaces the user's scores for a view. Keys are
// canonicalized so lookups against catalog names are stable.
func (s *RatingsService) SetPersonalRatings(view string, ratings map[string]int) error {
	if _, ok := s.views[view]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownView, view)
	}
	canonical := make(map[string]int, len(ratings))
	for name, rating := range ratings {
		if key := Normalize(name); key != "" {
			canonical[key] = rating
		}
	}
	return s.prefs.SavePersonalRatings(view, canonical)
}
