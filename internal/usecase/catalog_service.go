package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drinkdex/backend/internal/domain"
	"github.com/drinkdex/backend/internal/infrastructure/alko"
)

// CatalogService owns the current catalog snapshot. Refresh builds a fresh
// snapshot from the feed (fetch -> parse -> derive -> sort); reads always
// see a complete snapshot or ErrNoSnapshot, never a partial one.
type CatalogService struct {
	feed  domain.FeedClient
	debug bool

	mu       sync.RWMutex
	snapshot *domain.CatalogSnapshot
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(feed domain.FeedClient, debug bool) *CatalogService {
	return &CatalogService{feed: feed, debug: debug}
}

// Refresh fetches the feed and replaces the current snapshot wholesale.
// The previous snapshot stays in place when anything fails.
func (s *CatalogService) Refresh(ctx context.Context) (*domain.CatalogSnapshot, error) {
	feedFile, err := s.feed.FetchPriceList(ctx)
	if err != nil {
		return nil, err
	}

	products, err := alko.ParsePriceList(feedFile.Data)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i] = Enrich(products[i])
	}
	SortByValueRatio(products)

	snapshot := &domain.CatalogSnapshot{
		ID:         uuid.NewString(),
		FetchedAt:  time.Now(),
		FromBackup: feedFile.FromBackup,
		Products:   products,
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	if s.debug {
		log.Printf("[CATALOG] Snapshot %s: %d products (backup=%v)",
			snapshot.ID, len(snapshot.Products), snapshot.FromBackup)
	}
	return snapshot, nil
}

// Snapshot returns the current snapshot, or ErrNoSnapshot before the first
// successful refresh.
func (s *CatalogService) Snapshot() (*domain.CatalogSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, domain.ErrNoSnapshot
	}
	return s.snapshot, nil
}

// Filter returns the products of the current snapshot that pass the spec.
func (s *CatalogService) Filter(spec FilterSpec) ([]domain.Product, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return Apply(snap.Products, spec, func(p domain.Product) RecordView {
		return RecordView{Name: p.Name, Category: p.Category}
	}), nil
}

// Categories returns the selectable category values, with the "All"
// sentinel first.
func (s *CatalogService) Categories() ([]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return append([]string{CategoryAll}, snap.Categories()...), nil
}
