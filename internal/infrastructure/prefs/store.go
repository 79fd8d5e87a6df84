// Package prefs persists user-curated preferences (bar shelf, personal
// ratings) in a bbolt database. Each save replaces the stored set
// wholesale, so the last writer always wins and a crash mid-write cannot
// corrupt previously committed data.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/drinkdex/backend/internal/domain"
)

// Bucket keys
var (
	bucketShelf   = []byte("barshelf")
	bucketRatings = []byte("ratings")
)

// Store implements domain.PreferenceRepository backed by bbolt. It also
// publishes a change notification after every save so views relying on the
// shelf can refresh without polling.
type Store struct {
	db *bolt.DB

	mu   sync.Mutex
	subs []chan struct{}
}

// NewStore opens (or creates) the preference database at the given path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prefs dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Subscribe returns a channel that receives a signal after every save.
// The channel is buffered; a slow subscriber coalesces bursts into one
// pending signal instead of blocking the writer.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Shelf returns the set of owned ingredient tokens. A store without a
// saved shelf yields an empty set.
func (s *Store) Shelf() (map[string]bool, error) {
	have := make(map[string]bool)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketShelf)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			have[string(k)] = true
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load shelf: %w", err)
	}
	return have, nil
}

// SaveShelf replaces the stored shelf with the given tokens.
func (s *Store) SaveShelf(tokens []string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketShelf) != nil {
			if err := tx.DeleteBucket(bucketShelf); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(bucketShelf)
		if err != nil {
			return err
		}
		for _, token := range tokens {
			if token == "" {
				continue
			}
			if err := b.Put([]byte(token), []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save shelf: %w", err)
	}
	s.notify()
	return nil
}

// PersonalRatings returns the user's own ratings for a view (e.g. "rum").
func (s *Store) PersonalRatings(view string) (map[string]int, error) {
	out := make(map[string]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bucketRatings)
		if parent == nil {
			return nil
		}
		b := parent.Bucket([]byte(view))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if rating, err := strconv.Atoi(string(v)); err == nil {
				out[string(k)] = rating
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load ratings %q: %w", view, err)
	}
	return out, nil
}

// SavePersonalRatings replaces the stored ratings for a view. Ratings are
// 0-100; anything else is rejected before any write happens.
func (s *Store) SavePersonalRatings(view string, ratings map[string]int) error {
	for name, rating := range ratings {
		if rating < 0 || rating > 100 {
			return fmt.Errorf("%w: rating %d for %q outside [0,100]", domain.ErrInvalidRequest, rating, name)
		}
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		parent, err := tx.CreateBucketIfNotExists(bucketRatings)
		if err != nil {
			return err
		}
		if parent.Bucket([]byte(view)) != nil {
			if err := parent.DeleteBucket([]byte(view)); err != nil {
				return err
			}
		}
		b, err := parent.CreateBucket([]byte(view))
		if err != nil {
			return err
		}
		for name, rating := range ratings {
			if err := b.Put([]byte(name), []byte(strconv.Itoa(rating))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save ratings %q: %w", view, err)
	}
	s.notify()
	return nil
}
