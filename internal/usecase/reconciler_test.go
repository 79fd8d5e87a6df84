package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/drinkdex/backend/internal/domain"
)

func TestCategoryContains(t *testing.T) {
	rum := CategoryContains("rommi")

	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{"exact keyword", "Rommi", true},
		{"keyword inside compound", "Tumma rommi", true},
		{"other category", "Viski", false},
		{"empty category", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rum(domain.Product{Category: tt.category}); got != tt.want {
				t.Errorf("predicate(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}

	t.Run("empty keyword keeps everything", func(t *testing.T) {
		all := CategoryContains("")
		if !all(domain.Product{Category: "Likööri"}) {
			t.Error("empty keyword should keep every product")
		}
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	count := func(n int) *int { return &n }

	products := []domain.Product{
		{Name: "Captain Morgan Spiced", Category: "Rommi"},
		{Name: "Lagavulin 16", Category: "Viski"},
	}
	secondary := []domain.RatingRecord{
		{SubjectName: "Captain Morgan Spiced Gold", Score: 72, ReviewCount: count(340), SourceLabel: "rumratings"},
	}

	t.Run("rejects threshold outside range", func(t *testing.T) {
		for _, threshold := range []float64{-1, 100.5} {
			_, err := Reconcile(ctx, products, secondary, threshold, nil)
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("threshold %v: err = %v, want ErrInvalidConfig", threshold, err)
			}
		}
	})

	t.Run("match below strict threshold stays null", func(t *testing.T) {
		out, err := Reconcile(ctx, products, secondary, 90, CategoryContains("rommi"))
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("len = %d, want 1", len(out))
		}
		if out[0].Rating != nil || out[0].ReviewCount != nil || out[0].Source != "" {
			t.Errorf("expected null rating fields, got %+v", out[0])
		}
	})

	t.Run("match above loose threshold carries rating fields", func(t *testing.T) {
		out, err := Reconcile(ctx, products, secondary, 75, CategoryContains("rommi"))
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("len = %d, want 1", len(out))
		}
		rec := out[0]
		if rec.Rating == nil || *rec.Rating != 72 {
			t.Fatalf("Rating = %v, want 72", rec.Rating)
		}
		if rec.ReviewCount == nil || *rec.ReviewCount != 340 {
			t.Errorf("ReviewCount = %v, want 340", rec.ReviewCount)
		}
		if rec.Source != "rumratings" {
			t.Errorf("Source = %q, want %q", rec.Source, "rumratings")
		}
	})

	t.Run("subset predicate drops other categories", func(t *testing.T) {
		out, err := Reconcile(ctx, products, secondary, 75, CategoryContains("viski"))
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if len(out) != 1 || out[0].Name != "Lagavulin 16" {
			t.Errorf("got %v, want just Lagavulin 16", out)
		}
	})

	t.Run("empty secondary dataset yields null ratings without error", func(t *testing.T) {
		out, err := Reconcile(ctx, products, nil, 90, nil)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if len(out) != len(products) {
			t.Fatalf("len = %d, want %d", len(out), len(products))
		}
		for _, rec := range out {
			if rec.Rating != nil {
				t.Errorf("%s: expected nil rating", rec.Name)
			}
		}
	})

	t.Run("idempotent over repeated runs", func(t *testing.T) {
		first, err := Reconcile(ctx, products, secondary, 75, nil)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		second, err := Reconcile(ctx, products, secondary, 75, nil)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("repeated runs produced different output")
		}
	})

	t.Run("cancelled context stops matching", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Reconcile(cancelled, products, secondary, 75, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})

	t.Run("rating pointers are independent per row", func(t *testing.T) {
		twoRums := []domain.Product{
			{Name: "Captain Morgan Spiced Gold", Category: "Rommi"},
			{Name: "Captain Morgan Spiced Gold 1L", Category: "Rommi"},
		}
		out, err := Reconcile(ctx, twoRums, secondary, 75, nil)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if len(out) != 2 || out[0].Rating == nil || out[1].Rating == nil {
			t.Fatalf("expected both rows matched, got %+v", out)
		}
		*out[0].Rating = 1
		if *out[1].Rating == 1 {
			t.Error("rows share a rating pointer")
		}
	})
}
