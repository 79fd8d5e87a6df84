package config

import (
	"os"
	"testing"
	"time"

	"github.com/drinkdex/backend/internal/domain"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("DRINKDEX_SERVER_PORT")
		os.Unsetenv("DRINKDEX_SERVER_ENVIRONMENT")
		os.Unsetenv("DRINKDEX_FEED_URL")
		os.Unsetenv("DRINKDEX_FEED_TIMEOUT")
		os.Unsetenv("DRINKDEX_RATINGS_RUM_THRESHOLD")
		os.Unsetenv("DRINKDEX_COCKTAILS_MAX_INGREDIENT_SLOTS")
		os.Unsetenv("DRINKDEX_PREFS_DB_PATH")
		os.Unsetenv("DRINKDEX_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Feed.URL == "" {
			t.Error("Feed.URL should have a default")
		}
		if cfg.Feed.Timeout != 30*time.Second {
			t.Errorf("Feed.Timeout = %v, want 30s", cfg.Feed.Timeout)
		}
		if cfg.Cocktails.MaxSlots != 15 {
			t.Errorf("Cocktails.MaxSlots = %d, want 15", cfg.Cocktails.MaxSlots)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}

		rum, ok := cfg.Ratings["rum"]
		if !ok {
			t.Fatal("expected a default rum rating view")
		}
		if rum.Threshold != 90 {
			t.Errorf("Ratings[rum].Threshold = %v, want 90", rum.Threshold)
		}
		if rum.CategoryKeyword != "rommi" {
			t.Errorf("Ratings[rum].CategoryKeyword = %s, want rommi", rum.CategoryKeyword)
		}
		if rum.Schema.NameColumn != "Rum" || rum.Schema.ScoreColumn != "Score" {
			t.Errorf("Ratings[rum].Schema = %+v, want Rum/Score", rum.Schema)
		}

		whiskey, ok := cfg.Ratings["whiskey"]
		if !ok {
			t.Fatal("expected a default whiskey rating view")
		}
		if whiskey.Threshold != 75 {
			t.Errorf("Ratings[whiskey].Threshold = %v, want 75", whiskey.Threshold)
		}
		if whiskey.Schema.ReviewCountColumn != "ReviewCount" {
			t.Errorf("Ratings[whiskey].Schema.ReviewCountColumn = %s, want ReviewCount", whiskey.Schema.ReviewCountColumn)
		}
		if len(whiskey.Schema.SourceColumns) != 2 {
			t.Errorf("Ratings[whiskey].Schema.SourceColumns = %v, want two candidates", whiskey.Schema.SourceColumns)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("DRINKDEX_SERVER_PORT", "9090")
		os.Setenv("DRINKDEX_SERVER_ENVIRONMENT", "production")
		os.Setenv("DRINKDEX_FEED_URL", "https://example.com/feed.csv")
		os.Setenv("DRINKDEX_FEED_TIMEOUT", "10s")
		os.Setenv("DRINKDEX_PREFS_DB_PATH", "/var/lib/drinkdex/prefs.db")
		os.Setenv("DRINKDEX_CACHE_TTL", "24h")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Feed.URL != "https://example.com/feed.csv" {
			t.Errorf("Feed.URL = %s, want https://example.com/feed.csv", cfg.Feed.URL)
		}
		if cfg.Feed.Timeout != 10*time.Second {
			t.Errorf("Feed.Timeout = %v, want 10s", cfg.Feed.Timeout)
		}
		if cfg.Prefs.DBPath != "/var/lib/drinkdex/prefs.db" {
			t.Errorf("Prefs.DBPath = %s, want /var/lib/drinkdex/prefs.db", cfg.Prefs.DBPath)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
	})

	t.Run("fails validation for out-of-range threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("DRINKDEX_RATINGS_RUM_THRESHOLD", "150")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for threshold outside [0,100]")
		}
	})

	t.Run("fails validation for non-positive slot bound", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("DRINKDEX_COCKTAILS_MAX_INGREDIENT_SLOTS", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for non-positive slot bound")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Feed: FeedConfig{URL: "https://example.com/feed.csv"},
			Ratings: map[string]RatingViewConfig{
				"rum": {
					Threshold: 90,
					Schema:    domain.DatasetSchema{NameColumn: "Rum", ScoreColumn: "Score"},
				},
			},
			Cocktails: CocktailConfig{MaxSlots: 15},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when feed URL is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Feed.URL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty feed URL")
		}
	})

	t.Run("fails for threshold outside range", func(t *testing.T) {
		cfg := valid()
		view := cfg.Ratings["rum"]
		view.Threshold = -5
		cfg.Ratings["rum"] = view
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative threshold")
		}
	})

	t.Run("fails for schema missing the score column", func(t *testing.T) {
		cfg := valid()
		view := cfg.Ratings["rum"]
		view.Schema.ScoreColumn = ""
		cfg.Ratings["rum"] = view
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for incomplete schema")
		}
	})

	t.Run("fails for non-positive slot bound", func(t *testing.T) {
		cfg := valid()
		cfg.Cocktails.MaxSlots = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for non-positive slot bound")
		}
	})
}
