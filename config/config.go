package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/drinkdex/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Feed      FeedConfig
	Ratings   map[string]RatingViewConfig
	Cocktails CocktailConfig
	Prefs     PrefsConfig
	Cache     CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FeedConfig holds the price-list feed endpoint and local file locations
type FeedConfig struct {
	URL        string        `mapstructure:"url"`
	LocalPath  string        `mapstructure:"local_path"`
	BackupPath string        `mapstructure:"backup_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RatingViewConfig configures one secondary rating dataset: where it
// lives, which catalog subset it applies to, the acceptance threshold for
// fuzzy matches, and the schema mapping for its columns.
type RatingViewConfig struct {
	Path            string               `mapstructure:"path"`
	Threshold       float64              `mapstructure:"threshold"`
	CategoryKeyword string               `mapstructure:"category_keyword"`
	Schema          domain.DatasetSchema `mapstructure:"schema"`
}

// CocktailConfig holds the cocktail dataset path and the ingredient-index
// policy: the slot bound and the alias table collapsing naming variants
// onto canonical tokens. The alias table is explicit configuration data.
type CocktailConfig struct {
	Path        string            `mapstructure:"path"`
	MaxSlots    int               `mapstructure:"max_ingredient_slots"`
	Aliases     map[string]string `mapstructure:"aliases"`
	Families    map[string]string `mapstructure:"families"`
	FamilyOrder []string          `mapstructure:"family_order"`
}

// PrefsConfig holds the user preference database location
type PrefsConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/drinkdex/")

	v.SetEnvPrefix("DRINKDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Feed defaults
	v.SetDefault("feed.url", "https://www.alko.fi/INTERSHOP/static/WFS/Alko-OnlineShop-Site/-/Alko-OnlineShop/fi_FI/Alkon%20Hinnasto%20Tekstitiedostona/alkon-hinnasto-tekstitiedostona.csv")
	v.SetDefault("feed.local_path", "assets/alko_price_list.csv")
	v.SetDefault("feed.backup_path", "assets/alko_price_list_backup.csv")
	v.SetDefault("feed.timeout", "30s")

	// Rating view defaults: the rum dataset has tightly curated names, so
	// it takes a stricter threshold than the whiskey one
	v.SetDefault("ratings.rum.path", "assets/rumhowler_data.csv")
	v.SetDefault("ratings.rum.threshold", 90)
	v.SetDefault("ratings.rum.category_keyword", "rommi")
	v.SetDefault("ratings.rum.schema.name_column", "Rum")
	v.SetDefault("ratings.rum.schema.score_column", "Score")

	v.SetDefault("ratings.whiskey.path", "assets/whiskey_scores_data.csv")
	v.SetDefault("ratings.whiskey.threshold", 75)
	v.SetDefault("ratings.whiskey.category_keyword", "viski")
	v.SetDefault("ratings.whiskey.schema.name_column", "Whiskey")
	v.SetDefault("ratings.whiskey.schema.score_column", "Score")
	v.SetDefault("ratings.whiskey.schema.review_count_column", "ReviewCount")
	v.SetDefault("ratings.whiskey.schema.source_columns", []string{"Website", "Source"})

	// Cocktail defaults
	v.SetDefault("cocktails.path", "assets/cocktails.csv")
	v.SetDefault("cocktails.max_ingredient_slots", 15)
	v.SetDefault("cocktails.aliases", map[string]string{
		"light rum":       "white rum",
		"bacardi rum":     "white rum",
		"aged rum":        "dark rum",
		"anejo rum":       "dark rum",
		"fresh lime":      "lime juice",
		"juice of a lime": "lime juice",
		"fresh lemon":     "lemon juice",
		"lemon":           "lemon juice",
		"sugar syrup":     "simple syrup",
		"carbonated water": "soda water",
	})
	v.SetDefault("cocktails.families", map[string]string{
		"white rum":    "Spirits",
		"dark rum":     "Spirits",
		"gin":          "Spirits",
		"vodka":        "Spirits",
		"tequila":      "Spirits",
		"triple sec":   "Liqueurs",
		"coffee liqueur": "Liqueurs",
		"dry vermouth": "Wines and Vermouths",
		"sweet vermouth": "Wines and Vermouths",
		"soda water":   "Mixers",
		"tonic water":  "Mixers",
		"cola":         "Mixers",
		"lime juice":   "Fruits and Vegetables",
		"lemon juice":  "Fruits and Vegetables",
		"mint":         "Garnishes",
		"simple syrup": "Sweeteners",
		"sugar":        "Sweeteners",
	})
	v.SetDefault("cocktails.family_order", []string{
		"Spirits", "Liqueurs", "Wines and Vermouths", "Mixers",
		"Garnishes", "Fruits and Vegetables", "Sweeteners", "Other",
	})

	// Prefs defaults
	v.SetDefault("prefs.db_path", "assets/prefs.db")

	// Cache defaults: reconciled views are invalidated by snapshot ID, so
	// the TTL only bounds memory held by superseded snapshots
	v.SetDefault("cache.ttl", "1h")
}

// validate validates the configuration. Policy errors (thresholds, slot
// bounds) are rejected here, never mid-matching.
func validate(config *Config) error {
	if config.Feed.URL == "" {
		return fmt.Errorf("feed URL is required (set DRINKDEX_FEED_URL)")
	}

	for name, view := range config.Ratings {
		if view.Threshold < 0 || view.Threshold > 100 {
			return fmt.Errorf("ratings.%s.threshold must be in [0,100], got: %v", name, view.Threshold)
		}
		if view.Schema.NameColumn == "" || view.Schema.ScoreColumn == "" {
			return fmt.Errorf("ratings.%s.schema must name both the subject and score columns", name)
		}
	}

	if config.Cocktails.MaxSlots <= 0 {
		return fmt.Errorf("cocktails.max_ingredient_slots must be positive, got: %d", config.Cocktails.MaxSlots)
	}

	return nil
}
