package main

import (
	"fmt"
	"log"
	"os"

	"github.com/drinkdex/backend/config"
	httpDelivery "github.com/drinkdex/backend/internal/delivery/http"
	"github.com/drinkdex/backend/internal/infrastructure/alko"
	"github.com/drinkdex/backend/internal/infrastructure/cache"
	"github.com/drinkdex/backend/internal/infrastructure/prefs"
	"github.com/drinkdex/backend/internal/infrastructure/ratings"
	"github.com/drinkdex/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.Server.Environment == "development"

	log.Printf("Starting DrinkDex Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Feed: %s", cfg.Feed.URL)

	// Infrastructure
	feedClient := alko.NewClient(alko.ClientConfig{
		FeedURL:    cfg.Feed.URL,
		LocalPath:  cfg.Feed.LocalPath,
		BackupPath: cfg.Feed.BackupPath,
		Timeout:    cfg.Feed.Timeout,
	})
	feedClient.SetDebug(debug)

	prefStore, err := prefs.NewStore(cfg.Prefs.DBPath)
	if err != nil {
		log.Fatalf("Failed to open preference store: %v", err)
	}
	defer prefStore.Close()

	// Preference-changed notifications; views read the store per request,
	// so the subscription only surfaces the event in the log
	go func() {
		for range prefStore.Subscribe() {
			log.Printf("[PREFS] Preferences changed")
		}
	}()

	memoryCache := cache.NewMemoryCache()
	ratingLoader := ratings.NewLoader(debug)

	// Usecase layer
	catalogService := usecase.NewCatalogService(feedClient, debug)

	views := make(map[string]usecase.RatingViewConfig, len(cfg.Ratings))
	for name, view := range cfg.Ratings {
		views[name] = usecase.RatingViewConfig{
			Path:            view.Path,
			Threshold:       view.Threshold,
			CategoryKeyword: view.CategoryKeyword,
			Schema:          view.Schema,
		}
		log.Printf("Rating view %q: threshold=%.0f subset=%q", name, view.Threshold, view.CategoryKeyword)
	}

	ratingsService, err := usecase.NewRatingsService(
		catalogService,
		ratingLoader,
		prefStore,
		memoryCache,
		usecase.RatingsServiceConfig{
			Views:    views,
			CacheTTL: cfg.Cache.TTL,
			Debug:    debug,
		},
	)
	if err != nil {
		log.Fatalf("Failed to configure ratings service: %v", err)
	}

	cocktailService, err := usecase.NewCocktailService(usecase.CocktailServiceConfig{
		Path: cfg.Cocktails.Path,
		Index: usecase.IngredientIndexConfig{
			MaxSlots: cfg.Cocktails.MaxSlots,
			Aliases:  cfg.Cocktails.Aliases,
		},
		Families:    cfg.Cocktails.Families,
		FamilyOrder: cfg.Cocktails.FamilyOrder,
		Debug:       debug,
	}, prefStore)
	if err != nil {
		log.Fatalf("Failed to load cocktail dataset: %v", err)
	}

	// Delivery
	handler := httpDelivery.NewHandler(catalogService, ratingsService, cocktailService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
