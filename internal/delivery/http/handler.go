package http

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/drinkdex/backend/internal/domain"
	"github.com/drinkdex/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog   *usecase.CatalogService
	ratings   *usecase.RatingsService
	cocktails *usecase.CocktailService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	ratings *usecase.RatingsService,
	cocktails *usecase.CocktailService,
) *Handler {
	return &Handler{
		catalog:   catalog,
		ratings:   ratings,
		cocktails: cocktails,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "drinkdex-backend",
		"version": "1.0.0",
	})
}

// RefreshCatalog fetches the latest price-list feed and rebuilds the
// catalog snapshot. Responds with snapshot metadata, not the rows.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	snapshot, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrFeedUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snapshot.ID,
		"fetchedAt":  snapshot.FetchedAt,
		"fromBackup": snapshot.FromBackup,
		"products":   len(snapshot.Products),
	})
}

// ListCatalog returns the current snapshot filtered by the query
// parameters: ?category= and ?search=.
func (h *Handler) ListCatalog(c *gin.Context) {
	products, err := h.catalog.Filter(usecase.FilterSpec{
		NameSubstring: c.Query("search"),
		Category:      c.Query("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// ListCategories returns the selectable category values.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// RatingView returns one reconciled rating view (e.g. /ratings/rum).
func (h *Handler) RatingView(c *gin.Context) {
	records, err := h.ratings.View(c.Request.Context(), c.Param("view"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": records, "count": len(records)})
}

// GetPersonalRatings returns the user's own scores for a view.
func (h *Handler) GetPersonalRatings(c *gin.Context) {
	ratings, err := h.ratings.PersonalRatings(c.Param("view"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// PutPersonalRatings replaces the user's own scores for a view.
func (h *Handler) PutPersonalRatings(c *gin.Context) {
	var body struct {
		Ratings map[string]int `json:"ratings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must carry a ratings object"})
		return
	}
	if err := h.ratings.SetPersonalRatings(c.Param("view"), body.Ratings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(body.Ratings)})
}

// ListCocktails returns cocktails filtered by ?search=, ?ingredients=
// (comma-separated, all required) and ?owned_only=true.
func (h *Handler) ListCocktails(c *gin.Context) {
	var required []string
	if raw := c.Query("ingredients"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				required = append(required, part)
			}
		}
	}

	cocktails, err := h.cocktails.List(usecase.FilterSpec{
		NameSubstring:       c.Query("search"),
		RequiredIngredients: required,
		OwnedOnly:           c.Query("owned_only") == "true",
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cocktails": cocktails, "count": len(cocktails)})
}

// ListIngredients returns the ingredient catalog grouped by family.
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"families": h.cocktails.IngredientCatalog()})
}

// GetShelf returns the user's bar shelf as a sorted token list.
func (h *Handler) GetShelf(c *gin.Context) {
	shelf, err := h.cocktails.Shelf()
	if err != nil {
		respondError(c, err)
		return
	}
	tokens := make([]string, 0, len(shelf))
	for token := range shelf {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	c.JSON(http.StatusOK, gin.H{"ingredients": tokens})
}

// PutShelf replaces the user's bar shelf.
func (h *Handler) PutShelf(c *gin.Context) {
	var body struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must carry an ingredients list"})
		return
	}
	if err := h.cocktails.SaveShelf(body.Ingredients); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(body.Ingredients)})
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoSnapshot):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownView):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrFeedUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrEmptyDataset):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
