package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=search.go -destination=search_mock.go -package=handlers

// RecipeSearcher finds recipes by title.
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]models.RecipeDB, error)
}

// SearchRequest represents the JSON body of a title search
// swagger:model SearchRequest
type SearchRequest struct {
	// Part of the title, case-insensitive
	// required: true
	// default: cake
	Query string `json:"query"`
}

// SearchResponse lists the matches
// swagger:model SearchResponse
type SearchResponse struct {
	Query   string            `json:"query"`
	Recipes []models.RecipeDB `json:"recipes"`
}

// NewSearchHandler returns an HTTP handler searching recipes by title.
// @Summary Search recipes
// @Description Case-insensitive substring match on the title, ordered by title
// @Tags recipes
// @Accept json
// @Produce json
// @Param searchRequest body handlers.SearchRequest true "Search"
// @Success 200 {object} handlers.SearchResponse "Matches"
// @Failure 400 {object} models.ErrorResponse "Empty query"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /search [post]
func NewSearchHandler(svc RecipeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		recipes, err := svc.Search(r.Context(), req.Query)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if recipes == nil {
			recipes = []models.RecipeDB{}
		}

		writeJSON(w, http.StatusOK, SearchResponse{Query: req.Query, Recipes: recipes})
	}
}
