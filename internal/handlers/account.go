package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=handlers

// OwnerRecipeLister lists the recipes of one author.
type OwnerRecipeLister interface {
	ListByOwner(ctx context.Context, ownerLogin string) ([]models.RecipeDB, error)
}

// AccountResponse is the caller's profile with their recipes
// swagger:model AccountResponse
type AccountResponse struct {
	User    models.UserProfile `json:"user"`
	Recipes []models.RecipeDB  `json:"recipes"`
}

// NewAccountHandler returns an HTTP handler for the caller's account page.
// @Summary Account
// @Description Returns the logged-in user and their recipes, newest first
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.AccountResponse "Account"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /account [get]
// @Security BearerAuth
func NewAccountHandler(svc OwnerRecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}

		recipes, err := svc.ListByOwner(r.Context(), user.Login)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if recipes == nil {
			recipes = []models.RecipeDB{}
		}

		writeJSON(w, http.StatusOK, AccountResponse{
			User:    user.Profile(),
			Recipes: recipes,
		})
	}
}
