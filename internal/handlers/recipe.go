package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=handlers

// RecipeCreator stores new recipes.
type RecipeCreator interface {
	Create(ctx context.Context, ownerLogin string, fields models.RecipeFields) (*models.RecipeDB, error)
}

// RecipeGetter reads one recipe.
type RecipeGetter interface {
	Get(ctx context.Context, id int64) (*models.RecipeDB, error)
}

// RecipeLister reads all recipes.
type RecipeLister interface {
	ListAll(ctx context.Context) ([]models.RecipeDB, error)
}

// RecipeEditor reads a recipe for its author.
type RecipeEditor interface {
	GetForEdit(ctx context.Context, id int64, callerLogin string) (*models.RecipeDB, error)
}

// RecipeUpdater changes a recipe owned by the caller.
type RecipeUpdater interface {
	Update(ctx context.Context, id int64, callerLogin string, fields models.RecipeFields) (*models.RecipeDB, error)
}

// RecipeDeleter removes a recipe owned by the caller.
type RecipeDeleter interface {
	Delete(ctx context.Context, id int64, callerLogin string) error
}

// RecipeRequest represents the JSON body for creating or updating a recipe
// swagger:model RecipeRequest
type RecipeRequest struct {
	// Title
	// required: true
	// default: Chocolate Cake
	Title string `json:"title"`

	// Food category
	// required: true
	// default: Dessert
	Food string `json:"food"`

	// Recipe text
	// required: true
	// default: Mix and bake.
	Text string `json:"text"`
}

func (r RecipeRequest) fields() models.RecipeFields {
	return models.RecipeFields{Title: r.Title, Category: r.Food, Body: r.Text}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe for the caller.
// @Summary Create recipe
// @Description Stores a new recipe authored by the logged-in user
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipeRequest body handlers.RecipeRequest true "Recipe"
// @Success 201 {object} models.RecipeDB "Created recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user_recipe/new_recipe [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}

		var req RecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		recipe, err := svc.Create(r.Context(), user.Login, req.fields())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, recipe)
	}
}

// NewRecipeFormHandler returns an HTTP handler describing the create form.
// @Summary New recipe form
// @Description Returns an empty recipe for the logged-in user to fill in
// @Tags recipes
// @Produce json
// @Success 200 {object} handlers.RecipeRequest "Empty recipe"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /user_recipe/new_recipe [get]
// @Security BearerAuth
func NewRecipeFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middlewares.UserFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}
		writeJSON(w, http.StatusOK, RecipeRequest{})
	}
}

// NewListRecipesHandler returns an HTTP handler listing all recipes, newest first.
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} models.RecipeDB "Recipes"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /all_posts [get]
// @Router /user_recipe [get]
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipes, err := svc.ListAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, recipes)
	}
}

// NewGetRecipeHandler returns an HTTP handler for one recipe.
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} models.RecipeDB "Recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid id"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Router /all_posts/{id} [get]
// @Router /user_recipe/{id} [get]
func NewGetRecipeHandler(svc RecipeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := recipeID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		recipe, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}

// NewEditRecipeHandler returns an HTTP handler giving a recipe to its author for editing.
// @Summary Get recipe for editing
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} models.RecipeDB "Recipe"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Caller is not the author"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Router /user_recipe/{id}/update [get]
// @Security BearerAuth
func NewEditRecipeHandler(svc RecipeEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}
		id, ok := recipeID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		recipe, err := svc.GetForEdit(r.Context(), id, user.Login)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating a recipe of the caller.
// @Summary Update recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Param recipeRequest body handlers.RecipeRequest true "New recipe content"
// @Success 200 {object} models.RecipeDB "Updated recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Caller is not the author"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user_recipe/{id}/update [post]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}
		id, ok := recipeID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		var req RecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		recipe, err := svc.Update(r.Context(), id, user.Login, req.fields())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting a recipe of the caller.
// @Summary Delete recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} handlers.MessageResponse "Deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Caller is not the author"
// @Failure 404 {object} models.ErrorResponse "Recipe not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user_recipe/{id}/delete [post]
// @Router /user_recipe/{id}/delete [get]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}
		id, ok := recipeID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, msgInvalidID)
			return
		}

		if err := svc.Delete(r.Context(), id, user.Login); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "recipe deleted"})
	}
}
