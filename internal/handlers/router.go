package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// AuthAPI is everything the routes need from the auth service.
type AuthAPI interface {
	Registerer
	UserLister
	Loginer
	Logouter
	middlewares.Authenticator
}

// RecipeAPI is everything the routes need from the recipe service.
type RecipeAPI interface {
	RecipeCreator
	RecipeGetter
	RecipeLister
	RecipeEditor
	RecipeUpdater
	RecipeDeleter
	OwnerRecipeLister
	RecipeSearcher
}

// RouterConfig holds the dependencies of NewRouter.
type RouterConfig struct {
	Auth       AuthAPI
	Recipes    RecipeAPI
	Tokener    middlewares.Tokener
	Cookies    CookieConfig
	Log        *zap.SugaredLogger
	Version    string
	SwaggerURL string // empty disables /swagger
}

// NewRouter builds the HTTP routes of the service.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(cfg.Log))

	home := NewHomeHandler(cfg.Version)
	listRecipes := NewListRecipesHandler(cfg.Recipes)
	getRecipe := NewGetRecipeHandler(cfg.Recipes)

	// Public routes
	r.Get("/", home)
	r.Get("/home", home)
	r.Get("/about", NewAboutHandler(cfg.Version))
	r.Get("/all_posts", listRecipes)
	r.Get("/all_posts/{id}", getRecipe)
	r.Post("/user/login", NewLoginHandler(cfg.Auth, cfg.Cookies))
	r.Get("/user/user_reg", NewUserListHandler(cfg.Auth))
	r.Post("/user/user_reg", NewRegisterHandler(cfg.Auth))
	r.Get("/user_recipe", listRecipes)
	r.Get("/user_recipe/{id}", getRecipe)
	r.Post("/search", NewSearchHandler(cfg.Recipes))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(cfg.Tokener, cfg.Auth))

		logout := NewLogoutHandler(cfg.Auth, cfg.Cookies)
		deleteRecipe := NewDeleteRecipeHandler(cfg.Recipes)

		r.Get("/logout", logout)
		r.Post("/logout", logout)
		r.Get("/account", NewAccountHandler(cfg.Recipes))
		r.Get("/user_recipe/new_recipe", NewRecipeFormHandler())
		r.Post("/user_recipe/new_recipe", NewCreateRecipeHandler(cfg.Recipes))
		r.Get("/user_recipe/{id}/update", NewEditRecipeHandler(cfg.Recipes))
		r.Post("/user_recipe/{id}/update", NewUpdateRecipeHandler(cfg.Recipes))
		r.Get("/user_recipe/{id}/delete", deleteRecipe)
		r.Post("/user_recipe/{id}/delete", deleteRecipe)
	})

	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
	}

	return r
}
