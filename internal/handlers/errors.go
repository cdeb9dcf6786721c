package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

// ErrorResponse is shared with the auth middleware.
type ErrorResponse = models.ErrorResponse

const (
	msgInvalidBody     = "invalid request body"
	msgInvalidID       = "invalid recipe id"
	msgInvalidLogin    = "invalid login or password"
	msgInternalError   = "internal server error"
	msgLoginRequired   = "authentication required"
	msgRecipeNotFound  = "recipe not found"
	msgNotRecipeAuthor = "only the author can change this recipe"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, services.ErrLoginAlreadyExists):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrBadPassword):
		writeError(w, http.StatusUnauthorized, msgInvalidLogin)
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, msgLoginRequired)
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, msgNotRecipeAuthor)
	case errors.Is(err, services.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, msgRecipeNotFound)
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// recipeID reads the {id} path parameter.
func recipeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
