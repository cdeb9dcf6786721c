package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Tokener extracts the session token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves a session token to the logged-in user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.UserDB, error)
}

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
	requestIDKey
)

// UserFromContext returns the user set by AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.UserDB, bool) {
	user, ok := ctx.Value(userKey).(*models.UserDB)
	return user, ok && user != nil
}

// TokenFromContext returns the raw session token set by AuthMiddleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// WithUser stores the session user and token in ctx.
func WithUser(ctx context.Context, user *models.UserDB, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

// AuthMiddleware rejects requests without a live session with 401.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			user, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				if errors.Is(err, services.ErrUnauthenticated) {
					logger.Log.Infow("authorization failed", "err", err)
					unauthorized(w)
					return
				}
				logger.Log.Errorw("session lookup failed", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user, tokenString)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, services.ErrUnauthenticated.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg}); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}
