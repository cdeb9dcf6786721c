package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/jwt"
	"github.com/sbilibin2017/recipe-share/internal/middlewares"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, login, password string) (*models.Session, error)
}

// Logouter revokes a session.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Login
	// required: true
	// default: john_doe
	Login string `json:"login"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token, also set as the session cookie
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Token expiry
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse is a plain acknowledgement
// swagger:model MessageResponse
type MessageResponse struct {
	// default: logged out
	Message string `json:"message"`
}

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) session(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     jwt.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.Expires = expires
	}
	return cookie
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates the user, sets the session cookie and returns the token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "Session issued"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid login or password"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user/login [post]
func NewLoginHandler(svc Loginer, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		session, err := svc.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		http.SetCookie(w, cookies.session(session.Token, session.ExpiresAt))
		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// NewLogoutHandler returns an HTTP handler ending the caller's session.
// @Summary User logout
// @Description Revokes the current session and clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /logout [post]
// @Router /logout [get]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := middlewares.TokenFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, msgLoginRequired)
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			writeServiceError(w, err)
			return
		}

		http.SetCookie(w, cookies.session("", time.Time{}))
		writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
	}
}
