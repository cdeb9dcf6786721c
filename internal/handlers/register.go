package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/services"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.UserDB, error)
}

// UserLister lists registered users.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name
	// required: true
	// default: John Doe
	Name string `json:"name"`

	// Login, up to 20 characters
	// required: true
	// default: john_doe
	Login string `json:"login"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Password repeated
	// required: true
	// default: secret123
	PasswordConfirm string `json:"password_confirm"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Login and email must be unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} models.UserProfile "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Invalid request, login or email already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user/user_reg [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		user, err := svc.Register(r.Context(), services.RegisterParams{
			Name:            req.Name,
			Login:           req.Login,
			Email:           req.Email,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user.Profile())
	}
}

// NewUserListHandler returns an HTTP handler listing registered users.
// @Summary List users
// @Description Returns public profiles of all users in registration order
// @Tags auth
// @Produce json
// @Success 200 {array} models.UserProfile "Registered users"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /user/user_reg [get]
func NewUserListHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}
