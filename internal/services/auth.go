package services

import (
	"context"
	"errors"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/jwt"
	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/sbilibin2017/recipe-share/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByLogin(ctx context.Context, login string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, login, displayName, email, passwordHash string) (*models.UserDB, error)
}

// TokenManager issues and parses session tokens.
type TokenManager interface {
	Generate(ctx context.Context, userID int64) (*models.Session, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionRevoker records logged-out sessions.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RegisterParams is the registration form.
type RegisterParams struct {
	Name            string
	Login           string
	Email           string
	Password        string
	PasswordConfirm string
}

// AuthService handles registration, login, logout and session resolution.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	tokens  TokenManager
	revoker SessionRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenManager, revoker SessionRevoker) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		tokens:  tokens,
		revoker: revoker,
	}
}

func (p RegisterParams) validate() error {
	if err := firstError(
		required("name", p.Name, maxDisplayNameLen),
		required("login", p.Login, maxLoginLen),
		validateEmail(p.Email),
		required("password", p.Password, 0),
	); err != nil {
		return err
	}
	if len(p.Password) > maxPasswordBytes {
		return &ValidationError{Field: "password", Message: "is too long"}
	}
	if p.Password != p.PasswordConfirm {
		return &ValidationError{Field: "password_confirm", Message: "passwords must match"}
	}
	return nil
}

// Register creates a new user account.
//
// The email is looked up first: when it is already registered nothing is
// inserted and the existing user is returned together with ErrEmailAlreadyExists.
func (svc *AuthService) Register(ctx context.Context, params RegisterParams) (*models.UserDB, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	existing, err := svc.reader.GetByEmail(ctx, params.Email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("email already registered", "login", existing.Login)
		return existing, ErrEmailAlreadyExists
	}

	existing, err = svc.reader.GetByLogin(ctx, params.Login)
	if err != nil {
		logger.Log.Errorw("failed to check login", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("login already taken", "login", params.Login)
		return nil, ErrLoginAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, params.Login, params.Name, params.Email, string(hashedPassword))
	switch {
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return nil, ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrDuplicateLogin):
		return nil, ErrLoginAlreadyExists
	case err != nil:
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, persistenceError(err)
	}

	logger.Log.Infow("user registered", "user_id", user.ID, "login", user.Login)
	return user, nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(user *models.UserDB, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// Login authenticates a user and issues a session.
func (svc *AuthService) Login(ctx context.Context, login, password string) (*models.Session, error) {
	if err := firstError(
		required("login", login, 0),
		required("password", password, 0),
	); err != nil {
		return nil, err
	}

	user, err := svc.reader.GetByLogin(ctx, login)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "login", login)
		return nil, ErrUserNotFound
	}

	if !VerifyPassword(user, password) {
		logger.Log.Infow("invalid credentials", "login", login)
		return nil, ErrBadPassword
	}

	session, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	logger.Log.Infow("user logged in", "user_id", user.ID)
	return session, nil
}

// Authenticate resolves a session token to its user. The user is re-read from
// storage on every call so changes to the account are seen immediately.
func (svc *AuthService) Authenticate(ctx context.Context, token string) (*models.UserDB, error) {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Infow("invalid session token", "err", err)
		return nil, ErrUnauthenticated
	}

	revoked, err := svc.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		logger.Log.Infow("revoked session token used", "user_id", claims.UserID)
		return nil, ErrUnauthenticated
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get session user", "user_id", claims.UserID, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("session user no longer exists", "user_id", claims.UserID)
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Logout revokes the session token until it would have expired.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil || claims.ExpiresAt == nil {
		return ErrUnauthenticated
	}

	if err := svc.revoker.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		logger.Log.Errorw("failed to revoke session", "user_id", claims.UserID, "err", err)
		return err
	}

	logger.Log.Infow("user logged out", "user_id", claims.UserID)
	return nil
}

// ListUsers returns the public profiles of all users in registration order.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}
