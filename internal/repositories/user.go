package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

const userColumns = `id, login, display_name, email, password_hash, created_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByLogin returns the user with the given login, or nil when there is none.
func (r *UserReadRepository) GetByLogin(ctx context.Context, login string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login = $1`
	return r.getOne(ctx, query, login)
}

// GetByEmail returns the user with the given email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// List returns all users in registration order.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	users := []models.UserDB{}
	err := r.db.SelectContext(ctx, &users, query)

	logQuery(query, nil, len(users), err)

	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logQuery(query, []any{arg}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored row.
// Unique violations are reported as ErrDuplicateLogin or ErrDuplicateEmail.
func (r *UserWriteRepository) Save(ctx context.Context, login, displayName, email, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (login, display_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + userColumns

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, login, displayName, email, passwordHash)

	// The hash stays out of the log.
	logQuery(query, []any{login, displayName, email, "[REDACTED]"}, user.ID, err)

	if err != nil {
		return nil, mapUserError(err)
	}
	return &user, nil
}
