package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/recipe-share/internal/logger"
)

var (
	// ErrDuplicateLogin is returned when the users.login unique constraint is violated.
	ErrDuplicateLogin = errors.New("login already exists")
	// ErrDuplicateEmail is returned when the users.email unique constraint is violated.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Unique constraint names created by the initial migration.
const (
	usersLoginKey = "users_login_key"
	usersEmailKey = "users_email_key"
)

// mapUserError translates unique violations on the users table into sentinel errors.
func mapUserError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case usersLoginKey:
		return ErrDuplicateLogin
	case usersEmailKey:
		return ErrDuplicateEmail
	}
	return err
}

// logQuery writes one log line per executed statement.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
