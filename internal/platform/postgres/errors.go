package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskforge/taskforge-api/internal/store"
)

// PostgreSQL unique violation error code.
const uniqueViolationCode = "23505"

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, optionally on a specific constraint name fragment.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	if constraint == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, constraint)
}

// mapUserConstraintError converts a unique violation on the users table into
// the matching store sentinel, or returns the original error unchanged.
func mapUserConstraintError(err error) error {
	switch {
	case isUniqueViolation(err, "username"):
		return store.ErrUsernameExists
	case isUniqueViolation(err, "email"):
		return store.ErrEmailExists
	default:
		return err
	}
}

// notFoundAs converts sql.ErrNoRows into the given store sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
