package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes for constraint conflicts.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsConstraintConflict reports whether err is a postgres unique or exclusion
// constraint violation. Used to map index-level double-insert rejections to
// business conflicts instead of 500s.
func IsConstraintConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
}
