// Package sqlxrepos implements the domain repositories on PostgreSQL via sqlx.
package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// pgUniqueViolation is the SQLSTATE class lib/pq reports when an insert is
// rejected by a unique constraint.
const pgUniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
	}
	return false
}

// trapNoRowsErr maps psql "no rows" to the domain sentinel.
func trapNoRowsErr(err, sentinel error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return sentinel
	}
	return errors.Wrap(err, msg)
}
