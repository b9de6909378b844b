package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	constraintActivePair  = "uq_scheduled_matches_active_pair"
	constraintPlayerEmail = "idx_players_email"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a unique_violation raised by the
// named constraint or index.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
