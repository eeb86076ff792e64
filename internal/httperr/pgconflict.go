package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres exclusion_violation, raised at commit by the no-overlap
// exclusion constraint on appointments. The constraint is the backstop
// behind the advisory lease and the FOR UPDATE scan.
const pgExclusionViolation = "23P01"

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
