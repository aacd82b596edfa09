package postgres

import (
	"errors"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Duplicate room numbers and duplicate guest phones both surface
// through here; the unique indexes are the sole de-duplication mechanism.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}
