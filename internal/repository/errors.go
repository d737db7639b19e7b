package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is wrapped by repository lookups that match no record.
var ErrNotFound = errors.New("not found")

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// failure. Callers racing on a natural key recover by re-querying for
// the winning record and converting their create into an update.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
