package persistence

import (
	"strings"
)

// isUniqueViolation reports whether err is a unique-index violation on the
// named index. Postgres puts the index name in its message; sqlite reports
// the column list instead, so callers pass both spellings.
func isUniqueViolation(err error, indexNames ...string) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if len(indexNames) == 0 {
		return true
	}
	for _, name := range indexNames {
		if strings.Contains(msg, name) {
			return true
		}
	}
	return false
}
