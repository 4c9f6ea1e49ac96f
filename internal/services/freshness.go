package services

import (
	"time"

	"github.com/marioc/chessvault/internal/models"
)

// Authoritative reports whether the cache may be trusted for the given
// month. A month still in progress gains new games between requests, so
// the current month is never authoritative; completed months are
// immutable on the archive service and always are, whether or not an
// entry exists yet. "now" is an explicit input so the decision is
// deterministic under test.
func Authoritative(key models.MonthKey, now time.Time) bool {
	return !key.IsCurrent(now)
}
