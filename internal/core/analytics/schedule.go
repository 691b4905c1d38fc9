package analytics

import (
	"time"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// NextRunDate steps a schedule forward one frequency interval from the
// given instant, normalized to midnight UTC. Monthly steps follow the
// calendar (Jan 31 + 1 month lands where time.AddDate puts it).
func NextRunDate(frequency string, from time.Time) (time.Time, error) {
	from = from.UTC()

	var next time.Time
	switch frequency {
	case domain.RunDaily:
		next = from.AddDate(0, 0, 1)
	case domain.RunWeekly:
		next = from.AddDate(0, 0, 7)
	case domain.RunBiweekly:
		next = from.AddDate(0, 0, 14)
	case domain.RunMonthly:
		next = from.AddDate(0, 1, 0)
	default:
		return time.Time{}, domain.ErrInvalidRunFrequency
	}

	y, m, d := next.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// EndOfDay returns the last instant of the calendar day containing t, in
// UTC. Anything scheduled up to this boundary is due.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}
