package analytics

import (
	"math"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// AdherenceWindowDays is the trailing window used for system adherence.
const AdherenceWindowDays = 30

// AdherenceRate returns the rounded percentage of logs marked adhered.
// The denominator is the number of logged days, not the number of calendar
// days in the window: a day with no log is not counted as a miss. No logs
// means 0, not 100.
func AdherenceRate(logs []*domain.SystemAdherenceLog) int {
	if len(logs) == 0 {
		return 0
	}

	adhered := 0
	for _, l := range logs {
		if l.Adhered {
			adhered++
		}
	}

	return int(math.Round(float64(adhered) / float64(len(logs)) * 100))
}

// IsOnTrack reports whether the rate meets the system's target.
func IsOnTrack(rate, target int) bool {
	return rate >= target
}
