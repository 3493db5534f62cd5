// Package pricing computes rental costs from a vehicle's daily rate and a
// date range.
//
// Rounding rule: a started day is a charged day. The chargeable day count is
// the duration between the two instants divided by 24 hours, rounded up, so
// two midnights apart is two days and a 36-hour rental is charged as two full
// days. A reversed range clamps to zero rather than erroring; callers that
// consider it invalid must reject it before pricing.
package pricing

import (
	"math"
	"time"
)

// ChargeableDays returns the number of days billed for the span [start, end].
// Returns 0 when end is not after start.
func ChargeableDays(start, end time.Time) int {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return int(math.Ceil(span.Hours() / 24))
}

// Cost returns dailyRate multiplied by the chargeable days of [start, end].
// Returns 0 when end is before start (defensive clamp, not an error).
func Cost(dailyRate float64, start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return dailyRate * float64(ChargeableDays(start, end))
}
