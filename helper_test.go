package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// fixedClock returns a clock that starts at start and moves one minute per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

var jan2 = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

// D is a helper for tests to create a decimal from a constant.
func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
