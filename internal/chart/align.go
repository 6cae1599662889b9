package chart

import (
	"fmt"
	"time"
)

// NearestCandle returns the index of the candle whose timestamp has the
// minimum absolute difference to t. Ties resolve to the earliest index
// (first minimum in sequence order). The scan is O(n); candle series
// are bounded by the feed page size (1000), so a binary search over the
// sorted timestamps is an available optimization if trade volume ever
// makes n*m comparisons expensive.
func NearestCandle(candles []Candle, t time.Time) (int, error) {
	if len(candles) == 0 {
		return 0, fmt.Errorf("%w: no candles to align against", ErrEmptyResult)
	}

	best := 0
	bestDiff := absDuration(candles[0].Time.Sub(t))
	for i := 1; i < len(candles); i++ {
		diff := absDuration(candles[i].Time.Sub(t))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
