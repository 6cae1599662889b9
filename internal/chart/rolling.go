package chart

import "fmt"

// ratioEpsilon guards the long/short ratio against a window that is
// entirely flat.
const ratioEpsilon = 1e-10

// RollingPoint is the sliding-window aggregate ending at one trade
// index. Points for the first windowSize-1 indices have Defined false:
// the window is incomplete and every other field is meaningless there.
type RollingPoint struct {
	Defined        bool    `json:"defined"`
	PositionType   int     `json:"position_type"`
	Uniformity     int     `json:"uniformity"`
	LongCount      int     `json:"long_count"`
	ShortCount     int     `json:"short_count"`
	PositionDiff   int     `json:"position_diff"`
	LongShortRatio float64 `json:"long_short_ratio"`
}

// RollingPositionStats computes sliding-window position aggregates over
// the trade sequence: long/short counts, their difference, the
// long/short ratio and a uniformity flag (+1 all long, -1 all short,
// 0 mixed). The result is index-aligned with the input. A sequence
// shorter than the window yields all-undefined points, not an error;
// a window size below 1 is ErrInvalidParameter.
func RollingPositionStats(trades []TradeRecord, windowSize int) ([]RollingPoint, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidParameter, windowSize)
	}

	points := make([]RollingPoint, len(trades))

	longCount, shortCount := 0, 0
	for i, t := range trades {
		points[i].PositionType = t.PositionType

		switch t.PositionType {
		case PositionLong:
			longCount++
		case PositionShort:
			shortCount++
		}
		if i >= windowSize {
			switch trades[i-windowSize].PositionType {
			case PositionLong:
				longCount--
			case PositionShort:
				shortCount--
			}
		}

		if i < windowSize-1 {
			continue
		}

		p := &points[i]
		p.Defined = true
		p.LongCount = longCount
		p.ShortCount = shortCount
		p.PositionDiff = longCount - shortCount
		p.LongShortRatio = float64(longCount) / (float64(longCount) + float64(shortCount) + ratioEpsilon)
		switch {
		case longCount == windowSize:
			p.Uniformity = PositionLong
		case shortCount == windowSize:
			p.Uniformity = PositionShort
		default:
			p.Uniformity = PositionFlat
		}
	}

	return points, nil
}
