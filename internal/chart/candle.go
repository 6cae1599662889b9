package chart

import (
	"fmt"
	"strconv"
	"time"
)

// Candle represents one fixed-interval OHLCV price bar. Timestamps are
// UTC; the whole pipeline normalizes to UTC at ingestion.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// BuildCandleSeries decodes the raw klines payload into an ordered
// Candle sequence. The feed returns fixed-width arrays of
// [openTime_ms, open, high, low, close, volume, ...]; only the first
// six fields are consumed. An empty payload yields an empty series and
// no error — callers must treat that distinctly from failure. Any
// malformed field aborts the whole series with ErrDataFormat.
func BuildCandleSeries(klines [][]interface{}) ([]Candle, error) {
	if len(klines) == 0 {
		return []Candle{}, nil
	}

	candles := make([]Candle, 0, len(klines))
	for i, k := range klines {
		if len(k) < 6 {
			return nil, fmt.Errorf("%w: kline %d has %d fields, want at least 6", ErrDataFormat, i, len(k))
		}

		ts, err := klineTimestamp(k[0])
		if err != nil {
			return nil, fmt.Errorf("%w: kline %d time: %v", ErrDataFormat, i, err)
		}

		var ohlcv [5]float64
		for j := 1; j <= 5; j++ {
			v, err := klineNumber(k[j])
			if err != nil {
				return nil, fmt.Errorf("%w: kline %d field %d: %v", ErrDataFormat, i, j, err)
			}
			ohlcv[j-1] = v
		}

		candles = append(candles, Candle{
			Time:   time.UnixMilli(ts).UTC(),
			Open:   ohlcv[0],
			High:   ohlcv[1],
			Low:    ohlcv[2],
			Close:  ohlcv[3],
			Volume: ohlcv[4],
		})
	}

	return candles, nil
}

// klineTimestamp extracts a millisecond epoch. JSON decoding delivers
// numbers as float64, but accept int64 too for callers that feed
// pre-decoded records.
func klineTimestamp(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// klineNumber extracts a price or volume field. The feed serializes
// these as decimal strings.
func klineNumber(v interface{}) (float64, error) {
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %v", t, err)
		}
		return f, nil
	case float64:
		return t, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
