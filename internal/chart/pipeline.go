package chart

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// dateLayout is the calendar-date format of request parameters.
const dateLayout = "2006-01-02"

// KlineFetcher is the price feed seen by the pipeline: symbol,
// interval and an inclusive millisecond epoch range in, raw fixed-width
// records out. Satisfied by the binance REST client.
type KlineFetcher interface {
	GetKlines(ctx context.Context, symbol, interval string, startTime, endTime int64) ([][]interface{}, error)
}

// TradeSource yields normalized trades for a symbol within an inclusive
// time range. StoreSource and CSVSource are the two implementations.
type TradeSource interface {
	Trades(symbol string, start, end time.Time) ([]TradeRecord, error)
}

// Params are the validated inputs of one chart computation. Defaults
// are resolved by the request-handling layer, never in here.
type Params struct {
	Symbol     string
	Start      time.Time
	End        time.Time
	WindowSize int
}

// ChartData is everything the presentation layer needs for one chart:
// the candle series, the trade annotations and the rolling position
// series, all as plain data.
type ChartData struct {
	Symbol      string         `json:"symbol"`
	Candles     []Candle       `json:"candles"`
	Annotations []Annotation   `json:"annotations"`
	Rolling     []RollingPoint `json:"rolling"`
}

// Pipeline runs the full chart computation. It holds no state between
// runs; concurrent Build calls are independent.
type Pipeline struct {
	logger   *zap.Logger
	feed     KlineFetcher
	trades   TradeSource
	interval string
	offset   float64
}

// NewPipeline creates a chart pipeline. interval is the fixed candle
// interval requested from the feed; offset is the vertical annotation
// offset in price units.
func NewPipeline(logger *zap.Logger, feed KlineFetcher, trades TradeSource, interval string, offset float64) *Pipeline {
	return &Pipeline{
		logger:   logger,
		feed:     feed,
		trades:   trades,
		interval: interval,
		offset:   offset,
	}
}

// Build computes the chart for one symbol and date range. Errors are
// raised at the point of detection and returned unmodified; there are
// no retries and no partial results. ErrEmptyResult means there is
// nothing to show, which callers must treat distinctly from failure.
func (p *Pipeline) Build(ctx context.Context, params Params) (*ChartData, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	l := p.logger.With(
		zap.String("symbol", params.Symbol),
		zap.Time("start", params.Start),
		zap.Time("end", params.End),
	)

	trades, err := p.trades.Trades(params.Symbol, params.Start, params.End)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		l.Info("No trades in range")
		return nil, fmt.Errorf("%w: no trades for %s", ErrEmptyResult, params.Symbol)
	}
	l.Info("Loaded trades", zap.Int("count", len(trades)))

	klines, err := p.feed.GetKlines(ctx, params.Symbol, p.interval, params.Start.UnixMilli(), params.End.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	candles, err := BuildCandleSeries(klines)
	if err != nil {
		return nil, err
	}
	l.Info("Built candle series", zap.Int("count", len(candles)))

	annotations := make([]Annotation, 0, len(trades))
	for _, trade := range trades {
		idx, err := NearestCandle(candles, trade.Time)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, BuildAnnotation(trade, candles[idx], p.offset))
	}

	rolling, err := RollingPositionStats(trades, params.WindowSize)
	if err != nil {
		return nil, err
	}

	return &ChartData{
		Symbol:      params.Symbol,
		Candles:     candles,
		Annotations: annotations,
		Rolling:     rolling,
	}, nil
}

// validate rejects unusable parameters before any computation starts.
func (p Params) validate() error {
	if p.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidParameter)
	}
	if p.WindowSize < 1 {
		return fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidParameter, p.WindowSize)
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidParameter, p.End.Format(dateLayout), p.Start.Format(dateLayout))
	}
	return nil
}

// ParseDateRange converts calendar-date strings into an inclusive UTC
// instant range. Malformed dates are ErrInvalidParameter.
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q: %v", ErrInvalidParameter, startDate, err)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q: %v", ErrInvalidParameter, endDate, err)
	}
	return start, end, nil
}
