package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFeed struct {
	klines [][]interface{}
	err    error
	calls  int
}

func (f *fakeFeed) GetKlines(_ context.Context, _, _ string, _, _ int64) ([][]interface{}, error) {
	f.calls++
	return f.klines, f.err
}

type fakeTrades struct {
	trades []TradeRecord
	err    error
}

func (f *fakeTrades) Trades(_ string, _, _ time.Time) ([]TradeRecord, error) {
	return f.trades, f.err
}

func testParams() Params {
	return Params{
		Symbol:     "BTCUSDT",
		Start:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		WindowSize: 2,
	}
}

func testTrades() []TradeRecord {
	t0 := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
	return []TradeRecord{
		{Symbol: "BTCUSDT", Time: t0, Side: SideBuy, Price: 100.5, PositionType: PositionLong},
		{Symbol: "BTCUSDT", Time: t0.Add(4 * time.Hour), Side: SideSell, Price: 104, RealizedPnl: 3.5, PositionType: PositionShort},
		{Symbol: "BTCUSDT", Time: t0.Add(9 * time.Hour), Side: SideBuy, Price: 103, PositionType: PositionLong},
	}
}

func testKlines() [][]interface{} {
	return [][]interface{}{
		{float64(1704067200000), "100", "110", "95", "105", "1000"},
		{float64(1704081600000), "105", "108", "100", "102", "800"},
		{float64(1704096000000), "102", "106", "99", "104", "900"},
	}
}

func TestPipelineBuild(t *testing.T) {
	newPipeline := func(feed KlineFetcher, trades TradeSource) *Pipeline {
		return NewPipeline(zap.NewNop(), feed, trades, "4h", DefaultAnnotationOffset)
	}

	t.Run("Success", func(t *testing.T) {
		feed := &fakeFeed{klines: testKlines()}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		data, err := pipeline.Build(context.Background(), testParams())

		require.NoError(t, err)
		assert.Equal(t, "BTCUSDT", data.Symbol)
		assert.Len(t, data.Candles, 3)
		assert.Len(t, data.Annotations, 3)
		assert.Len(t, data.Rolling, 3)

		// Trade at t0+1min aligns to the first candle.
		assert.Equal(t, data.Candles[0].Time, data.Annotations[0].Time)
		assert.Equal(t, KindOpen, data.Annotations[0].Kind)
		assert.InDelta(t, 105.2, data.Annotations[0].Price, 1e-9)
		assert.Equal(t, ColorBuy, data.Annotations[0].Color)

		assert.False(t, data.Rolling[0].Defined)
		assert.True(t, data.Rolling[1].Defined)
	})

	t.Run("Idempotent", func(t *testing.T) {
		feed := &fakeFeed{klines: testKlines()}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		first, err := pipeline.Build(context.Background(), testParams())
		require.NoError(t, err)
		second, err := pipeline.Build(context.Background(), testParams())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("EmptyFeedIsEmptyResult", func(t *testing.T) {
		feed := &fakeFeed{klines: [][]interface{}{}}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		data, err := pipeline.Build(context.Background(), testParams())

		assert.Nil(t, data)
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("NoTradesIsEmptyResult", func(t *testing.T) {
		feed := &fakeFeed{klines: testKlines()}
		pipeline := newPipeline(feed, &fakeTrades{trades: nil})

		data, err := pipeline.Build(context.Background(), testParams())

		assert.Nil(t, data)
		assert.ErrorIs(t, err, ErrEmptyResult)
		// No trades means the feed is never consulted.
		assert.Zero(t, feed.calls)
	})

	t.Run("FeedFailureIsFeedUnavailable", func(t *testing.T) {
		feed := &fakeFeed{err: errors.New("connection refused")}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		_, err := pipeline.Build(context.Background(), testParams())

		assert.ErrorIs(t, err, ErrFeedUnavailable)
	})

	t.Run("MalformedFeedDataIsDataFormat", func(t *testing.T) {
		feed := &fakeFeed{klines: [][]interface{}{
			{float64(1704067200000), "oops", "110", "95", "105", "1000"},
		}}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		_, err := pipeline.Build(context.Background(), testParams())

		assert.ErrorIs(t, err, ErrDataFormat)
	})

	t.Run("InvalidWindowSizeRejectedBeforeAnyFetch", func(t *testing.T) {
		feed := &fakeFeed{klines: testKlines()}
		pipeline := newPipeline(feed, &fakeTrades{trades: testTrades()})

		params := testParams()
		params.WindowSize = 0

		_, err := pipeline.Build(context.Background(), params)

		assert.ErrorIs(t, err, ErrInvalidParameter)
		assert.Zero(t, feed.calls)
	})

	t.Run("ReversedDateRange", func(t *testing.T) {
		pipeline := newPipeline(&fakeFeed{}, &fakeTrades{})

		params := testParams()
		params.Start, params.End = params.End, params.Start

		_, err := pipeline.Build(context.Background(), params)

		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestParseDateRange(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		start, end, err := ParseDateRange("2024-01-01", "2024-01-31")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		_, _, err := ParseDateRange("01/01/2024", "2024-01-31")

		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}
