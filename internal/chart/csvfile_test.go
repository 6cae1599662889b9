package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTradeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validTradeFile = `symbol,entry_dt,exit_dt,entry_price,exit_price,qty
BTCUSDT,2024-01-01 00:05:00,2024-01-01 04:00:00,42000.5,42500,0.25
BTCUSDT,2024-01-02 10:00:00,2024-01-02 18:00:00,43000,42800,-0.5
ETHUSDT,2024-01-03 09:30:00,2024-01-03 12:00:00,2200,2250,1.0
BTCUSDT,2024-01-05 15:00:00,2024-01-05 19:00:00,44000,44000,0
`

func TestLoadTradesFromCSV(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		path := writeTradeFile(t, validTradeFile)

		trades, err := LoadTradesFromCSV(path)

		require.NoError(t, err)
		require.Len(t, trades, 4)

		assert.Equal(t, "BTCUSDT", trades[0].Symbol)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), trades[0].Time)
		assert.Equal(t, time.UTC, trades[0].Time.Location())
		assert.Equal(t, 42000.5, trades[0].Price)
		assert.Equal(t, SideBuy, trades[0].Side)
		assert.Equal(t, PositionLong, trades[0].PositionType)

		assert.Equal(t, SideSell, trades[1].Side)
		assert.Equal(t, PositionShort, trades[1].PositionType)

		assert.Equal(t, PositionFlat, trades[3].PositionType)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		path := writeTradeFile(t, "symbol,entry_dt,exit_dt,entry_price,exit_price\nBTCUSDT,2024-01-01 00:05:00,2024-01-01 04:00:00,42000.5,42500\n")

		_, err := LoadTradesFromCSV(path)

		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "qty")
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := writeTradeFile(t, "")

		_, err := LoadTradesFromCSV(path)

		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("MalformedTimestamp", func(t *testing.T) {
		path := writeTradeFile(t, "symbol,entry_dt,exit_dt,entry_price,exit_price,qty\nBTCUSDT,01/01/2024 00:05,2024-01-01 04:00:00,42000.5,42500,0.25\n")

		_, err := LoadTradesFromCSV(path)

		assert.ErrorIs(t, err, ErrDataFormat)
	})

	t.Run("MalformedQuantity", func(t *testing.T) {
		path := writeTradeFile(t, "symbol,entry_dt,exit_dt,entry_price,exit_price,qty\nBTCUSDT,2024-01-01 00:05:00,2024-01-01 04:00:00,42000.5,42500,lots\n")

		_, err := LoadTradesFromCSV(path)

		assert.ErrorIs(t, err, ErrDataFormat)
	})
}

func TestCSVSource(t *testing.T) {
	path := writeTradeFile(t, validTradeFile)
	source := CSVSource{Path: path}

	t.Run("FiltersBySymbolAndRange", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

		trades, err := source.Trades("BTCUSDT", start, end)

		require.NoError(t, err)
		require.Len(t, trades, 2)
		for _, trade := range trades {
			assert.Equal(t, "BTCUSDT", trade.Symbol)
			assert.False(t, trade.Time.Before(start))
			assert.False(t, trade.Time.After(end))
		}
	})

	t.Run("NoMatchesIsEmptyNotError", func(t *testing.T) {
		start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

		trades, err := source.Trades("BTCUSDT", start, start.AddDate(0, 1, 0))

		require.NoError(t, err)
		assert.Empty(t, trades)
	})
}
