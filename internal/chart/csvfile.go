package chart

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// tradeTimeLayout is the exact date-time format of tabular trade files.
const tradeTimeLayout = "2006-01-02 15:04:05"

// csvRequiredColumns are the columns a tabular trade file must carry.
var csvRequiredColumns = []string{"symbol", "entry_dt", "exit_dt", "entry_price", "exit_price", "qty"}

// CSVSource yields normalized trades from a tabular trade file. The
// file carries entry/exit pairs per position; the canonical record is
// keyed on the entry, and the signed qty column determines the
// position type.
type CSVSource struct {
	Path string
}

// Trades loads the whole file, then filters by symbol and inclusive
// entry-time range. Column and format problems are fatal; a filter
// that matches nothing is an empty slice, not an error.
func (s CSVSource) Trades(symbol string, start, end time.Time) ([]TradeRecord, error) {
	all, err := LoadTradesFromCSV(s.Path)
	if err != nil {
		return nil, err
	}

	trades := make([]TradeRecord, 0, len(all))
	for _, t := range all {
		if t.Symbol != symbol {
			continue
		}
		if t.Time.Before(start) || t.Time.After(end) {
			continue
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// LoadTradesFromCSV parses a tabular trade file into canonical records.
// The file must have a header row naming at least the required columns;
// a missing column is ErrMissingColumn, a cell that does not match the
// expected numeric or time format is ErrDataFormat. The date-time
// columns carry no zone and are interpreted as UTC.
func LoadTradesFromCSV(path string) ([]TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: trade file has no header row", ErrMissingColumn)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range csvRequiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	trades := make([]TradeRecord, 0, len(records)-1)
	for line, row := range records[1:] {
		entry, err := time.ParseInLocation(tradeTimeLayout, row[col["entry_dt"]], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d entry_dt: %v", ErrDataFormat, line+2, err)
		}
		// exit_dt is not consumed downstream but its format is still enforced.
		if _, err := time.ParseInLocation(tradeTimeLayout, row[col["exit_dt"]], time.UTC); err != nil {
			return nil, fmt.Errorf("%w: row %d exit_dt: %v", ErrDataFormat, line+2, err)
		}
		price, err := strconv.ParseFloat(row[col["entry_price"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d entry_price: %v", ErrDataFormat, line+2, err)
		}
		if _, err := strconv.ParseFloat(row[col["exit_price"]], 64); err != nil {
			return nil, fmt.Errorf("%w: row %d exit_price: %v", ErrDataFormat, line+2, err)
		}
		qty, err := strconv.ParseFloat(row[col["qty"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d qty: %v", ErrDataFormat, line+2, err)
		}

		side := SideBuy
		if qty < 0 {
			side = SideSell
		}

		trades = append(trades, TradeRecord{
			Symbol:       row[col["symbol"]],
			Time:         entry,
			Side:         side,
			Price:        price,
			Qty:          qty,
			PositionType: positionTypeFromQty(qty),
		})
	}

	return trades, nil
}
