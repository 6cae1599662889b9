package chart

import (
	"fmt"
	"time"

	"symbol-charts-go/internal/models"

	"gorm.io/gorm"
)

// StoreSource yields normalized trades from the account trade store.
type StoreSource struct {
	DB *gorm.DB
}

// Trades queries executions for a symbol within an inclusive time range,
// ordered by execution time, and projects them into canonical records.
// No trades in range is an empty slice, not an error.
func (s StoreSource) Trades(symbol string, start, end time.Time) ([]TradeRecord, error) {
	var rows []models.AccountTrade
	err := s.DB.
		Where("symbol = ? AND time >= ? AND time <= ?", symbol, start, end).
		Order("time asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trades for %s: %w", symbol, err)
	}

	trades := make([]TradeRecord, 0, len(rows))
	for _, row := range rows {
		side := Side(row.Side)
		if side != SideBuy && side != SideSell {
			return nil, fmt.Errorf("%w: trade %d has side %q", ErrDataFormat, row.ID, row.Side)
		}
		trades = append(trades, TradeRecord{
			Symbol:       row.Symbol,
			Time:         row.Time.UTC(),
			Side:         side,
			Price:        row.Price,
			Qty:          row.Qty,
			RealizedPnl:  row.RealizedPnl,
			PositionType: positionTypeFromSide(side),
		})
	}

	return trades, nil
}
