package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountTrade represents one executed trade imported from the account
// trade history. The column set mirrors the exchange execution record;
// only symbol, side, price, qty, realizedPnl and time are consumed by
// the chart pipeline, the rest is kept for auditing.
type AccountTrade struct {
	gorm.Model
	Symbol          string    `gorm:"index:idx_symbol_time" json:"symbol"`
	OrderID         int64     `json:"order_id"`
	Side            string    `json:"side"` // "BUY" or "SELL"
	Price           float64   `json:"price"`
	Qty             float64   `json:"qty"`
	RealizedPnl     float64   `json:"realized_pnl"`
	QuoteQty        float64   `json:"quote_qty"`
	Commission      float64   `json:"commission"`
	CommissionAsset string    `json:"commission_asset"`
	Time            time.Time `gorm:"index:idx_symbol_time" json:"time"`
}

func (AccountTrade) TableName() string {
	return "account_trades"
}
