package chart

import "time"

// Side is the direction of an executed trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Position type values derived from a trade's direction.
const (
	PositionLong  = 1
	PositionShort = -1
	PositionFlat  = 0
)

// TradeRecord is the canonical shape of one executed trade, regardless
// of whether it was read from the account store or a tabular file.
// Times are UTC. A zero RealizedPnl conventionally marks a
// position-opening trade.
type TradeRecord struct {
	Symbol       string    `json:"symbol"`
	Time         time.Time `json:"time"`
	Side         Side      `json:"side"`
	Price        float64   `json:"price"`
	Qty          float64   `json:"qty"`
	RealizedPnl  float64   `json:"realized_pnl"`
	PositionType int       `json:"position_type"`
}

// positionTypeFromQty maps a signed quantity to a position type:
// positive is long, negative is short, zero is flat.
func positionTypeFromQty(qty float64) int {
	switch {
	case qty > 0:
		return PositionLong
	case qty < 0:
		return PositionShort
	default:
		return PositionFlat
	}
}

// positionTypeFromSide maps an execution side to a position type, used
// for store records whose quantity is unsigned.
func positionTypeFromSide(side Side) int {
	switch side {
	case SideBuy:
		return PositionLong
	case SideSell:
		return PositionShort
	default:
		return PositionFlat
	}
}
