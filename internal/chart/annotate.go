package chart

import (
	"fmt"
	"strconv"
	"time"
)

// AnnotationKind tells whether a marker opens or closes a position.
type AnnotationKind string

const (
	KindOpen  AnnotationKind = "open"
	KindClose AnnotationKind = "close"
)

// Marker colors by trade side, independent of open/close kind.
const (
	ColorBuy  = "green"
	ColorSell = "red"
)

// DefaultAnnotationOffset is the vertical separation, in price units,
// applied above open markers and below close markers.
const DefaultAnnotationOffset = 0.2

// Annotation is one visual marker derived from a trade and its aligned
// candle. It carries no rendering concerns beyond placement, color and
// a reproducible diagnostic label.
type Annotation struct {
	Time  time.Time      `json:"time"`
	Price float64        `json:"price"`
	Side  Side           `json:"side"`
	Kind  AnnotationKind `json:"kind"`
	Color string         `json:"color"`
	Label string         `json:"label"`
}

// BuildAnnotation classifies a trade against its aligned candle and
// computes marker placement. A zero realized P&L marks an opening
// trade. The marker sits at the candle close for BUY and the candle
// open for SELL, nudged up for opens and down for closes so markers at
// the same base price stay visually separate. Pure function of its
// inputs; the label is byte-stable for identical inputs.
func BuildAnnotation(trade TradeRecord, candle Candle, offset float64) Annotation {
	kind := KindClose
	if trade.RealizedPnl == 0 {
		kind = KindOpen
	}

	y := candle.Close
	if trade.Side != SideBuy {
		y = candle.Open
	}
	if kind == KindOpen {
		y += offset
	} else {
		y -= offset
	}

	color := ColorBuy
	if trade.Side == SideSell {
		color = ColorSell
	}

	label := fmt.Sprintf("Price: %s | Side: %s | Time: %s | RealizedPnl: %s",
		formatPrice(trade.Price),
		trade.Side,
		trade.Time.UTC().Format(tradeTimeLayout),
		formatPrice(trade.RealizedPnl),
	)

	return Annotation{
		Time:  candle.Time,
		Price: y,
		Side:  trade.Side,
		Kind:  kind,
		Color: color,
		Label: label,
	}
}

// formatPrice renders a numeric label field with the shortest exact
// representation, so labels reproduce byte for byte.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
