package types

// Series tags one of the three price sequences a path carries.
type Series string

const (
	BuySeries  Series = "buy"
	SellSeries Series = "sell"
	MidSeries  Series = "mid"
)

// Valid reports whether s names a known series.
func (s Series) Valid() bool {
	switch s {
	case BuySeries, SellSeries, MidSeries:
		return true
	}
	return false
}

// Side is the direction of an order. The string values are what fill
// logs and the orders_filled metric carry.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Opposite returns the side that closes a position opened with s.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Price picks the side of q an order on s trades against: buys lift the
// ask, sells hit the bid.
func (s Side) Price(q Quote) float64 {
	if s == Buy {
		return q.Ask
	}
	return q.Bid
}

// Order is a market order against one simulated instrument. Qty is always
// positive; Side carries the direction.
type Order struct {
	Symbol  string
	Side    Side
	Qty     float64
	Comment string // free text copied into the fill log
}

// Signed is Qty with a positive sign for buys and a negative one for sells.
func (o Order) Signed() float64 {
	if o.Side == Buy {
		return o.Qty
	}
	return -o.Qty
}

// Quote is the two-sided price for a single day. Ask (buy) is never below
// Bid (sell).
type Quote struct {
	Day int
	Ask float64
	Bid float64
}

func (q Quote) Mid() float64 { return (q.Ask + q.Bid) / 2 }

func (q Quote) Spread() float64 { return q.Ask - q.Bid }
