package market

import "github.com/evdnx/mktsim/types"

// Cursor walks a path one day at a time. A day is consumed once both its buy
// and sell price have been read, in either order. A Cursor is not safe for
// concurrent use; create one per consumer.
type Cursor struct {
	path     *MarketPath
	day      int
	buyRead  bool
	sellRead bool
}

// Cursor returns a cursor positioned at day 0.
func (p *MarketPath) Cursor() *Cursor {
	return &Cursor{path: p}
}

// Day is the index the next reads will come from.
func (c *Cursor) Day() int { return c.day }

// Done reports whether every day has been consumed.
func (c *Cursor) Done() bool { return c.day > c.path.totalDays }

// NextBuy returns the current day's buy price. ok is false once the cursor
// has run past the last day.
func (c *Cursor) NextBuy() (float64, bool) {
	v, ok := c.path.BuyPrice(c.day)
	if !ok {
		return 0, false
	}
	c.buyRead = true
	c.maybeAdvance()
	return v, true
}

// NextSell mirrors NextBuy for the sell side.
func (c *Cursor) NextSell() (float64, bool) {
	v, ok := c.path.SellPrice(c.day)
	if !ok {
		return 0, false
	}
	c.sellRead = true
	c.maybeAdvance()
	return v, true
}

// Quote returns the current day's quote without consuming it.
func (c *Cursor) Quote() (types.Quote, bool) {
	return c.path.Quote(c.day)
}

// Advance moves to the next day regardless of which sides were read.
func (c *Cursor) Advance() {
	if c.Done() {
		return
	}
	c.day++
	c.buyRead, c.sellRead = false, false
}

func (c *Cursor) maybeAdvance() {
	if c.buyRead && c.sellRead {
		c.Advance()
	}
}
