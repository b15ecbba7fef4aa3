package executor

import (
	"errors"
	"math"

	"github.com/evdnx/mktsim/logger"
	"github.com/evdnx/mktsim/market"
	"github.com/evdnx/mktsim/metrics"
	"github.com/evdnx/mktsim/risk"
	"github.com/evdnx/mktsim/types"
)

// ErrNoQuote is returned when the cursor has run past the end of its path.
var ErrNoQuote = errors.New("no quote available")

// Executor accepts orders against a simulated path and reports the cash
// and per-symbol position left after them.
type Executor interface {
	Submit(o types.Order) error
	Equity() float64
	Position(symbol string) (qty, avgPrice float64)
}

var _ Executor = (*PaperExecutor)(nil)

// PaperExecutor fills market orders against the current day of a path:
// buys lift the ask (buy price), sells hit the bid (sell price). Fills are
// complete with no slippage.
type PaperExecutor struct {
	cursor    *market.Cursor
	log       logger.Logger
	equity    float64
	positions map[string]float64 // positive = long, negative = short
	avgPrice  map[string]float64
}

func NewPaperExecutor(cursor *market.Cursor, startEquity float64, log logger.Logger) *PaperExecutor {
	if log == nil {
		log = logger.NewNop()
	}
	return &PaperExecutor{
		cursor:    cursor,
		log:       log,
		equity:    startEquity,
		positions: make(map[string]float64),
		avgPrice:  make(map[string]float64),
	}
}

// Submit fills o at today's quote. A buy that costs more than the available
// cash is logged and skipped.
func (p *PaperExecutor) Submit(o types.Order) error {
	if o.Qty == 0 {
		return nil
	}
	q, ok := p.cursor.Quote()
	if !ok {
		return ErrNoQuote
	}

	price := o.Side.Price(q)
	signed := o.Signed()
	cost := price * o.Qty
	if o.Side == types.Buy && cost > p.equity {
		p.log.Warn("insufficient_cash",
			logger.String("symbol", o.Symbol),
			logger.Float64("qty", o.Qty),
			logger.Float64("price", price),
			logger.Float64("equity", p.equity),
		)
		return nil
	}

	p.equity -= price * signed
	p.fill(o.Symbol, signed, price)
	metrics.OrdersFilled.WithLabelValues(string(o.Side)).Inc()
	p.log.Info("order_filled",
		logger.String("symbol", o.Symbol),
		logger.String("side", string(o.Side)),
		logger.Float64("qty", o.Qty),
		logger.Float64("price", price),
		logger.Int("day", q.Day),
		logger.Float64("equity", p.equity),
		logger.String("comment", o.Comment),
	)
	return nil
}

// fill updates the position and its average entry price. Adding to a
// position blends the price in, reducing keeps it, and flipping sides
// restarts it at the fill price.
func (p *PaperExecutor) fill(sym string, signed, price float64) {
	prev := p.positions[sym]
	next := prev + signed
	switch {
	case next == 0:
		delete(p.positions, sym)
		delete(p.avgPrice, sym)
		return
	case prev == 0 || math.Signbit(prev) != math.Signbit(next):
		p.avgPrice[sym] = price
	case math.Abs(next) > math.Abs(prev):
		p.avgPrice[sym] = (p.avgPrice[sym]*math.Abs(prev) + price*math.Abs(signed)) / math.Abs(next)
	}
	p.positions[sym] = next
}

// SizedOrder builds an order risking maxRisk of equity with a stop
// stopLossPct away from today's fill price for side.
func (p *PaperExecutor) SizedOrder(symbol string, side types.Side, maxRisk, stopLossPct float64, precision int) (types.Order, error) {
	q, ok := p.cursor.Quote()
	if !ok {
		return types.Order{}, ErrNoQuote
	}
	price := side.Price(q)
	return types.Order{
		Symbol:  symbol,
		Side:    side,
		Qty:     risk.CalcQty(p.equity, maxRisk, stopLossPct, price, precision),
		Comment: "risk_sized",
	}, nil
}

// Advance moves to the next day of the path.
func (p *PaperExecutor) Advance() { p.cursor.Advance() }

// Day is the day orders are currently filled on.
func (p *PaperExecutor) Day() int { return p.cursor.Day() }

// Equity is the cash left after every fill so far.
func (p *PaperExecutor) Equity() float64 { return p.equity }

// Position returns the signed quantity held in sym and its average entry
// price; both are zero when flat.
func (p *PaperExecutor) Position(sym string) (float64, float64) {
	return p.positions[sym], p.avgPrice[sym]
}

// NetValue marks every open position to today's quote: longs at the bid,
// shorts at the ask. ok is false when the cursor is exhausted.
func (p *PaperExecutor) NetValue() (float64, bool) {
	q, ok := p.cursor.Quote()
	if !ok {
		return 0, false
	}
	v := p.equity
	for _, qty := range p.positions {
		if qty > 0 {
			v += qty * q.Bid
		} else {
			v += qty * q.Ask
		}
	}
	return v, true
}
