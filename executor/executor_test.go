package executor

import (
	"errors"
	"testing"

	"github.com/evdnx/mktsim/market"
	"github.com/evdnx/mktsim/testutils"
	"github.com/evdnx/mktsim/types"
)

// steppedCursor returns a cursor over a path whose buy/sell prices rise by
// one each day from 100/99.
func steppedCursor(days int) *market.Cursor {
	r := &testutils.RecordingRegime{Step: 1}
	return market.New(100, 99, []market.RegimeAssignment{{Regime: r, StartDay: 0, EndDay: days}}).Cursor()
}

func TestPaperExecutor_SubmitAndPosition(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(5), 10_000, nil)

	o := types.Order{Symbol: "SIM", Side: types.Buy, Qty: 50}
	if err := ex.Submit(o); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if eq := ex.Equity(); eq != 5_000 {
		t.Fatalf("expected equity 5000 after buying 50*100, got %v", eq)
	}
	qty, avg := ex.Position("SIM")
	if qty != 50 || avg != 100 {
		t.Fatalf("unexpected position: qty=%v avg=%v", qty, avg)
	}
}

func TestPaperExecutor_InsufficientCash(t *testing.T) {
	log := testutils.NewMockLogger()
	ex := NewPaperExecutor(steppedCursor(5), 1000, log)
	o := types.Order{Symbol: "SIM", Side: types.Buy, Qty: 20}
	if err := ex.Submit(o); err != nil {
		t.Fatalf("expected graceful handling, got error %v", err)
	}
	if eq := ex.Equity(); eq != 1000 {
		t.Fatalf("equity should stay unchanged on insufficient cash")
	}
	if log.Count("insufficient_cash") != 1 {
		t.Fatalf("expected an insufficient_cash warning, got %v", log.Levels())
	}
}

func TestPaperExecutor_SellsAtBidAcrossDays(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(5), 1_000, nil)
	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy, Qty: 5}); err != nil {
		t.Fatal(err)
	}
	ex.Advance()
	ex.Advance()
	// Day 2 quotes 102/101.
	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Sell, Qty: 2}); err != nil {
		t.Fatal(err)
	}
	if eq := ex.Equity(); eq != 1_000-500+202 {
		t.Fatalf("unexpected equity %v", eq)
	}
	qty, avg := ex.Position("SIM")
	if qty != 3 || avg != 100 {
		t.Fatalf("reducing must keep the entry price: qty=%v avg=%v", qty, avg)
	}
	nv, ok := ex.NetValue()
	if !ok || nv != 702+3*101 {
		t.Fatalf("unexpected net value %v (ok=%v)", nv, ok)
	}

	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Sell, Qty: 3}); err != nil {
		t.Fatal(err)
	}
	if qty, avg := ex.Position("SIM"); qty != 0 || avg != 0 {
		t.Fatalf("expected flat position, got qty=%v avg=%v", qty, avg)
	}
}

func TestPaperExecutor_ShortThenFlip(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(5), 1_000, nil)
	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Sell, Qty: 2}); err != nil {
		t.Fatal(err)
	}
	if qty, avg := ex.Position("SIM"); qty != -2 || avg != 99 {
		t.Fatalf("unexpected short: qty=%v avg=%v", qty, avg)
	}
	ex.Advance()
	// Day 1 asks 101: buy 3 covers the short and opens 1 long at 101.
	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy, Qty: 3}); err != nil {
		t.Fatal(err)
	}
	if qty, avg := ex.Position("SIM"); qty != 1 || avg != 101 {
		t.Fatalf("unexpected flip: qty=%v avg=%v", qty, avg)
	}
}

func TestPaperExecutor_AveragesAddedLongs(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(5), 10_000, nil)
	_ = ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy, Qty: 1})
	ex.Advance()
	ex.Advance()
	_ = ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy, Qty: 1})
	if qty, avg := ex.Position("SIM"); qty != 2 || avg != 101 {
		t.Fatalf("unexpected position: qty=%v avg=%v", qty, avg)
	}
}

func TestPaperExecutor_NoQuoteAfterLastDay(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(1), 1_000, nil)
	ex.Advance()
	ex.Advance()
	if ex.Day() != 2 {
		t.Fatalf("expected day 2, got %d", ex.Day())
	}
	err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy, Qty: 1})
	if !errors.Is(err, ErrNoQuote) {
		t.Fatalf("expected ErrNoQuote, got %v", err)
	}
	if _, ok := ex.NetValue(); ok {
		t.Fatalf("net value must be unavailable once the path is exhausted")
	}
	// Zero quantity is a no-op even without a quote.
	if err := ex.Submit(types.Order{Symbol: "SIM", Side: types.Buy}); err != nil {
		t.Fatalf("zero qty: %v", err)
	}
}

func TestPaperExecutor_SizedOrder(t *testing.T) {
	ex := NewPaperExecutor(steppedCursor(3), 10_000, nil)
	o, err := ex.SizedOrder("SIM", types.Buy, 0.01, 0.015, 2)
	if err != nil {
		t.Fatal(err)
	}
	// $100 at risk over a $1.50 stop on the 100 ask.
	if o.Qty != 66.66 || o.Side != types.Buy {
		t.Fatalf("unexpected order %+v", o)
	}
	if err := ex.Submit(o); err != nil {
		t.Fatal(err)
	}
	if qty, _ := ex.Position("SIM"); qty != 66.66 {
		t.Fatalf("unexpected position %v", qty)
	}
}

func TestPaperExecutor_CloseWithOppositeSide(t *testing.T) {
	var ex Executor = NewPaperExecutor(steppedCursor(3), 1_000, nil)
	open := types.Order{Symbol: "SIM", Side: types.Sell, Qty: 4}
	if err := ex.Submit(open); err != nil {
		t.Fatal(err)
	}
	closing := types.Order{Symbol: "SIM", Side: open.Side.Opposite(), Qty: open.Qty}
	if err := ex.Submit(closing); err != nil {
		t.Fatal(err)
	}
	if qty, avg := ex.Position("SIM"); qty != 0 || avg != 0 {
		t.Fatalf("expected flat position, got qty=%v avg=%v", qty, avg)
	}
	// Sold at the 99 bid and bought back at the 100 ask on the same day.
	if eq := ex.Equity(); eq != 1_000+4*99-4*100 {
		t.Fatalf("unexpected equity %v", eq)
	}
}
