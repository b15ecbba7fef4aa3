// Package replay streams a generated path through the goti oscillator suite
// day by day, the way a live consumer would see it.
package replay

import (
	"fmt"
	"math"

	"github.com/evdnx/goti"
	"github.com/evdnx/mktsim/config"
	"github.com/evdnx/mktsim/logger"
	"github.com/evdnx/mktsim/market"
	"github.com/evdnx/mktsim/metrics"
	"github.com/evdnx/mktsim/types"
)

// Snapshot is the oscillator state after one day has been fed in.
// Oscillator values are NaN until the suite has enough history.
type Snapshot struct {
	Day   int
	Close float64

	// Ready is false when the suite rejected the bar.
	Ready bool

	RSI  float64
	MFI  float64
	ATSO float64

	HMABullish  bool
	HMABearish  bool
	VWAOBullish bool
	VWAOBearish bool

	// Overbought and Oversold require RSI and MFI to agree.
	Overbought bool
	Oversold   bool

	Trend      int
	Slope      float64
	Volatility float64
}

// Replayer feeds bars into one indicator suite.
type Replayer struct {
	Log   logger.Logger
	Cfg   config.ReplayConfig
	Suite *goti.IndicatorSuite

	prices *window
}

// NewReplayer validates cfg and builds a suite carrying its thresholds.
func NewReplayer(cfg config.ReplayConfig, log logger.Logger) (*Replayer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	ic := goti.DefaultConfig()
	ic.RSIOverbought = cfg.RSIOverbought
	ic.RSIOversold = cfg.RSIOversold
	ic.MFIOverbought = cfg.MFIOverbought
	ic.MFIOversold = cfg.MFIOversold
	ic.VWAOStrongTrend = cfg.VWAOStrongTrend
	ic.ATSEMAperiod = cfg.ATSEMAperiod
	suite, err := goti.NewIndicatorSuiteWithConfig(ic)
	if err != nil {
		return nil, fmt.Errorf("indicator suite: %w", err)
	}
	return &Replayer{Log: log, Cfg: cfg, Suite: suite, prices: newWindow(cfg.Window)}, nil
}

// Step adds one bar and reports the resulting state.
func (r *Replayer) Step(day int, high, low, close float64) Snapshot {
	s := Snapshot{Day: day, Close: close, RSI: math.NaN(), MFI: math.NaN(), ATSO: math.NaN()}

	if err := r.Suite.Add(high, low, close, r.Cfg.Volume); err != nil {
		metrics.ReplayRejectedBars.Inc()
		r.Log.Warn("bar_rejected",
			logger.Int("day", day),
			logger.Float64("high", high),
			logger.Float64("low", low),
			logger.Float64("close", close),
			logger.Err(err),
		)
		return s
	}
	s.Ready = true
	r.prices.push(close)

	if v, err := r.Suite.GetRSI().Calculate(); err == nil {
		s.RSI = v
	}
	if v, err := r.Suite.GetMFI().Calculate(); err == nil {
		s.MFI = v
	}
	if vals := r.Suite.GetATSO().GetATSOValues(); len(vals) > 0 {
		s.ATSO = vals[len(vals)-1]
	}
	if ok, err := r.Suite.GetHMA().IsBullishCrossover(); err == nil {
		s.HMABullish = ok
	}
	if ok, err := r.Suite.GetHMA().IsBearishCrossover(); err == nil {
		s.HMABearish = ok
	}
	if ok, err := r.Suite.GetVWAO().IsBullishCrossover(); err == nil {
		s.VWAOBullish = ok
	}
	if ok, err := r.Suite.GetVWAO().IsBearishCrossover(); err == nil {
		s.VWAOBearish = ok
	}

	// NaN comparisons are false, so neither flag fires during warm-up.
	s.Overbought = s.RSI >= r.Cfg.RSIOverbought && s.MFI >= r.Cfg.MFIOverbought
	s.Oversold = s.RSI <= r.Cfg.RSIOversold && s.MFI <= r.Cfg.MFIOversold

	s.Trend = r.prices.trend()
	s.Slope = r.prices.slope()
	s.Volatility = r.prices.volatility()
	return s
}

// Run replays every day of path. The buy price is the bar high, the sell
// price the low and series picks the close.
func Run(path *market.MarketPath, series types.Series, cfg config.ReplayConfig, log logger.Logger) ([]Snapshot, error) {
	closes, err := path.Prices(series, 0, -1)
	if err != nil {
		return nil, err
	}
	r, err := NewReplayer(cfg, log)
	if err != nil {
		return nil, err
	}
	highs, _ := path.BuyPrices(0, -1)
	lows, _ := path.SellPrices(0, -1)

	out := make([]Snapshot, len(closes))
	rejected := 0
	for day := range closes {
		out[day] = r.Step(day, highs[day], lows[day], closes[day])
		if !out[day].Ready {
			rejected++
		}
	}
	r.Log.Info("replay_finished",
		logger.String("path_id", path.ID().String()),
		logger.String("series", string(series)),
		logger.Int("bars", len(closes)),
		logger.Int("rejected", rejected),
	)
	return out, nil
}
