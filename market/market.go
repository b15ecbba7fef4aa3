// Package market generates synthetic bid/ask price paths from day-ranged
// regime assignments and serves memoized indicators over them.
package market

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/evdnx/mktsim/cache"
	"github.com/evdnx/mktsim/config"
	"github.com/evdnx/mktsim/indicator"
	"github.com/evdnx/mktsim/logger"
	"github.com/evdnx/mktsim/metrics"
	"github.com/evdnx/mktsim/regime"
	"github.com/evdnx/mktsim/types"
	"github.com/google/uuid"
)

// ErrUnknownSeries is returned for a series tag other than buy, sell or mid.
var ErrUnknownSeries = errors.New("unknown price series")

var (
	processStart = time.Now()
	pathCounter  atomic.Int64
)

// autoSeed derives a seed from the process start time plus the monotonic
// time elapsed since, so wall clock steps cannot repeat a seed. The counter
// keeps paths built within one clock tick apart.
func autoSeed() int64 {
	return processStart.UnixNano() + int64(time.Since(processStart)) + pathCounter.Add(1)
}

// RegimeAssignment applies Regime to the half-open day range
// [StartDay, EndDay). Several assignments may share one regime instance;
// its state carries over between them.
type RegimeAssignment struct {
	Regime   regime.Regime
	StartDay int
	EndDay   int
}

// Option customises a MarketPath at construction.
type Option func(o *options)

type options struct {
	seed      int64
	seeded    bool
	log       logger.Logger
	precision int
	defaults  config.IndicatorDefaults
}

// WithSeed makes the path reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithKeyPrecision sets the decimals used for float parameters in cache
// keys. Values below 1 would fold nearby parameters such as 2.0 and 2.5
// into one entry and fall back to cache.DefaultPrecision.
func WithKeyPrecision(p int) Option {
	return func(o *options) {
		if p < 1 {
			p = cache.DefaultPrecision
		}
		o.precision = p
	}
}

func WithIndicatorDefaults(d config.IndicatorDefaults) Option {
	return func(o *options) { o.defaults = d }
}

// MarketPath is an immutable generated price path plus its indicator
// caches. Price series are computed once in New; indicators are computed on
// first request. Reads are safe from multiple goroutines.
type MarketPath struct {
	id        uuid.UUID
	log       logger.Logger
	rng       *rand.Rand
	seed      int64
	seeded    bool
	totalDays int
	swaps     int

	buy  []float64
	sell []float64
	mid  []float64

	keys     cache.KeyBuilder
	defaults config.IndicatorDefaults
	series   *cache.Cache[[]float64]
	macd     *cache.Cache[indicator.MACDResult]
	bands    *cache.Cache[indicator.BollingerResult]
}

// New resolves the assignments into a day map and generates the buy, sell
// and mid series. totalDays is the largest EndDay; the series hold
// totalDays+1 values with the start prices at index 0.
//
// Without WithSeed the path is seeded from the monotonic clock; Seed
// reports the value used so a run can be replayed.
func New(startBuy, startSell float64, assignments []RegimeAssignment, opts ...Option) *MarketPath {
	o := options{
		log:       logger.NewNop(),
		precision: cache.DefaultPrecision,
		defaults:  config.DefaultIndicators(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	seed := o.seed
	if !o.seeded {
		seed = autoSeed()
	}

	p := &MarketPath{
		id:       uuid.New(),
		log:      o.log,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		seeded:   o.seeded,
		keys:     cache.KeyBuilder{Precision: o.precision},
		defaults: o.defaults,
		series:   cache.New[[]float64](),
		macd:     cache.New[indicator.MACDResult](),
		bands:    cache.New[indicator.BollingerResult](),
	}

	days := resolveDays(assignments)
	p.totalDays = len(days)
	p.generate(startBuy, startSell, days)

	metrics.PathsGenerated.WithLabelValues(strconv.FormatBool(p.seeded)).Inc()
	metrics.BidAskSwaps.Add(float64(p.swaps))
	metrics.PathDays.Observe(float64(p.totalDays))
	p.log.Info("path_generated",
		logger.String("path_id", p.id.String()),
		logger.Int("days", p.totalDays),
		logger.Int("assignments", len(assignments)),
		logger.Int("swaps", p.swaps),
		logger.Bool("seeded", p.seeded),
		logger.Int64("seed", p.seed),
	)
	return p
}

// NewFromConfig validates cfg and builds a path from it.
func NewFromConfig(cfg config.PathConfig, assignments []RegimeAssignment, opts ...Option) (*MarketPath, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{WithKeyPrecision(cfg.KeyPrecision), WithIndicatorDefaults(cfg.Indicators)}
	if cfg.Seed != nil {
		base = append(base, WithSeed(*cfg.Seed))
	}
	return New(cfg.StartBuyPrice, cfg.StartSellPrice, assignments, append(base, opts...)...), nil
}

// resolveDays builds the dense day -> regime map. Later assignments
// overwrite earlier ones day by day; days before 0 are ignored.
func resolveDays(assignments []RegimeAssignment) []regime.Regime {
	total := 0
	for _, a := range assignments {
		if a.EndDay > total {
			total = a.EndDay
		}
	}
	days := make([]regime.Regime, total)
	for _, a := range assignments {
		for d := max(a.StartDay, 0); d < a.EndDay; d++ {
			days[d] = a.Regime
		}
	}
	return days
}

func (p *MarketPath) generate(startBuy, startSell float64, days []regime.Regime) {
	p.buy = make([]float64, 1, len(days)+1)
	p.sell = make([]float64, 1, len(days)+1)
	p.buy[0], p.sell[0] = startBuy, startSell

	for day, r := range days {
		b, s := p.buy[day], p.sell[day]
		if r != nil {
			regime.SetDay(r, day)
			b = r.Update(b, p.rng)
			s = r.Update(s, p.rng)
			if s > b {
				b, s = s, b
				p.swaps++
				p.log.Debug("bidask_swapped", logger.Int("day", day))
			}
		}
		p.buy = append(p.buy, b)
		p.sell = append(p.sell, s)
	}

	p.mid = make([]float64, len(p.buy))
	for i := range p.buy {
		p.mid[i] = (p.buy[i] + p.sell[i]) / 2
	}
}

// ID identifies the path in logs.
func (p *MarketPath) ID() uuid.UUID { return p.id }

// TotalDays is the number of simulated days; every series holds one more
// value than this.
func (p *MarketPath) TotalDays() int { return p.totalDays }

// Seed returns the seed the generator ran with and whether it was supplied
// by the caller rather than taken from the clock.
func (p *MarketPath) Seed() (int64, bool) { return p.seed, p.seeded }

func (p *MarketPath) Seeded() bool { return p.seeded }

// Swaps counts days on which the bid/ask pair had to be swapped.
func (p *MarketPath) Swaps() int { return p.swaps }

// Defaults are the indicator parameters the path was configured with.
func (p *MarketPath) Defaults() config.IndicatorDefaults { return p.defaults }

func (p *MarketPath) source(s types.Series) ([]float64, error) {
	switch s {
	case types.BuySeries:
		return p.buy, nil
	case types.SellSeries:
		return p.sell, nil
	case types.MidSeries:
		return p.mid, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSeries, s)
}

// Prices returns a copy of series s over [start, end). end == -1 reads
// through the last day.
func (p *MarketPath) Prices(s types.Series, start, end int) ([]float64, error) {
	src, err := p.source(s)
	if err != nil {
		return nil, err
	}
	return cache.Slice(src, start, end)
}

func (p *MarketPath) BuyPrices(start, end int) ([]float64, error) {
	return p.Prices(types.BuySeries, start, end)
}

func (p *MarketPath) SellPrices(start, end int) ([]float64, error) {
	return p.Prices(types.SellSeries, start, end)
}

func (p *MarketPath) MidPrices(start, end int) ([]float64, error) {
	return p.Prices(types.MidSeries, start, end)
}

// BuyPrice returns the buy price on day, or false when day is outside
// 0..TotalDays.
func (p *MarketPath) BuyPrice(day int) (float64, bool) {
	if day < 0 || day >= len(p.buy) {
		return 0, false
	}
	return p.buy[day], true
}

// SellPrice is BuyPrice for the sell side.
func (p *MarketPath) SellPrice(day int) (float64, bool) {
	if day < 0 || day >= len(p.sell) {
		return 0, false
	}
	return p.sell[day], true
}

// Quote returns both sides of day.
func (p *MarketPath) Quote(day int) (types.Quote, bool) {
	ask, ok := p.BuyPrice(day)
	if !ok {
		return types.Quote{}, false
	}
	return types.Quote{Day: day, Ask: ask, Bid: p.sell[day]}, true
}
