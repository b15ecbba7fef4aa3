package market

import (
	"github.com/evdnx/mktsim/cache"
	"github.com/evdnx/mktsim/indicator"
	"github.com/evdnx/mktsim/types"
)

// pairTag keys indicators computed from both sides at once.
const pairTag = "pair"

// SMA returns the simple moving average of series s over [start, end).
func (p *MarketPath) SMA(s types.Series, period, start, end int) ([]float64, error) {
	src, err := p.source(s)
	if err != nil {
		return nil, err
	}
	out := p.series.GetOrCompute(p.keys.Key(string(s), "sma", period), src, func(x []float64) []float64 {
		return indicator.SMA(x, period)
	})
	return cache.Slice(out, start, end)
}

func (p *MarketPath) EMA(s types.Series, period, start, end int) ([]float64, error) {
	src, err := p.source(s)
	if err != nil {
		return nil, err
	}
	out := p.series.GetOrCompute(p.keys.Key(string(s), "ema", period), src, func(x []float64) []float64 {
		return indicator.EMA(x, period)
	})
	return cache.Slice(out, start, end)
}

func (p *MarketPath) RSI(s types.Series, period, start, end int) ([]float64, error) {
	src, err := p.source(s)
	if err != nil {
		return nil, err
	}
	out := p.series.GetOrCompute(p.keys.Key(string(s), "rsi", period), src, func(x []float64) []float64 {
		return indicator.RSI(x, period)
	})
	return cache.Slice(out, start, end)
}

// MACD returns the MACD line, signal line and histogram of s.
func (p *MarketPath) MACD(s types.Series, fast, slow, signal, start, end int) (line, sig, hist []float64, err error) {
	src, err := p.source(s)
	if err != nil {
		return nil, nil, nil, err
	}
	res := p.macd.GetOrCompute(p.keys.Key(string(s), "macd", fast, slow, signal), src, func(x []float64) indicator.MACDResult {
		return indicator.MACD(x, fast, slow, signal)
	})
	if line, err = cache.Slice(res.Line, start, end); err != nil {
		return nil, nil, nil, err
	}
	// Same length as Line, so the bounds are already known to be valid.
	sig, _ = cache.Slice(res.Signal, start, end)
	hist, _ = cache.Slice(res.Histogram, start, end)
	return line, sig, hist, nil
}

// BollingerBands returns the upper, middle and lower bands of s.
func (p *MarketPath) BollingerBands(s types.Series, period int, stdDev float64, start, end int) (upper, middle, lower []float64, err error) {
	src, err := p.source(s)
	if err != nil {
		return nil, nil, nil, err
	}
	res := p.bands.GetOrCompute(p.keys.Key(string(s), "bollinger", period, stdDev), src, func(x []float64) indicator.BollingerResult {
		return indicator.Bollinger(x, period, stdDev)
	})
	if middle, err = cache.Slice(res.Middle, start, end); err != nil {
		return nil, nil, nil, err
	}
	upper, _ = cache.Slice(res.Upper, start, end)
	lower, _ = cache.Slice(res.Lower, start, end)
	return upper, middle, lower, nil
}

// ATR is the average true range with buy as the high and sell as the low.
func (p *MarketPath) ATR(period, start, end int) ([]float64, error) {
	out := p.series.GetOrCompute(p.keys.Key(pairTag, "atr", period), p.buy, func(high []float64) []float64 {
		return indicator.ATR(high, p.sell, period)
	})
	return cache.Slice(out, start, end)
}

// ---------------------------------------------------------------------
// Per-side accessors.
// ---------------------------------------------------------------------

func (p *MarketPath) BuySMA(period, start, end int) ([]float64, error) {
	return p.SMA(types.BuySeries, period, start, end)
}
func (p *MarketPath) SellSMA(period, start, end int) ([]float64, error) {
	return p.SMA(types.SellSeries, period, start, end)
}
func (p *MarketPath) MidSMA(period, start, end int) ([]float64, error) {
	return p.SMA(types.MidSeries, period, start, end)
}

func (p *MarketPath) BuyEMA(period, start, end int) ([]float64, error) {
	return p.EMA(types.BuySeries, period, start, end)
}
func (p *MarketPath) SellEMA(period, start, end int) ([]float64, error) {
	return p.EMA(types.SellSeries, period, start, end)
}
func (p *MarketPath) MidEMA(period, start, end int) ([]float64, error) {
	return p.EMA(types.MidSeries, period, start, end)
}

func (p *MarketPath) BuyRSI(period, start, end int) ([]float64, error) {
	return p.RSI(types.BuySeries, period, start, end)
}
func (p *MarketPath) SellRSI(period, start, end int) ([]float64, error) {
	return p.RSI(types.SellSeries, period, start, end)
}
func (p *MarketPath) MidRSI(period, start, end int) ([]float64, error) {
	return p.RSI(types.MidSeries, period, start, end)
}

func (p *MarketPath) BuyMACD(fast, slow, signal, start, end int) ([]float64, []float64, []float64, error) {
	return p.MACD(types.BuySeries, fast, slow, signal, start, end)
}
func (p *MarketPath) SellMACD(fast, slow, signal, start, end int) ([]float64, []float64, []float64, error) {
	return p.MACD(types.SellSeries, fast, slow, signal, start, end)
}
func (p *MarketPath) MidMACD(fast, slow, signal, start, end int) ([]float64, []float64, []float64, error) {
	return p.MACD(types.MidSeries, fast, slow, signal, start, end)
}

func (p *MarketPath) BuyBollingerBands(period int, stdDev float64, start, end int) ([]float64, []float64, []float64, error) {
	return p.BollingerBands(types.BuySeries, period, stdDev, start, end)
}
func (p *MarketPath) SellBollingerBands(period int, stdDev float64, start, end int) ([]float64, []float64, []float64, error) {
	return p.BollingerBands(types.SellSeries, period, stdDev, start, end)
}
func (p *MarketPath) MidBollingerBands(period int, stdDev float64, start, end int) ([]float64, []float64, []float64, error) {
	return p.BollingerBands(types.MidSeries, period, stdDev, start, end)
}

// CacheStats reports stored entries, hits and misses across all indicator
// caches.
func (p *MarketPath) CacheStats() (entries int, hits, misses uint64) {
	entries = p.series.Len() + p.macd.Len() + p.bands.Len()
	hits = p.series.Hits() + p.macd.Hits() + p.bands.Hits()
	misses = p.series.Misses() + p.macd.Misses() + p.bands.Misses()
	return entries, hits, misses
}
