// Package indicator implements batch technical indicators over a price
// series. Every function returns series of the same length as its input;
// positions without enough history hold NaN. Bad periods and short inputs
// are not errors, they simply yield all-NaN output.
package indicator

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// nanSeries returns n NaNs.
func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// warmup overwrites the first n values with NaN. talib leaves its lookback
// zero-filled, which reads as a real price of 0.
func warmup(out []float64, n int) []float64 {
	for i := 0; i < n && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the simple moving average. The first valid index is period-1.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return nanSeries(len(prices))
	}
	return warmup(talib.Sma(prices, period), period-1)
}

// EMA is the exponential moving average seeded with the SMA of the first
// period values.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return nanSeries(len(prices))
	}
	return warmup(talib.Ema(prices, period), period-1)
}

// RSI is Wilder's relative strength index. It needs period+1 prices; the
// first valid index is period.
func RSI(prices []float64, period int) []float64 {
	result := nanSeries(len(prices))
	if period <= 0 || len(prices) < period+1 {
		return result
	}
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	p := float64(period)
	avgGain /= p
	avgLoss /= p
	result[period] = rsiValue(avgGain, avgLoss)
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else if change < 0 {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		result[i] = rsiValue(avgGain, avgLoss)
	}
	return result
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// MACDResult holds the three MACD series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow). The signal line is an EMA over the
// valid part of the MACD line only, so its warm-up starts at the first
// MACD value rather than at index 0.
func MACD(prices []float64, fast, slow, signal int) MACDResult {
	n := len(prices)
	res := MACDResult{Line: nanSeries(n), Signal: nanSeries(n), Histogram: nanSeries(n)}
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return res
	}
	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)
	for i := max(slow-1, 0); i < n; i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			res.Line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	valid := make([]float64, 0, n)
	idx := make([]int, 0, n)
	for i, v := range res.Line {
		if !math.IsNaN(v) {
			valid = append(valid, v)
			idx = append(idx, i)
		}
	}
	sig := EMA(valid, signal)
	for j, v := range sig {
		if math.IsNaN(v) {
			continue
		}
		i := idx[j]
		res.Signal[i] = v
		res.Histogram[i] = res.Line[i] - v
	}
	return res
}

// BollingerResult holds the three band series.
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes SMA(period) bands at stdDev population standard
// deviations.
func Bollinger(prices []float64, period int, stdDev float64) BollingerResult {
	n := len(prices)
	res := BollingerResult{Upper: nanSeries(n), Middle: SMA(prices, period), Lower: nanSeries(n)}
	if period <= 0 || n < period {
		return res
	}
	for i := period - 1; i < n; i++ {
		mid := res.Middle[i]
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := prices[j] - mid
			sum += d * d
		}
		sd := math.Sqrt(sum / float64(period))
		res.Upper[i] = mid + stdDev*sd
		res.Lower[i] = mid - stdDev*sd
	}
	return res
}

// TrueRange treats buy as the high and sell as the low of each day.
func TrueRange(buy, sell []float64) []float64 {
	n := min(len(buy), len(sell))
	tr := make([]float64, n)
	if n == 0 {
		return tr
	}
	tr[0] = buy[0] - sell[0]
	for i := 1; i < n; i++ {
		tr[i] = math.Max(buy[i]-sell[i],
			math.Max(math.Abs(buy[i]-sell[i-1]), math.Abs(sell[i]-sell[i-1])))
	}
	return tr
}

// ATR is Wilder's average true range over the buy/sell pair. The seed is the
// mean of the first period true ranges (valid at period-1); it needs
// period+1 days of data.
func ATR(buy, sell []float64, period int) []float64 {
	n := len(buy)
	result := nanSeries(n)
	if period <= 0 || n < period+1 || len(sell) < n {
		return result
	}
	tr := TrueRange(buy, sell)
	atr := 0.0
	for i := 0; i < period; i++ {
		atr += tr[i]
	}
	p := float64(period)
	atr /= p
	result[period-1] = atr
	for i := period; i < n; i++ {
		atr = (atr*(p-1) + tr[i]) / p
		result[i] = atr
	}
	return result
}
