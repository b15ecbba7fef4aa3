package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func double(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = 2 * v
	}
	return out
}

func TestGetOrCompute_ComputesOnce(t *testing.T) {
	c := New[[]float64]()
	calls := 0
	fn := func(src []float64) []float64 {
		calls++
		return double(src)
	}
	src := []float64{1, 2, 3}

	first := c.GetOrCompute("buy:sma:3", src, fn)
	second := c.GetOrCompute("buy:sma:3", src, fn)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, []float64{2, 4, 6}, first)
	assert.Equal(t, uint64(1), c.Misses())
	assert.Equal(t, uint64(1), c.Hits())
}

func TestGetOrCompute_IgnoresNewSourceForKnownKey(t *testing.T) {
	c := New[[]float64]()
	c.GetOrCompute("k", []float64{1}, double)

	got := c.GetOrCompute("k", []float64{100, 200}, func([]float64) []float64 {
		t.Fatal("compute must not run for a stored key")
		return nil
	})
	assert.Equal(t, []float64{2}, got)
}

func TestGetOrCompute_DistinctKeysComputeSeparately(t *testing.T) {
	c := New[[]float64]()
	var calls int
	fn := func(src []float64) []float64 { calls++; return double(src) }
	c.GetOrCompute(Key("buy", "sma", 5), []float64{1}, fn)
	c.GetOrCompute(Key("buy", "sma", 20), []float64{1}, fn)
	c.GetOrCompute(Key("sell", "sma", 5), []float64{1}, fn)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, c.Len())
}

func TestGetOrCompute_ConcurrentCallersShareOneComputation(t *testing.T) {
	c := New[[]float64]()
	var calls int32
	fn := func(src []float64) []float64 {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return double(src)
	}

	var wg sync.WaitGroup
	results := make([][]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetOrCompute("mid:rsi:14", []float64{1, 2}, fn)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, []float64{2, 4}, r)
	}
}

func TestKey_FormatsParameters(t *testing.T) {
	assert.Equal(t, "buy:macd:12:26:9", Key("buy", "macd", 12, 26, 9))
	assert.Equal(t, "mid:bollinger:20:2.000000", Key("mid", "bollinger", 20, 2.0))

	// Representation noise below the precision collapses to one key.
	assert.Equal(t, Key("sell", "bollinger", 20, 2.0), Key("sell", "bollinger", 20, 2.0000000001))
	assert.NotEqual(t, Key("sell", "bollinger", 20, 2.0), Key("sell", "bollinger", 20, 2.5))

	kb := KeyBuilder{Precision: 2}
	assert.Equal(t, "buy:bollinger:20:1.50", kb.Key("buy", "bollinger", 20, 1.5))

	// Without a precision floats are rendered exactly.
	var exact KeyBuilder
	assert.Equal(t, "buy:bollinger:20:2.5", exact.Key("buy", "bollinger", 20, 2.5))
	assert.NotEqual(t, exact.Key("buy", "bollinger", 20, 2.0), exact.Key("buy", "bollinger", 20, 2.5))
	assert.NotEqual(t, exact.Key("buy", "bollinger", 20, 1.5), exact.Key("buy", "bollinger", 20, 2.4))
}

func TestIndicatorLabel(t *testing.T) {
	assert.Equal(t, "sma", indicatorLabel("buy:sma:5"))
	assert.Equal(t, "atr", indicatorLabel("pair:atr:14"))
	assert.Equal(t, "raw", indicatorLabel("raw"))
}

func TestSlice(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4}

	got, err := Slice(data, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	got, err = Slice(data, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, got)

	// The result is a copy.
	got[0] = 99
	assert.Equal(t, 2.0, data[2])
}

func TestSlice_RejectsBadBounds(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4}
	for _, tc := range []struct{ start, end int }{
		{-1, 3},
		{0, 6},
		{3, 3},
		{4, 2},
		{5, -1},
	} {
		_, err := Slice(data, tc.start, tc.end)
		assert.ErrorIs(t, err, ErrOutOfRange, "start=%d end=%d", tc.start, tc.end)
	}
}
