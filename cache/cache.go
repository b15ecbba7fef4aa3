// Package cache memoizes indicator computations by key and serves
// half-open slices of the stored series.
package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/evdnx/mktsim/metrics"
	"golang.org/x/sync/singleflight"
)

// ErrOutOfRange is wrapped by Slice when the requested bounds do not fit
// the data.
var ErrOutOfRange = errors.New("range out of bounds")

// DefaultPrecision is the number of decimals floats are rendered with in
// keys.
const DefaultPrecision = 6

// Cache stores one computed value per key for the lifetime of the cache.
// Concurrent first requests for the same key run the computation once.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group

	hits   uint64
	misses uint64
}

// New returns an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// GetOrCompute returns the value stored under key, computing it from source
// with fn on the first request. Once a key is stored, later calls return the
// stored value and ignore both source and fn.
func (c *Cache[V]) GetOrCompute(key string, source []float64, fn func([]float64) V) V {
	if v, ok := c.lookup(key); ok {
		return v
	}
	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored the value between our lookup
		// and entering the flight.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v := fn(source)
		c.mu.Lock()
		c.entries[key] = v
		c.misses++
		c.mu.Unlock()
		metrics.CacheMisses.WithLabelValues(indicatorLabel(key)).Inc()
		return v, nil
	})
	return v.(V)
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		metrics.CacheHits.WithLabelValues(indicatorLabel(key)).Inc()
	}
	return v, ok
}

// Len is the number of stored entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Hits and Misses count lookups served from the map and computations run.
func (c *Cache[V]) Hits() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

func (c *Cache[V]) Misses() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.misses
}

// KeyBuilder renders cache keys with a fixed float precision. A Precision
// below 1 renders floats exactly, so distinct values never share a key.
type KeyBuilder struct {
	Precision int
}

func (k KeyBuilder) float(v float64, bits int) string {
	if k.Precision < 1 {
		return strconv.FormatFloat(v, 'g', -1, bits)
	}
	return strconv.FormatFloat(v, 'f', k.Precision, bits)
}

// Key joins the series tag, indicator name and parameters with ':'. Ints
// are rendered in decimal and floats with the configured precision, so
// 2.0 and 2.0000000001 share a key at the default precision.
func (k KeyBuilder) Key(series, name string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(series)
	b.WriteByte(':')
	b.WriteString(name)
	for _, p := range params {
		b.WriteByte(':')
		switch v := p.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case float64:
			b.WriteString(k.float(v, 64))
		case float32:
			b.WriteString(k.float(float64(v), 32))
		case string:
			b.WriteString(v)
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// Key builds a key at DefaultPrecision.
func Key(series, name string, params ...interface{}) string {
	return KeyBuilder{Precision: DefaultPrecision}.Key(series, name, params...)
}

// indicatorLabel pulls the indicator name out of a key for metric labels.
func indicatorLabel(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return key
	}
	return parts[1]
}

// Slice returns a copy of data[start:end]. end == -1 means len(data).
func Slice(data []float64, start, end int) ([]float64, error) {
	if end == -1 {
		end = len(data)
	}
	if start < 0 || end > len(data) || start >= end {
		return nil, fmt.Errorf("%w: [%d,%d) over %d values", ErrOutOfRange, start, end, len(data))
	}
	out := make([]float64, end-start)
	copy(out, data[start:end])
	return out, nil
}
