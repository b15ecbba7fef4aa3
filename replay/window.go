package replay

import "math"

// window keeps the most recent prices of a replay and derives cheap rolling
// statistics from them without any indicator warm-up.
type window struct {
	size int
	buf  []float64
}

func newWindow(size int) *window {
	if size < 2 {
		size = 16
	}
	return &window{size: size, buf: make([]float64, 0, size)}
}

func (w *window) push(v float64) {
	if len(w.buf) == w.size {
		copy(w.buf, w.buf[1:])
		w.buf = w.buf[:w.size-1]
	}
	w.buf = append(w.buf, v)
}

func (w *window) len() int { return len(w.buf) }

// tail returns the last lookback+1 prices, or all of them when fewer are
// held.
func (w *window) tail(lookback int) []float64 {
	if lookback >= len(w.buf) {
		return w.buf
	}
	return w.buf[len(w.buf)-lookback-1:]
}

// trend scores up and down moves over the last six steps and returns +1,
// -1 or 0 once the net score clears max(2, lookback/3).
func (w *window) trend() int {
	if len(w.buf) < 2 {
		return 0
	}
	seg := w.tail(6)
	score := 0
	for i := 1; i < len(seg); i++ {
		switch {
		case seg[i] > seg[i-1]:
			score++
		case seg[i] < seg[i-1]:
			score--
		}
	}
	threshold := max((len(seg)-1)/3, 2)
	switch {
	case score >= threshold:
		return 1
	case score <= -threshold:
		return -1
	}
	return 0
}

// slope is the least-squares slope over the last eight steps.
func (w *window) slope() float64 {
	if len(w.buf) < 2 {
		return 0
	}
	seg := w.tail(8)
	n := float64(len(seg))
	var sx, sy, sxy, sxx float64
	for i, y := range seg {
		x := float64(i)
		sx += x
		sy += y
		sxy += x * y
		sxx += x * x
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

// volatility is the mean absolute step over the last eight steps.
func (w *window) volatility() float64 {
	if len(w.buf) < 2 {
		return 0
	}
	seg := w.tail(8)
	var sum float64
	for i := 1; i < len(seg); i++ {
		sum += math.Abs(seg[i] - seg[i-1])
	}
	return sum / float64(len(seg)-1)
}
