// Package regime holds the stochastic rules that move a price from one day
// to the next. Every variant is a flat leaf implementing Regime; the ones
// that need to know which day they are on also implement DayIndexer.
package regime

import "math"

// Rand is the randomness a regime draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// Regime advances a single price by one day. Update must be deterministic
// given the state of rng. Implementations may keep state between calls;
// the generator calls Update twice per day (buy side first, then sell).
type Regime interface {
	Update(value float64, rng Rand) float64
}

// DayIndexer is implemented by regimes that depend on the day. SetDayIndex
// is called once per day, before both Update calls of that day.
type DayIndexer interface {
	SetDayIndex(day int)
}

// SetDay forwards day to r when r cares about it.
func SetDay(r Regime, day int) {
	if d, ok := r.(DayIndexer); ok {
		d.SetDayIndex(day)
	}
}

// uniform draws from U(a, b). Bounds may arrive in either order when the
// price is negative.
func uniform(rng Rand, a, b float64) float64 {
	return a + (b-a)*rng.Float64()
}

// gbmStep applies one dt=1 geometric Brownian motion step.
func gbmStep(val, mu, sigma, z float64) float64 {
	return val * math.Exp((mu-0.5*sigma*sigma)+sigma*z)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// stage tracks the day a staged regime was first seen on.
type stage struct {
	startDay    int
	started     bool
	relativeDay int
}

func (s *stage) SetDayIndex(day int) {
	if !s.started {
		s.startDay = day
		s.started = true
	}
	s.relativeDay = day - s.startDay
}

// RelativeDay is the number of days since the regime was first assigned.
func (s *stage) RelativeDay() int { return s.relativeDay }

// noiseAccumulator is the exponentially decayed multiplicative noise shared
// by the pattern regimes.
type noiseAccumulator struct {
	scale float64
	accum float64
}

const noiseDecay = 0.95

func (n *noiseAccumulator) apply(price float64, rng Rand) float64 {
	n.accum = n.accum*noiseDecay + n.scale*rng.NormFloat64()
	return price * (1 + n.accum)
}
