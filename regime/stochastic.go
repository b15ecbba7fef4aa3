package regime

import "math"

// RandomWalk nudges the price by up to 2% noise, then moves it by
// Volatility in a coin-flipped direction.
type RandomWalk struct {
	Volatility float64
}

func NewRandomWalk(volatility float64) *RandomWalk {
	return &RandomWalk{Volatility: volatility}
}

func (r *RandomWalk) Update(val float64, rng Rand) float64 {
	val += uniform(rng, -val/50, val/50)
	change := val * r.Volatility
	if rng.Float64() > 0.5 {
		change = -change
	}
	return val + change
}

// SineWave adds a sinusoid on top of proportional uniform noise. The phase
// advances one radian per day since the regime was first assigned.
type SineWave struct {
	stage
	Volatility float64
	Amplitude  float64
	Phase      float64
}

func NewSineWave(volatility, amplitude, phase float64) *SineWave {
	return &SineWave{Volatility: volatility, Amplitude: amplitude, Phase: phase}
}

func (s *SineWave) Update(val float64, rng Rand) float64 {
	val += uniform(rng, -val*s.Volatility, val*s.Volatility)
	return val + s.Amplitude*math.Sin(float64(s.relativeDay)+s.Phase)
}

// Drop shrinks the price by Rate per day after proportional noise.
type Drop struct {
	Rate float64
}

func NewDrop(rate float64) *Drop { return &Drop{Rate: rate} }

func (d *Drop) Update(val float64, rng Rand) float64 {
	val += uniform(rng, -val*d.Rate, val*d.Rate)
	return val * (1 - d.Rate)
}

// Spike grows the price by Rate per day after proportional noise.
type Spike struct {
	Rate float64
}

func NewSpike(rate float64) *Spike { return &Spike{Rate: rate} }

func (s *Spike) Update(val float64, rng Rand) float64 {
	val += uniform(rng, -val*s.Rate, val*s.Rate)
	return val * (1 + s.Rate)
}

// GBM is geometric Brownian motion with dt = 1.
type GBM struct {
	Mu    float64
	Sigma float64
}

func NewGBM(mu, sigma float64) *GBM { return &GBM{Mu: mu, Sigma: sigma} }

func (g *GBM) Update(val float64, rng Rand) float64 {
	return gbmStep(val, g.Mu, g.Sigma, rng.NormFloat64())
}

// MeanReversion is a discrete Ornstein-Uhlenbeck step pulling towards Mu
// with speed Theta.
type MeanReversion struct {
	Mu    float64
	Theta float64
	Sigma float64
}

func NewMeanReversion(mu, theta, sigma float64) *MeanReversion {
	return &MeanReversion{Mu: mu, Theta: theta, Sigma: sigma}
}

func (m *MeanReversion) Update(val float64, rng Rand) float64 {
	return val + m.Theta*(m.Mu-val) + m.Sigma*rng.NormFloat64()
}

// JumpDiffusion is a GBM step followed, with probability JumpIntensity, by
// a multiplicative jump drawn from N(JumpSize, |JumpSize|).
type JumpDiffusion struct {
	Mu            float64
	Sigma         float64
	JumpIntensity float64
	JumpSize      float64
}

func NewJumpDiffusion(mu, sigma, jumpIntensity, jumpSize float64) *JumpDiffusion {
	return &JumpDiffusion{Mu: mu, Sigma: sigma, JumpIntensity: jumpIntensity, JumpSize: jumpSize}
}

func (j *JumpDiffusion) Update(val float64, rng Rand) float64 {
	price := gbmStep(val, j.Mu, j.Sigma, rng.NormFloat64())
	if rng.Float64() < j.JumpIntensity {
		jump := j.JumpSize + math.Abs(j.JumpSize)*rng.NormFloat64()
		price *= 1 + jump
	}
	return price
}

// Momentum feeds the previous step's return back into the drift. The
// previous return is shared between the buy and sell calls of a day.
type Momentum struct {
	Mu         float64
	Sigma      float64
	Momentum   float64
	prevReturn float64
}

func NewMomentum(mu, sigma, momentum float64) *Momentum {
	return &Momentum{Mu: mu, Sigma: sigma, Momentum: momentum}
}

func (m *Momentum) Update(val float64, rng Rand) float64 {
	drift := m.Mu + m.Momentum*m.prevReturn
	next := gbmStep(val, drift, m.Sigma, rng.NormFloat64())
	if val != 0 {
		m.prevReturn = (next - val) / val
	} else {
		m.prevReturn = 0
	}
	return next
}

// PrevReturn exposes the return the next call will build its drift on.
func (m *Momentum) PrevReturn() float64 { return m.prevReturn }

// TrendingMeanReversion reverts towards a target that itself drifts by
// Drift per call.
type TrendingMeanReversion struct {
	Mu    float64
	Drift float64
	Theta float64
	Sigma float64
	step  int
}

func NewTrendingMeanReversion(mu, drift, theta, sigma float64) *TrendingMeanReversion {
	return &TrendingMeanReversion{Mu: mu, Drift: drift, Theta: theta, Sigma: sigma}
}

func (t *TrendingMeanReversion) Update(val float64, rng Rand) float64 {
	target := t.Mu + t.Drift*float64(t.step)
	val += t.Theta*(target-val) + t.Sigma*rng.NormFloat64()
	t.step++
	return val
}

// Step is the number of updates applied so far.
func (t *TrendingMeanReversion) Step() int { return t.step }
