package regime

// progress maps a relative day onto [0, 1] across numDays days. A pattern
// of one day (or less) is complete immediately.
func progress(relativeDay, numDays int) float64 {
	if numDays <= 1 {
		return 1
	}
	return phaseProgress(relativeDay, 0, numDays-1)
}

func phaseProgress(day, from, to int) float64 {
	if to <= from {
		return 1
	}
	t := float64(day-from) / float64(to-from)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EarningsMode is the shape of the move towards the earnings target.
type EarningsMode int

const (
	EarningsJump EarningsMode = iota
	EarningsLinear
	EarningsSmoothstep
)

func (m EarningsMode) String() string {
	switch m {
	case EarningsJump:
		return "jump"
	case EarningsLinear:
		return "linear"
	case EarningsSmoothstep:
		return "smoothstep"
	}
	return "unknown"
}

// Earnings walks the price from wherever it is when first updated to a
// random target in [TargetMin, TargetMax] over NumDays days. The shape of
// the walk (jump, linear or smoothstep) is picked on the first call.
type Earnings struct {
	stage
	TargetMin float64
	TargetMax float64
	NumDays   int

	noise       noiseAccumulator
	initialized bool
	base        float64
	target      float64
	mode        EarningsMode
}

func NewEarnings(targetMin, targetMax float64, numDays int, noise float64) *Earnings {
	return &Earnings{
		TargetMin: targetMin,
		TargetMax: targetMax,
		NumDays:   numDays,
		noise:     noiseAccumulator{scale: noise},
	}
}

func (e *Earnings) Update(val float64, rng Rand) float64 {
	if !e.initialized {
		e.base = val
		e.mode = EarningsMode(min(int(rng.Float64()*3), 2))
		e.target = uniform(rng, e.TargetMin, e.TargetMax)
		e.initialized = true
	}
	p := progress(e.relativeDay, e.NumDays)
	var price float64
	switch e.mode {
	case EarningsJump:
		price = e.base
		if p > 0 {
			price = e.target
		}
	case EarningsLinear:
		price = lerp(e.base, e.target, p)
	default:
		price = lerp(e.base, e.target, smoothstep(p))
	}
	return e.noise.apply(price, rng)
}

// Mode and Target are only meaningful after the first Update.
func (e *Earnings) Mode() EarningsMode { return e.mode }
func (e *Earnings) Target() float64 { return e.target }
func (e *Earnings) Base() float64 { return e.base }

// threePhase is the piecewise smoothstep path shared by the bounce
// patterns: levels[0] -> levels[1] over the first 30% of the days,
// levels[1] -> levels[2] over the next 30%, levels[2] -> levels[3] over the
// remaining 40%.
type threePhase struct {
	stage
	NumDays int

	noise       noiseAccumulator
	initialized bool
	levels      [4]float64
}

func (t *threePhase) price() float64 {
	rel := t.relativeDay
	p1 := t.NumDays * 30 / 100
	p2 := t.NumDays * 60 / 100
	switch {
	case rel <= p1:
		return lerp(t.levels[0], t.levels[1], smoothstep(phaseProgress(rel, 0, p1)))
	case rel <= p2:
		return lerp(t.levels[1], t.levels[2], smoothstep(phaseProgress(rel, p1, p2)))
	default:
		return lerp(t.levels[2], t.levels[3], smoothstep(phaseProgress(rel, p2, t.NumDays-1)))
	}
}

// Levels returns base, first extreme, second extreme and final level. They
// are fixed by the first Update.
func (t *threePhase) Levels() [4]float64 { return t.levels }

// DeadCatBounce drops by DropRate, recovers RecoveryRate of the loss, then
// declines by DeclineRate from the bounce top.
type DeadCatBounce struct {
	threePhase
	DropRate     float64
	RecoveryRate float64
	DeclineRate  float64
}

func NewDeadCatBounce(dropRate, recoveryRate, declineRate float64, numDays int, noise float64) *DeadCatBounce {
	d := &DeadCatBounce{DropRate: dropRate, RecoveryRate: recoveryRate, DeclineRate: declineRate}
	d.NumDays = numDays
	d.noise.scale = noise
	return d
}

func (d *DeadCatBounce) Update(val float64, rng Rand) float64 {
	if !d.initialized {
		bottom := val * (1 - d.DropRate)
		bounceTop := bottom + (val-bottom)*d.RecoveryRate
		d.levels = [4]float64{val, bottom, bounceTop, bounceTop * (1 - d.DeclineRate)}
		d.initialized = true
	}
	return d.noise.apply(d.price(), rng)
}

// InverseDeadCatBounce rises by RiseRate, gives back PullbackRate of the
// gain, then continues up by ContinueRate.
type InverseDeadCatBounce struct {
	threePhase
	RiseRate     float64
	PullbackRate float64
	ContinueRate float64
}

func NewInverseDeadCatBounce(riseRate, pullbackRate, continueRate float64, numDays int, noise float64) *InverseDeadCatBounce {
	d := &InverseDeadCatBounce{RiseRate: riseRate, PullbackRate: pullbackRate, ContinueRate: continueRate}
	d.NumDays = numDays
	d.noise.scale = noise
	return d
}

func (d *InverseDeadCatBounce) Update(val float64, rng Rand) float64 {
	if !d.initialized {
		peak := val * (1 + d.RiseRate)
		low := peak - (peak-val)*d.PullbackRate
		d.levels = [4]float64{val, peak, low, low * (1 + d.ContinueRate)}
		d.initialized = true
	}
	return d.noise.apply(d.price(), rng)
}
