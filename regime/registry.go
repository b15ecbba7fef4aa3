package regime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownKind is returned by Build for a kind that has no constructor.
var ErrUnknownKind = errors.New("unknown regime kind")

// Params carries named constructor arguments. Missing keys fall back to the
// variant's default.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func (p Params) getInt(key string, def int) int {
	if v, ok := p[key]; ok {
		return int(v)
	}
	return def
}

// Constructor builds a fresh regime from params.
type Constructor func(p Params) Regime

var registry = map[string]Constructor{
	"random_walk": func(p Params) Regime {
		return NewRandomWalk(p.get("volatility", 0.01))
	},
	"sine_wave": func(p Params) Regime {
		return NewSineWave(p.get("volatility", 0.01), p.get("amplitude", 1), p.get("phase", 0))
	},
	"drop": func(p Params) Regime {
		return NewDrop(p.get("rate", 0.01))
	},
	"spike": func(p Params) Regime {
		return NewSpike(p.get("rate", 0.05))
	},
	"gbm": func(p Params) Regime {
		return NewGBM(p.get("mu", 0.0005), p.get("sigma", 0.02))
	},
	"mean_reversion": func(p Params) Regime {
		return NewMeanReversion(p.get("mu", 100), p.get("theta", 0.1), p.get("sigma", 0.5))
	},
	"jump_diffusion": func(p Params) Regime {
		return NewJumpDiffusion(p.get("mu", 0), p.get("sigma", 0.02),
			p.get("jump_intensity", 0.1), p.get("jump_size", 0.05))
	},
	"momentum": func(p Params) Regime {
		return NewMomentum(p.get("mu", 0), p.get("sigma", 0.02), p.get("momentum", 0))
	},
	"trending_mean_reversion": func(p Params) Regime {
		return NewTrendingMeanReversion(p.get("mu", 100), p.get("drift", 0),
			p.get("theta", 0.1), p.get("sigma", 0.5))
	},
	"earnings": func(p Params) Regime {
		return NewEarnings(p.get("target_min", 90), p.get("target_max", 110),
			p.getInt("num_days", 5), p.get("noise", 0.02))
	},
	"dead_cat_bounce": func(p Params) Regime {
		return NewDeadCatBounce(p.get("drop_rate", 0.3), p.get("recovery_rate", 0.5),
			p.get("decline_rate", 0.2), p.getInt("num_days", 30), p.get("noise", 0.02))
	},
	"inverse_dead_cat_bounce": func(p Params) Regime {
		return NewInverseDeadCatBounce(p.get("rise_rate", 0.3), p.get("pullback_rate", 0.5),
			p.get("continue_rate", 0.2), p.getInt("num_days", 30), p.get("noise", 0.02))
	},

	"bull_quiet":    func(p Params) Regime { return BullQuiet(p.get("scale", 1)) },
	"bull_volatile": func(p Params) Regime { return BullVolatile(p.get("scale", 1)) },
	"bear_quiet":    func(p Params) Regime { return BearQuiet(p.get("scale", 1)) },
	"bear_volatile": func(p Params) Regime { return BearVolatile(p.get("scale", 1)) },
	"sideways_quiet": func(p Params) Regime {
		return SidewaysQuiet(p.get("mu", 100), p.get("scale", 1))
	},
	"crisis": func(p Params) Regime { return Crisis(p.get("scale", 1)) },
	"disbelief_momentum": func(p Params) Regime {
		return DisbeliefMomentum(p.get("mu", 100), p.get("scale", 1))
	},
	"frenzy_zone": func(p Params) Regime { return FrenzyZone(p.get("scale", 1)) },
	"chop_zone": func(p Params) Regime {
		return ChopZone(p.get("mu", 100), p.get("scale", 1))
	},
	"transition": func(p Params) Regime { return Transition(p.get("scale", 1)) },
}

// Build constructs a new regime of the given kind. Every call returns a
// distinct instance; sharing is the caller's decision.
func Build(kind string, params map[string]float64) (Regime, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return ctor(Params(params)), nil
}

// Kinds lists the registered kinds in lexical order.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
