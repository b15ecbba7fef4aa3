package regime

// Market "moods" expressed as parameterised regimes. scale multiplies the
// volatility term; mu overrides the reversion level where one exists.

// BullQuiet is a steady uptrend with low volatility.
func BullQuiet(scale float64) *GBM { return NewGBM(0.001, 0.005*scale) }

// BullVolatile is a strong uptrend with large swings.
func BullVolatile(scale float64) *GBM { return NewGBM(0.003, 0.04*scale) }

// BearQuiet is a steady downtrend with low volatility.
func BearQuiet(scale float64) *GBM { return NewGBM(-0.001, 0.005*scale) }

// BearVolatile is a rapid downtrend with high volatility.
func BearVolatile(scale float64) *GBM { return NewGBM(-0.003, 0.04*scale) }

// SidewaysQuiet is range-bound around mu.
func SidewaysQuiet(mu, scale float64) *MeanReversion {
	return NewMeanReversion(mu, 0.3, 0.2*scale)
}

// Crisis combines extreme volatility with frequent negative jumps.
func Crisis(scale float64) *JumpDiffusion {
	return NewJumpDiffusion(-0.005, 0.06*scale, 0.3, -0.08)
}

// DisbeliefMomentum grinds up along a rising floor; pullbacks snap back.
func DisbeliefMomentum(mu, scale float64) *TrendingMeanReversion {
	return NewTrendingMeanReversion(mu, 0.3, 0.15, 0.5*scale)
}

// FrenzyZone is a parabolic, self-reinforcing advance.
func FrenzyZone(scale float64) *Momentum {
	return NewMomentum(0.003, 0.04*scale, 0.5)
}

// ChopZone whipsaws around mu.
func ChopZone(mu, scale float64) *MeanReversion {
	return NewMeanReversion(mu, 0.5, 0.8*scale)
}

// Transition is directionless with moderate volatility.
func Transition(scale float64) *GBM { return NewGBM(0, 0.03*scale) }
