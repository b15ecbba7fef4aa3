// Package risk sizes positions from a fixed fraction of equity at risk.
package risk

import "math"

// CalcQty returns the quantity whose loss at a stop stopLossPct away from
// price equals maxRisk of equity, floored to precision decimals. It returns
// 0 for a non-positive stop distance or when rounding leaves nothing.
func CalcQty(equity, maxRisk, stopLossPct, price float64, precision int) float64 {
	riskAmt := equity * maxRisk
	slDist := price * stopLossPct
	if slDist <= 0 || riskAmt <= 0 {
		return 0
	}
	scale := math.Pow10(precision)
	return math.Floor(riskAmt/slDist*scale) / scale
}
