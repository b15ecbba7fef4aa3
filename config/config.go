package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalid is wrapped by every validation failure so callers can test for
// configuration problems with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// IndicatorDefaults holds the parameters used when a caller asks for an
// indicator without specifying its own.
type IndicatorDefaults struct {
	RSIPeriod       int     // default 14
	MACDFast        int     // default 12
	MACDSlow        int     // default 26
	MACDSignal      int     // default 9
	BollingerPeriod int     // default 20
	BollingerStdDev float64 // default 2.0
	ATRPeriod       int     // default 14
}

// DefaultIndicators returns the classic textbook parameters.
func DefaultIndicators() IndicatorDefaults {
	return IndicatorDefaults{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
		ATRPeriod:       14,
	}
}

// Validate reports every out-of-range field at once.
func (d IndicatorDefaults) Validate() error {
	var err error
	if d.RSIPeriod <= 0 {
		err = multierr.Append(err, invalid("RSIPeriod must be positive"))
	}
	if d.MACDFast <= 0 || d.MACDSlow <= 0 || d.MACDSignal <= 0 {
		err = multierr.Append(err, invalid("MACD periods must be positive"))
	}
	if d.MACDFast >= d.MACDSlow {
		err = multierr.Append(err, invalid(fmt.Sprintf("MACDFast (%d) must be below MACDSlow (%d)", d.MACDFast, d.MACDSlow)))
	}
	if d.BollingerPeriod <= 0 {
		err = multierr.Append(err, invalid("BollingerPeriod must be positive"))
	}
	if d.BollingerStdDev < 0 {
		err = multierr.Append(err, invalid(fmt.Sprintf("BollingerStdDev (%f) cannot be negative", d.BollingerStdDev)))
	}
	if d.ATRPeriod <= 0 {
		err = multierr.Append(err, invalid("ATRPeriod must be positive"))
	}
	return err
}

// PathConfig holds everything needed to construct a path apart from the
// regime assignments themselves.
type PathConfig struct {
	StartBuyPrice  float64
	StartSellPrice float64

	// Seed makes generation reproducible. Nil means seed from the clock.
	Seed *int64

	// KeyPrecision is the number of decimals float parameters are rendered
	// with inside cache keys (default 6).
	KeyPrecision int

	Indicators IndicatorDefaults
}

// DefaultPathConfig returns a config for a 100/99 market with textbook
// indicator parameters and no seed.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		StartBuyPrice:  100,
		StartSellPrice: 99,
		KeyPrecision:   6,
		Indicators:     DefaultIndicators(),
	}
}

// Validate checks that all numeric fields are within sensible bounds.
// Unlike a first-error check it collects every problem, so a host can
// surface the whole list in one go.
func (c *PathConfig) Validate() error {
	var err error
	if c.StartBuyPrice <= 0 {
		err = multierr.Append(err, invalid(fmt.Sprintf("StartBuyPrice (%f) must be positive", c.StartBuyPrice)))
	}
	if c.StartSellPrice <= 0 {
		err = multierr.Append(err, invalid(fmt.Sprintf("StartSellPrice (%f) must be positive", c.StartSellPrice)))
	}
	if c.StartSellPrice > c.StartBuyPrice {
		err = multierr.Append(err, invalid(fmt.Sprintf("StartSellPrice (%f) cannot exceed StartBuyPrice (%f)", c.StartSellPrice, c.StartBuyPrice)))
	}
	if c.KeyPrecision < 1 || c.KeyPrecision > 15 {
		err = multierr.Append(err, invalid(fmt.Sprintf("KeyPrecision (%d) must be within 1..15", c.KeyPrecision)))
	}
	return multierr.Append(err, c.Indicators.Validate())
}

// ReplayConfig tunes the streaming oscillator replay.
type ReplayConfig struct {
	RSIOverbought   float64 // default 70
	RSIOversold     float64 // default 30
	MFIOverbought   float64 // default 80
	MFIOversold     float64 // default 20
	VWAOStrongTrend float64 // default 70
	ATSEMAperiod    int     // default 5

	// Volume is fed to the suite for every bar; generated paths carry no
	// volume of their own.
	Volume float64 // default 1000

	// Window is the size of the rolling price buffer used for the
	// trend/slope/volatility statistics.
	Window int // default 64
}

func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		RSIOverbought:   70,
		RSIOversold:     30,
		MFIOverbought:   80,
		MFIOversold:     20,
		VWAOStrongTrend: 70,
		ATSEMAperiod:    5,
		Volume:          1000,
		Window:          64,
	}
}

func (c *ReplayConfig) Validate() error {
	var err error
	if c.RSIOverbought <= c.RSIOversold {
		err = multierr.Append(err, invalid("RSIOverbought must be greater than RSIOversold"))
	}
	if c.MFIOverbought <= c.MFIOversold {
		err = multierr.Append(err, invalid("MFIOverbought must be greater than MFIOversold"))
	}
	if c.ATSEMAperiod <= 0 {
		err = multierr.Append(err, invalid("ATSEMAperiod must be positive"))
	}
	if c.Volume <= 0 {
		err = multierr.Append(err, invalid(fmt.Sprintf("Volume (%f) must be positive", c.Volume)))
	}
	if c.Window < 2 {
		err = multierr.Append(err, invalid(fmt.Sprintf("Window (%d) must be at least 2", c.Window)))
	}
	return err
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
