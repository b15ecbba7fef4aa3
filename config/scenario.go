package config

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// RegimeSpec describes one regime instance by kind and parameters. Kinds are
// the snake_case names understood by regime.Build.
type RegimeSpec struct {
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// AssignmentSpec maps a named regime onto the half-open day range
// [Start, End).
type AssignmentSpec struct {
	Regime string `yaml:"regime"`
	Start  int    `yaml:"start"`
	End    int    `yaml:"end"`
}

// Scenario is a declarative description of a whole path. Regimes are named
// so that several assignments can point at the same instance.
//
//	start_buy_price: 100
//	start_sell_price: 99
//	seed: 42
//	regimes:
//	  calm:  {kind: bull_quiet}
//	  crash: {kind: dead_cat_bounce, params: {drop_rate: 0.4}}
//	assignments:
//	  - {regime: calm,  start: 0,  end: 50}
//	  - {regime: crash, start: 50, end: 80}
type Scenario struct {
	StartBuyPrice  float64               `yaml:"start_buy_price"`
	StartSellPrice float64               `yaml:"start_sell_price"`
	Seed           *int64                `yaml:"seed,omitempty"`
	Regimes        map[string]RegimeSpec `yaml:"regimes"`
	Assignments    []AssignmentSpec      `yaml:"assignments"`
}

// PathConfig projects the scenario onto the generic path config, keeping the
// default indicator parameters.
func (s *Scenario) PathConfig() PathConfig {
	cfg := DefaultPathConfig()
	cfg.StartBuyPrice = s.StartBuyPrice
	cfg.StartSellPrice = s.StartSellPrice
	cfg.Seed = s.Seed
	return cfg
}

// Validate checks prices, that every assignment names a declared regime and
// that every range is well formed. Regime kinds are checked when the
// scenario is built.
func (s *Scenario) Validate() error {
	cfg := s.PathConfig()
	err := cfg.Validate()
	for name, spec := range s.Regimes {
		if spec.Kind == "" {
			err = multierr.Append(err, invalid(fmt.Sprintf("regime %q has no kind", name)))
		}
	}
	for i, a := range s.Assignments {
		if _, ok := s.Regimes[a.Regime]; !ok {
			err = multierr.Append(err, invalid(fmt.Sprintf("assignment %d references unknown regime %q", i, a.Regime)))
		}
		if a.Start < 0 {
			err = multierr.Append(err, invalid(fmt.Sprintf("assignment %d starts before day 0", i)))
		}
		if a.End <= a.Start {
			err = multierr.Append(err, invalid(fmt.Sprintf("assignment %d has empty range [%d,%d)", i, a.Start, a.End)))
		}
	}
	return err
}

// LoadScenario decodes a YAML scenario and validates it.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
