package market

import (
	"fmt"
	"sort"

	"github.com/evdnx/mktsim/config"
	"github.com/evdnx/mktsim/regime"
)

// FromScenario validates sc, builds each named regime once and generates the
// path. Assignments naming the same regime share one instance. A seed in the
// scenario is applied before opts, so an explicit WithSeed still wins.
func FromScenario(sc config.Scenario, opts ...Option) (*MarketPath, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sc.Regimes))
	for name := range sc.Regimes {
		names = append(names, name)
	}
	sort.Strings(names)

	built := make(map[string]regime.Regime, len(names))
	for _, name := range names {
		spec := sc.Regimes[name]
		r, err := regime.Build(spec.Kind, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("regime %q: %w", name, err)
		}
		built[name] = r
	}

	assignments := make([]RegimeAssignment, 0, len(sc.Assignments))
	for _, a := range sc.Assignments {
		assignments = append(assignments, RegimeAssignment{
			Regime:   built[a.Regime],
			StartDay: a.Start,
			EndDay:   a.End,
		})
	}

	var base []Option
	if sc.Seed != nil {
		base = append(base, WithSeed(*sc.Seed))
	}
	return New(sc.StartBuyPrice, sc.StartSellPrice, assignments, append(base, opts...)...), nil
}
