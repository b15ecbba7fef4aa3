package testutils

import "github.com/evdnx/mktsim/regime"

// RecordingRegime is a deterministic regime for generator tests. It adds
// Step to every value it sees, or, when Outputs is set, returns the outputs
// in order (cycling). Every call and day index is recorded.
type RecordingRegime struct {
	Step    float64
	Outputs []float64

	Days   []int
	Inputs []float64
	calls  int
}

var (
	_ regime.Regime     = (*RecordingRegime)(nil)
	_ regime.DayIndexer = (*RecordingRegime)(nil)
)

func (r *RecordingRegime) SetDayIndex(day int) {
	r.Days = append(r.Days, day)
}

func (r *RecordingRegime) Update(val float64, _ regime.Rand) float64 {
	r.Inputs = append(r.Inputs, val)
	defer func() { r.calls++ }()
	if len(r.Outputs) > 0 {
		return r.Outputs[r.calls%len(r.Outputs)]
	}
	return val + r.Step
}

// Calls is the number of Update invocations so far.
func (r *RecordingRegime) Calls() int { return r.calls }
