package testutils

import "sync"

// ScriptedRand replays fixed uniform and normal draws so regime formulas can
// be checked exactly. Each stream cycles once exhausted; an empty stream
// yields 0.5 for Float64 and 0 for NormFloat64.
type ScriptedRand struct {
	mu       sync.Mutex
	uniforms []float64
	normals  []float64
	ui, ni   int
}

// NewScriptedRand builds a source from the two draw streams.
func NewScriptedRand(uniforms, normals []float64) *ScriptedRand {
	return &ScriptedRand{uniforms: uniforms, normals: normals}
}

func (r *ScriptedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.uniforms) == 0 {
		return 0.5
	}
	v := r.uniforms[r.ui%len(r.uniforms)]
	r.ui++
	return v
}

func (r *ScriptedRand) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.normals) == 0 {
		return 0
	}
	v := r.normals[r.ni%len(r.normals)]
	r.ni++
	return v
}

// Draws reports how many uniform and normal values have been consumed.
func (r *ScriptedRand) Draws() (uniforms, normals int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ui, r.ni
}
