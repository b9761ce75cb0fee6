package audio

import (
	"fmt"
	"math"
)

// FilterMode selects the response of a Filter.
type FilterMode int

const (
	LowPass FilterMode = iota
	HighPass
)

func (m FilterMode) String() string {
	switch m {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// ParseFilterMode accepts the names returned by FilterMode.String.
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "lowpass", "lp":
		return LowPass, nil
	case "highpass", "hp":
		return HighPass, nil
	}
	return 0, fmt.Errorf("not a valid filter mode: %v", s)
}

const (
	minCutoff = 1.0
	maxCutoff = 20_000.0

	maxLowPassAlpha = 2.0
)

// Filter is a single-pole IIR stage. It keeps separate cutoffs for the two
// modes, so switching mode restores the cutoff last used with that mode.
type Filter struct {
	sampleRate float64
	mode       FilterMode
	cutoffLP   float64
	cutoffHP   float64
	alpha      float64
	past       float64 // y[n-1]
	enabled    bool
}

func NewFilter(sampleRate float64) *Filter {
	f := &Filter{
		sampleRate: sampleRate,
		cutoffLP:   10_000,
		cutoffHP:   100,
		enabled:    true,
	}
	f.SetMode(LowPass)
	return f
}

func (f *Filter) Mode() FilterMode { return f.mode }
func (f *Filter) Enabled() bool    { return f.enabled }
func (f *Filter) Alpha() float64   { return f.alpha }

// Cutoff returns the cutoff of the current mode in Hz.
func (f *Filter) Cutoff() float64 {
	if f.mode == HighPass {
		return f.cutoffHP
	}
	return f.cutoffLP
}

// SetCutoff sets the cutoff of the current mode.
func (f *Filter) SetCutoff(hz float64) {
	hz = clamp(hz, minCutoff, maxCutoff)
	if f.mode == HighPass {
		f.cutoffHP = hz
	} else {
		f.cutoffLP = hz
	}
	f.calculateAlpha()
}

// SetMode switches the response. The output history is kept.
func (f *Filter) SetMode(m FilterMode) {
	f.mode = m
	f.calculateAlpha()
}

func (f *Filter) SetEnabled(on bool) { f.enabled = on }

// reset clears the output history.
func (f *Filter) reset() { f.past = 0 }

// calculateAlpha sets the coefficient for the current mode and cutoff.
// The low-pass form w/(2π·Δt+1) overshoots above alpha 1 and diverges at
// alpha 2 (about 14 kHz at 44.1 kHz); from there the filter passes the
// input through. The high-pass uses the RC form, which stays below 1.
func (f *Filter) calculateAlpha() {
	dt := 1 / f.sampleRate
	w := 2 * math.Pi * dt * f.Cutoff()
	if f.mode == HighPass {
		f.alpha = 1 / (w + 1)
		return
	}
	f.alpha = w / (2*math.Pi*dt + 1)
	if f.alpha >= maxLowPassAlpha {
		f.alpha = 1
	}
}

// Process filters the newest sample of window, given as {previous, current}.
func (f *Filter) Process(window [2]float64) float64 {
	prev, cur := window[0], window[1]
	if !f.enabled {
		return cur
	}
	var out float64
	if f.mode == HighPass {
		out = f.alpha * (f.past + cur - prev)
	} else {
		out = f.past + f.alpha*(cur-f.past)
	}
	f.past = out
	return out
}
