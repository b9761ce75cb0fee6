package audio

import "math"

// OscillatorParams is the live configuration of one oscillator slot. It is
// shared by the oscillators of every voice; each voice keeps its own phase.
type OscillatorParams struct {
	table       *Wavetable
	volume      float64
	detune      float64
	frame       int
	phaseOffset float64
	enabled     bool
}

// NewOscillatorParams returns enabled parameters reading frame 0 of table.
func NewOscillatorParams(table *Wavetable) *OscillatorParams {
	return &OscillatorParams{
		table:   table,
		volume:  0.75,
		enabled: true,
	}
}

func (p *OscillatorParams) Volume() float64      { return p.volume }
func (p *OscillatorParams) Detune() float64      { return p.detune }
func (p *OscillatorParams) Frame() int           { return p.frame }
func (p *OscillatorParams) PhaseOffset() float64 { return p.phaseOffset }
func (p *OscillatorParams) Enabled() bool        { return p.enabled }
func (p *OscillatorParams) Table() *Wavetable    { return p.table }

func (p *OscillatorParams) SetVolume(v float64)  { p.volume = clamp(v, 0, 1) }
func (p *OscillatorParams) SetDetune(st float64) { p.detune = clamp(st, -24, 24) }
func (p *OscillatorParams) SetEnabled(on bool)   { p.enabled = on }

// SetFrame selects the wavetable frame. Out of range values are clamped.
func (p *OscillatorParams) SetFrame(frame int) {
	if frame < 0 {
		frame = 0
	}
	if max := p.table.Frames() - 1; frame > max {
		frame = max
	}
	p.frame = frame
}

// SetPhaseOffset sets where in the frame a new note starts reading.
func (p *OscillatorParams) SetPhaseOffset(offset float64) {
	p.phaseOffset = clamp(offset, 0, FrameSize-1)
}

// Oscillator is a phase accumulator over one frame of a wavetable.
type Oscillator struct {
	params      *OscillatorParams
	sampleRate  float64
	phase       float64
	phaseInc    float64
	frameOffset int
}

func newOscillator(params *OscillatorParams, sampleRate float64) *Oscillator {
	o := &Oscillator{params: params, sampleRate: sampleRate}
	o.reset()
	return o
}

// reset moves the phase to the start position of the selected frame.
func (o *Oscillator) reset() {
	o.frameOffset = o.params.frame * FrameSize
	o.phase = float64(o.frameOffset) + o.params.phaseOffset
}

// Phase returns the absolute table index the oscillator will advance from.
func (o *Oscillator) Phase() float64 { return o.phase }

// Next advances the phase for freq and returns one sample scaled by volume.
func (o *Oscillator) Next(freq float64) float64 {
	p := o.params
	if !p.enabled {
		return 0
	}
	if offset := p.frame * FrameSize; offset != o.frameOffset {
		o.phase += float64(offset - o.frameOffset)
		o.frameOffset = offset
	}

	o.phaseInc = FrameSize * freq / o.sampleRate
	o.phase += o.phaseInc

	// The wrap subtracts FrameSize-1 rather than FrameSize, so the read
	// position drifts by one sample per cycle. Existing wavetable patches
	// are tuned against this.
	start := float64(o.frameOffset)
	end := start + FrameSize
	if !(o.phase < end) {
		o.phase = wrap(o.phase, start, end)
	}

	return fold(p.table.At(o.phase), p.volume)
}

// fold maps a raw table word to an amplitude. Words above 32768 are
// reflected as 65536-raw instead of being sign extended.
func fold(raw uint16, volume float64) float64 {
	if raw > 32768 {
		return float64(65536-int(raw)) * volume
	}
	return float64(raw) * volume
}

// wrap applies the FrameSize-1 correction as many times as it takes to
// bring phase below end, without looping once per correction.
func wrap(phase, start, end float64) float64 {
	const step = FrameSize - 1
	wrapped := phase - (math.Floor((phase-end)/step)+1)*step
	if wrapped >= start && wrapped < end {
		return wrapped
	}
	// Increments this large have lost the fractional phase anyway.
	if r := math.Mod(phase-start, step); !math.IsNaN(r) {
		return start + r
	}
	return start
}

// clamp limits v to [min, max]. NaN maps to min.
func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	return math.Max(min, math.Min(max, v))
}
