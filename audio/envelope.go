package audio

// EnvelopeParams is the live ADSR configuration of one envelope slot. Times
// are in seconds. The sustain time is not configured; it is derived from the
// length of each note.
type EnvelopeParams struct {
	attack  float64
	decay   float64
	sustain float64
	release float64
	enabled bool
}

func NewEnvelopeParams() *EnvelopeParams {
	return &EnvelopeParams{
		attack:  0.1,
		decay:   2,
		sustain: 0.5,
		release: 2,
		enabled: true,
	}
}

const maxEnvTime = 5.0

func (p *EnvelopeParams) Attack() float64  { return p.attack }
func (p *EnvelopeParams) Decay() float64   { return p.decay }
func (p *EnvelopeParams) Sustain() float64 { return p.sustain }
func (p *EnvelopeParams) Release() float64 { return p.release }
func (p *EnvelopeParams) Enabled() bool    { return p.enabled }

func (p *EnvelopeParams) SetAttack(sec float64)  { p.attack = clamp(sec, 0, maxEnvTime) }
func (p *EnvelopeParams) SetDecay(sec float64)   { p.decay = clamp(sec, 0, maxEnvTime) }
func (p *EnvelopeParams) SetSustain(lvl float64) { p.sustain = clamp(lvl, 0, 1) }
func (p *EnvelopeParams) SetRelease(sec float64) { p.release = clamp(sec, 0, maxEnvTime) }
func (p *EnvelopeParams) SetEnabled(on bool)     { p.enabled = on }

// ForNote returns the envelope for a note lasting total samples.
func (p *EnvelopeParams) ForNote(sampleRate float64, total int) Envelope {
	env := Envelope{
		Attack:       int(p.attack * sampleRate),
		Decay:        int(p.decay * sampleRate),
		Release:      int(p.release * sampleRate),
		SustainLevel: p.sustain,
		Enabled:      p.enabled,
	}
	env.Sustain = SustainSamples(total, env.Attack, env.Decay, env.Release)
	return env
}

// SustainSamples is the part of a note left after attack, decay and release.
func SustainSamples(total, attack, decay, release int) int {
	if s := total - attack - decay - release; s > 0 {
		return s
	}
	return 0
}

// Envelope is an ADSR shape measured in samples. It holds no playback state;
// the scale is a function of the elapsed sample count.
type Envelope struct {
	Attack, Decay, Sustain, Release int
	SustainLevel                    float64
	Enabled                         bool
}

// Scale returns the envelope level after t samples. Segments of zero length
// are skipped.
func (e Envelope) Scale(t int) float64 {
	a, d, s, r := e.Attack, e.Decay, e.Sustain, e.Release
	switch {
	case t < a && a != 0:
		return float64(t) / float64(a)
	case t-a < d && d != 0:
		return ((e.SustainLevel-1)/float64(d))*float64(t-a) + 1
	case t-a-d < s:
		return e.SustainLevel
	case t-a-d-s <= r && r != 0:
		return (-e.SustainLevel/float64(r))*float64(t-a-d-s) + e.SustainLevel
	default:
		return 0
	}
}

// Apply scales in by the level at t, or passes it through when disabled.
func (e Envelope) Apply(t int, in float64) float64 {
	if !e.Enabled {
		return in
	}
	return e.Scale(t) * in
}
