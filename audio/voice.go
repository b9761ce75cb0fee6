package audio

import "math"

const numOscillators = 2

// Voice renders one note through its own pair of oscillators. The
// oscillator and envelope parameters are shared with the rest of the pool.
type Voice struct {
	sampleRate float64
	osc        [numOscillators]*Oscillator
	env        [numOscillators]*EnvelopeParams

	note    Note
	semis   float64
	detune  [numOscillators]float64
	freq    [numOscillators]float64
	total   int
	elapsed int
	inUse   bool
}

func newVoice(sampleRate float64, osc [numOscillators]*OscillatorParams, env [numOscillators]*EnvelopeParams) *Voice {
	v := &Voice{sampleRate: sampleRate, env: env}
	for i := range v.osc {
		v.osc[i] = newOscillator(osc[i], sampleRate)
	}
	return v
}

// LoadNote starts note on the voice for the given number of seconds. A nil
// note is a rest and leaves the voice free.
func (v *Voice) LoadNote(note *Note, seconds float64) error {
	if note == nil {
		return nil
	}
	semis, err := note.Semitones()
	if err != nil {
		return err
	}
	v.note = *note
	v.semis = float64(semis)
	for i, osc := range v.osc {
		osc.reset()
		v.detune[i] = math.NaN()
	}
	v.total = int(seconds * v.sampleRate)
	v.elapsed = 0
	v.inUse = true
	return nil
}

func (v *Voice) InUse() bool  { return v.inUse }
func (v *Voice) Note() Note   { return v.note }
func (v *Voice) Elapsed() int { return v.elapsed }
func (v *Voice) Total() int   { return v.total }

// Next returns the voice's next sample and the number of oscillators that
// contributed to it. ok is false once the note is finished; the voice is
// free again from then on.
func (v *Voice) Next() (sample float64, signals int, ok bool) {
	if !v.inUse {
		return 0, 0, false
	}
	if v.elapsed > v.total {
		v.inUse = false
		return 0, 0, false
	}
	for i, osc := range v.osc {
		params := osc.params
		// A disabled oscillator adds nothing but still counts as a signal.
		signals++
		if !params.enabled {
			continue
		}
		if params.detune != v.detune[i] {
			v.detune[i] = params.detune
			v.freq[i] = semitoneFreq(v.semis + params.detune)
		}
		env := v.env[i].ForNote(v.sampleRate, v.total)
		sample += env.Apply(v.elapsed, osc.Next(v.freq[i]))
	}
	v.elapsed++
	return sample, signals, true
}

// stop frees the voice immediately.
func (v *Voice) stop() {
	v.inUse = false
	v.elapsed = 0
	v.total = 0
}
