package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
)

const (
	defaultSampleRate = 44100
	numVoices         = 8
	numFilters        = 2
	numLFOs           = 3
)

// Buffer holds the rendered samples of one sequence step.
type Buffer []int16

// Concat joins buffers into one stream.
func Concat(bufs []Buffer) Buffer {
	var n int
	for _, b := range bufs {
		n += len(b)
	}
	out := make(Buffer, 0, n)
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}

// Config holds the fixed settings of a Synth.
type Config struct {
	SampleRate float64
	Voices     int
	Volume     float64
	Logger     *log.Logger // nil means log.Default()
}

func DefaultConfig() Config {
	return Config{
		SampleRate: defaultSampleRate,
		Voices:     numVoices,
		Volume:     0.75,
	}
}

// State is the render state of a Synth.
type State int

const (
	Idle State = iota
	Rendering
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// RenderStats summarises one render pass.
type RenderStats struct {
	Steps   int
	Samples int
	Dropped int // notes that found no free voice
	Clipped int // samples limited at either clip stage
	Peak    int // most oscillator signals mixed into one sample
}

// Duration returns the rendered length at sampleRate.
func (s RenderStats) Duration(sampleRate float64) time.Duration {
	return time.Duration(float64(s.Samples) / sampleRate * float64(time.Second))
}

// Synth mixes a fixed pool of voices through two filters in series. It is
// not safe for concurrent use; parameter writes belong between renders.
type Synth struct {
	*Props
	sampleRate float64
	table      *Wavetable
	logger     *log.Logger

	osc     [numOscillators]*OscillatorParams
	env     [numOscillators]*EnvelopeParams
	filters [numFilters]*Filter
	lfos    [numLFOs]*LFO
	voices  []*Voice
	volume  float64

	mixPast    [2]float64 // last two mixed samples
	filterPast [2]float64 // last two outputs of the first filter
	state      State
}

// NewSynth returns a synth reading from table.
func NewSynth(table *Wavetable, cfg Config) *Synth {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.Voices <= 0 {
		cfg.Voices = numVoices
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Synth{
		Props:      NewProps(),
		sampleRate: cfg.SampleRate,
		table:      table,
		logger:     cfg.Logger,
		volume:     clamp(cfg.Volume, 0, 1),
	}
	for i := range s.osc {
		s.osc[i] = NewOscillatorParams(table)
		s.env[i] = NewEnvelopeParams()
	}
	s.osc[0].SetPhaseOffset(FrameSize / 2)
	for i := range s.filters {
		s.filters[i] = NewFilter(s.sampleRate)
	}
	for i := range s.lfos {
		s.lfos[i] = newLFO()
	}
	s.voices = make([]*Voice, cfg.Voices)
	for i := range s.voices {
		s.voices[i] = newVoice(s.sampleRate, s.osc, s.env)
	}
	s.registerProps()
	return s
}

func (s *Synth) SampleRate() float64                { return s.sampleRate }
func (s *Synth) Table() *Wavetable                  { return s.table }
func (s *Synth) State() State                       { return s.state }
func (s *Synth) Volume() float64                    { return s.volume }
func (s *Synth) SetVolume(v float64)                { s.volume = clamp(v, 0, 1) }
func (s *Synth) Oscillator(i int) *OscillatorParams { return s.osc[i] }
func (s *Synth) Envelope(i int) *EnvelopeParams     { return s.env[i] }
func (s *Synth) Filter(i int) *Filter               { return s.filters[i] }
func (s *Synth) LFO(i int) *LFO                     { return s.lfos[i] }
func (s *Synth) Voices() []*Voice                   { return s.voices }

// SetLFOTarget binds LFO i to a numeric property. An empty key unbinds it.
func (s *Synth) SetLFOTarget(i int, key string) error {
	if key == "" {
		s.lfos[i].bind("", nil)
		return nil
	}
	c, err := s.numeric(key)
	if err != nil {
		return err
	}
	s.lfos[i].bind(key, c)
	return nil
}

// NoteOn starts note on the first free voice. It returns ErrNoFreeVoice
// when the pool is exhausted; there is no voice stealing.
func (s *Synth) NoteOn(note Note, seconds float64) error {
	if err := s.checkNote(note); err != nil {
		return err
	}
	voice := s.findFreeVoice()
	if voice == nil {
		return ErrNoFreeVoice
	}
	return voice.LoadNote(&note, seconds)
}

func (s *Synth) findFreeVoice() *Voice {
	for _, voice := range s.voices {
		if !voice.inUse {
			return voice
		}
	}
	return nil
}

// Play renders seq and returns one buffer per step.
func (s *Synth) Play(seq []Step) ([]Buffer, error) {
	bufs := make([]Buffer, 0, len(seq))
	_, err := s.Render(seq, func(_ int, buf Buffer) error {
		bufs = append(bufs, buf)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bufs, nil
}

// Render renders seq step by step, passing each finished buffer to fn. The
// whole sequence is checked before the first sample is produced, so an
// unknown note yields no audio at all. An error from fn stops the render.
func (s *Synth) Render(seq []Step, fn func(i int, buf Buffer) error) (RenderStats, error) {
	var stats RenderStats
	if err := s.validate(seq); err != nil {
		return stats, err
	}

	s.reset()
	s.state = Rendering
	defer func() { s.state = Done }()

	for i, step := range seq {
		for _, note := range step.Notes {
			err := s.NoteOn(note, step.Duration)
			if errors.Is(err, ErrNoFreeVoice) {
				s.logger.Printf("synth: no free voice available, dropping %v at step %d", note, i)
				stats.Dropped++
				continue
			}
			if err != nil {
				return stats, fmt.Errorf("step %d: %w", i, err)
			}
		}
		for _, lfo := range s.lfos {
			lfo.retrigger()
		}

		buf := make(Buffer, int(math.Floor(step.Duration*s.sampleRate)))
		for n := range buf {
			buf[n] = s.tick(&stats)
		}
		stats.Steps++
		stats.Samples += len(buf)
		if err := fn(i, buf); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *Synth) validate(seq []Step) error {
	for i, step := range seq {
		if step.Duration < 0 || math.IsNaN(step.Duration) || math.IsInf(step.Duration, 0) {
			return fmt.Errorf("step %d: invalid duration %v", i, step.Duration)
		}
		for _, note := range step.Notes {
			if err := s.checkNote(note); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}

// checkNote rejects unknown notes and notes above the Nyquist frequency.
func (s *Synth) checkNote(note Note) error {
	freq, err := Freq(note, 0)
	if err != nil {
		return err
	}
	if nyquist := s.sampleRate / 2; !(freq <= nyquist) {
		return fmt.Errorf("note %v: %.0f Hz is above the Nyquist frequency %.0f Hz", note, freq, nyquist)
	}
	return nil
}

// reset frees every voice and clears the mix and filter history.
func (s *Synth) reset() {
	for _, voice := range s.voices {
		voice.stop()
	}
	for _, f := range s.filters {
		f.reset()
	}
	s.mixPast = [2]float64{}
	s.filterPast = [2]float64{}
}

// tick produces one output sample.
func (s *Synth) tick(stats *RenderStats) int16 {
	for _, lfo := range s.lfos {
		lfo.tick(s.sampleRate)
	}

	var sum float64
	var signals int
	for _, voice := range s.voices {
		if !voice.inUse {
			continue
		}
		out, n, ok := voice.Next()
		if !ok || out == 0 {
			continue
		}
		sum += out
		signals += n
	}
	if signals > stats.Peak {
		stats.Peak = signals
	}

	// Two voices of headroom.
	mixed := math.Floor(sum / 2)
	if c := Clip(mixed); c != mixed {
		stats.Clipped++
		mixed = c
	}
	s.mixPast = [2]float64{s.mixPast[1], mixed}

	s.filterPast = [2]float64{s.filterPast[1], s.filters[0].Process(s.mixPast)}

	out := s.filters[1].Process(s.filterPast)
	if c := Clip(out); c != out {
		stats.Clipped++
		out = c
	}
	return int16(out * s.volume)
}

// Clip limits v to the int16 range.
func Clip(v float64) float64 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return v
}

func (s *Synth) registerProps() {
	p := s.Props
	p.Register("volume", floatProp(0, 1, s.SetVolume, s.Volume))

	for i := range s.osc {
		osc := s.osc[i]
		prefix := fmt.Sprintf("osc%d.", i+1)
		p.Register(prefix+"volume", floatProp(0, 1, osc.SetVolume, osc.Volume))
		p.Register(prefix+"detune", floatProp(-24, 24, osc.SetDetune, osc.Detune))
		p.Register(prefix+"frame", intProp(0, s.table.Frames()-1, osc.SetFrame, osc.Frame))
		p.Register(prefix+"phase", floatProp(0, FrameSize-1, osc.SetPhaseOffset, osc.PhaseOffset))
		p.Register(prefix+"enabled", boolProp(osc.SetEnabled, osc.Enabled))
	}

	for i := range s.env {
		env := s.env[i]
		prefix := fmt.Sprintf("env%d.", i+1)
		p.Register(prefix+"attack", floatProp(0, maxEnvTime, env.SetAttack, env.Attack))
		p.Register(prefix+"decay", floatProp(0, maxEnvTime, env.SetDecay, env.Decay))
		p.Register(prefix+"sustain", floatProp(0, 1, env.SetSustain, env.Sustain))
		p.Register(prefix+"release", floatProp(0, maxEnvTime, env.SetRelease, env.Release))
		p.Register(prefix+"enabled", boolProp(env.SetEnabled, env.Enabled))
	}

	for i := range s.filters {
		f := s.filters[i]
		prefix := fmt.Sprintf("filter%d.", i+1)
		p.Register(prefix+"cutoff", floatProp(minCutoff, maxCutoff, f.SetCutoff, f.Cutoff))
		p.Register(prefix+"mode", stringProp(func(v string) error {
			m, err := ParseFilterMode(v)
			if err != nil {
				return err
			}
			f.SetMode(m)
			return nil
		}, func() string { return f.Mode().String() }))
		p.Register(prefix+"enabled", boolProp(f.SetEnabled, f.Enabled))
	}

	for i := range s.lfos {
		i, lfo := i, s.lfos[i]
		prefix := fmt.Sprintf("lfo%d.", i+1)
		p.Register(prefix+"speed", floatProp(0, maxLFOSpeed, lfo.SetSpeed, lfo.Speed))
		p.Register(prefix+"amount", floatProp(-1, 1, lfo.SetAmount, lfo.Amount))
		p.Register(prefix+"offset", floatProp(-1, 1, lfo.SetOffset, lfo.Offset))
		p.Register(prefix+"wave", stringProp(func(v string) error {
			w, err := ParseWaveform(v)
			if err != nil {
				return err
			}
			lfo.SetWaveform(w)
			return nil
		}, func() string { return lfo.Waveform().String() }))
		p.Register(prefix+"target", stringProp(func(v string) error {
			if v == "none" {
				v = ""
			}
			if strings.HasPrefix(v, "lfo") {
				return fmt.Errorf("lfo cannot modulate %s", v)
			}
			return s.SetLFOTarget(i, v)
		}, lfo.Target))
		p.Register(prefix+"enabled", boolProp(lfo.SetEnabled, lfo.Enabled))
	}
}
