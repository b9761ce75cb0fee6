package audio

import (
	"fmt"
	"math"
)

// Waveform is the shape of an LFO.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

var waveNames = []string{"sine", "square", "saw", "triangle"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveNames[w]
}

func ParseWaveform(s string) (Waveform, error) {
	for i, name := range waveNames {
		if s == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("not a valid waveform type: %v", s)
}

const maxLFOSpeed = 20.0

// LFO sweeps a numeric property between its minimum and maximum. It writes
// its target once per rendered sample, before any voice is pulled.
type LFO struct {
	speed   float64 // Hz
	amount  float64 // [-1, 1]
	offset  float64 // [-1, 1]
	wave    Waveform
	enabled bool

	target string
	ctl    *control
	phase  float64 // [0, 1)
}

func newLFO() *LFO {
	return &LFO{speed: 1, wave: WaveSine}
}

func (l *LFO) Speed() float64     { return l.speed }
func (l *LFO) Amount() float64    { return l.amount }
func (l *LFO) Offset() float64    { return l.offset }
func (l *LFO) Waveform() Waveform { return l.wave }
func (l *LFO) Enabled() bool      { return l.enabled }
func (l *LFO) Target() string     { return l.target }

func (l *LFO) SetSpeed(hz float64)    { l.speed = clamp(hz, 0, maxLFOSpeed) }
func (l *LFO) SetAmount(a float64)    { l.amount = clamp(a, -1, 1) }
func (l *LFO) SetOffset(o float64)    { l.offset = clamp(o, -1, 1) }
func (l *LFO) SetWaveform(w Waveform) { l.wave = w }
func (l *LFO) SetEnabled(on bool)     { l.enabled = on }

func (l *LFO) retrigger() { l.phase = 0 }

func (l *LFO) bind(key string, c *control) {
	l.target, l.ctl = key, c
}

// Value returns the modulation at the current phase in [-1, 1].
func (l *LFO) Value() float64 {
	var v float64
	switch l.wave {
	case WaveSquare:
		if l.phase < 0.5 {
			v = 1
		} else {
			v = -1
		}
	case WaveSaw:
		v = 2*l.phase - 1
	case WaveTriangle:
		if l.phase < 0.5 {
			v = 4*l.phase - 1
		} else {
			v = 3 - 4*l.phase
		}
	default:
		v = math.Sin(2 * math.Pi * l.phase)
	}
	return clamp(l.offset+l.amount*v, -1, 1)
}

func (l *LFO) tick(sampleRate float64) {
	if !l.enabled || l.ctl == nil {
		return
	}
	v := l.Value()
	l.ctl.setFloat(l.ctl.min + (v+1)/2*(l.ctl.max-l.ctl.min))

	l.phase += l.speed / sampleRate
	for l.phase >= 1 {
		l.phase -= 1
	}
}
