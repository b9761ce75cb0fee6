package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// FrameSize is the number of samples in one wavetable frame.
const FrameSize = 2048

// Wavetable is an immutable list of FrameSize-sample frames. Samples are kept
// as the raw 16-bit words of the source, read unsigned, and every oscillator
// using the table shares the same backing slice.
type Wavetable struct {
	samples []uint16
}

// NewWavetable builds a table from raw sample words. Trailing samples that do
// not fill a whole frame are dropped.
func NewWavetable(samples []uint16) (*Wavetable, error) {
	n := len(samples) - len(samples)%FrameSize
	if n == 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("need at least %d samples, got %d", FrameSize, len(samples))}
	}
	buf := make([]uint16, n)
	copy(buf, samples)
	return &Wavetable{samples: buf}, nil
}

// Frames returns the number of selectable frames.
func (w *Wavetable) Frames() int { return len(w.samples) / FrameSize }

// Len returns the total number of samples.
func (w *Wavetable) Len() int { return len(w.samples) }

// At returns the raw sample at floor(phase). The caller keeps phase inside
// the table; there is no bounds handling here.
func (w *Wavetable) At(phase float64) uint16 {
	return w.samples[int(phase)]
}

type wavSource interface {
	io.Reader
	io.ReaderAt
}

// LoadWavetable reads a mono 16-bit PCM WAV stream.
func LoadWavetable(src wavSource) (*Wavetable, error) {
	r := wav.NewReader(src)
	format, err := r.Format()
	if err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	if format.NumChannels != 1 {
		return nil, &FormatError{Reason: fmt.Sprintf("want 1 channel, got %d", format.NumChannels)}
	}
	if format.BitsPerSample != 16 {
		return nil, &FormatError{Reason: fmt.Sprintf("want 16 bit samples, got %d", format.BitsPerSample)}
	}

	var raw []uint16
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range samples {
			raw = append(raw, uint16(int16(r.IntValue(sample, 0))))
		}
	}
	return NewWavetable(raw)
}

// LoadWavetableFile opens file and reads it with LoadWavetable.
func LoadWavetableFile(file string) (*Wavetable, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := LoadWavetable(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return table, nil
}
