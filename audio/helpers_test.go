package audio

import (
	"bytes"
	"io"
	"log"
	"math"
	"testing"

	"github.com/youpy/go-wav"
)

// sineWords returns frames frames of one sine cycle each, as raw 16-bit words.
func sineWords(frames int) []uint16 {
	words := make([]uint16, frames*FrameSize)
	for f := 0; f < frames; f++ {
		amp := 30000.0 / float64(f+1)
		for i := 0; i < FrameSize; i++ {
			v := amp * math.Sin(2*math.Pi*float64(i)/FrameSize)
			words[f*FrameSize+i] = uint16(int16(v))
		}
	}
	return words
}

func testTable(t *testing.T, frames int) *Wavetable {
	t.Helper()
	table, err := NewWavetable(sineWords(frames))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

// encodeWAV returns a WAV file holding words with the given channel count.
func encodeWAV(words []uint16, channels uint16) *bytes.Reader {
	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(len(words)/int(channels)), channels, 44100, 16)
	samples := make([]wav.Sample, len(words)/int(channels))
	for i := range samples {
		for c := 0; c < int(channels); c++ {
			samples[i].Values[c] = int(int16(words[i*int(channels)+c]))
		}
	}
	if err := w.WriteSamples(samples); err != nil {
		panic(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestSynth(t *testing.T) *Synth {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	return NewSynth(testTable(t, 2), cfg)
}
