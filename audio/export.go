package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// WriteWAV writes bufs as one mono 16-bit PCM stream.
func WriteWAV(w io.Writer, sampleRate int, bufs ...Buffer) error {
	all := Concat(bufs)
	samples := make([]wav.Sample, len(all))
	for i, v := range all {
		samples[i].Values[0] = int(v)
	}
	ww := wav.NewWriter(w, uint32(len(samples)), 1, uint32(sampleRate), 16)
	return ww.WriteSamples(samples)
}

// WriteWAVFile creates file and writes bufs to it.
func WriteWAVFile(file string, sampleRate int, bufs ...Buffer) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, sampleRate, bufs...); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", file, err)
	}
	return f.Close()
}
