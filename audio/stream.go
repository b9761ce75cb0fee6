package audio

import (
	"github.com/gopxl/beep"
)

// Stream returns a streamer playing bufs back to back, the mono signal
// copied to both channels.
func Stream(bufs ...Buffer) beep.Streamer {
	streamers := make([]beep.Streamer, len(bufs))
	for i, b := range bufs {
		streamers[i] = newBufferStreamer(b)
	}
	return beep.Seq(streamers...)
}

type bufferStreamer struct {
	buf Buffer
	pos int
}

func newBufferStreamer(buf Buffer) *bufferStreamer {
	return &bufferStreamer{buf: buf}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.buf) {
		v := float64(s.buf[s.pos]) / (1 << 15)
		samples[n] = [2]float64{v, v}
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error    { return nil }
func (s *bufferStreamer) Len() int      { return len(s.buf) }
func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if p > len(s.buf) {
		p = len(s.buf)
	}
	s.pos = p
	return nil
}
