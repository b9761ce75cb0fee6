package audio

import (
	"context"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gordonklaus/portaudio"
)

const bufferSize = 512

// Sink plays streamers on the default output device, in the order they
// were queued. The audio callback never blocks; streamers reach it through
// a lock-free queue.
type Sink struct {
	stream  *portaudio.Stream
	events  *eventBuffer
	current *event
	tmp     [][2]float64

	mu     sync.Mutex // guards nextID
	nextID int
}

func NewSink(sampleRate float64) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := newSink()
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func newSink() *Sink {
	return &Sink{
		events: newEventBuffer(64),
		tmp:    make([][2]float64, bufferSize),
	}
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

// Queue schedules st after everything queued before it. The returned
// channel is closed once st has been played to the end.
func (s *Sink) Queue(st beep.Streamer) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	done := make(chan struct{})
	s.events.push(event{id: s.nextID, streamer: st, done: done})
	return done
}

// Play queues st and waits until it has been played or ctx is done.
func (s *Sink) Play(ctx context.Context, st beep.Streamer) error {
	select {
	case <-s.Queue(st):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Process is the stream callback. It fills both channels from the queued
// streamers and writes silence when there is nothing left to play.
func (s *Sink) Process(out [][]float32) {
	for i := range out {
		for j := range out[i] {
			out[i][j] = 0
		}
	}
	n := 0
	for n < len(out[0]) {
		if s.current == nil {
			ev, ok := s.events.pop()
			if !ok {
				return
			}
			s.current = &ev
		}
		want := len(out[0]) - n
		if want > len(s.tmp) {
			want = len(s.tmp)
		}
		k, ok := s.current.streamer.Stream(s.tmp[:want])
		for i := 0; i < k; i++ {
			out[0][n+i] = float32(s.tmp[i][0])
			out[1][n+i] = float32(s.tmp[i][1])
		}
		n += k
		if !ok {
			close(s.current.done)
			s.current = nil
		} else if k == 0 {
			return
		}
	}
}
