package audio

import (
	"context"
	"testing"
	"time"
)

func callbackBuffers(n int) [][]float32 {
	return [][]float32{make([]float32, n), make([]float32, n)}
}

func TestSinkProcess(t *testing.T) {
	s := newSink()
	first := s.Queue(Stream(Buffer{16384, 16384, 16384}))
	second := s.Queue(Stream(Buffer{-16384, -16384}))

	out := callbackBuffers(4)
	s.Process(out)
	want := []float32{0.5, 0.5, 0.5, -0.5}
	for ch := range out {
		for i, w := range want {
			if out[ch][i] != w {
				t.Errorf("channel %d sample %d: want %v, got %v", ch, i, w, out[ch][i])
			}
		}
	}
	select {
	case <-first:
	default:
		t.Error("first streamer not reported as played")
	}
	select {
	case <-second:
		t.Error("second streamer reported as played too early")
	default:
	}

	s.Process(out)
	want = []float32{-0.5, 0, 0, 0}
	for i, w := range want {
		if out[0][i] != w {
			t.Errorf("sample %d: want %v, got %v", i, w, out[0][i])
		}
	}
	select {
	case <-second:
	default:
		t.Error("second streamer not reported as played")
	}
}

func TestSinkProcessSilence(t *testing.T) {
	s := newSink()
	out := callbackBuffers(4)
	out[0][0], out[1][3] = 1, 1
	s.Process(out)
	for ch := range out {
		for i, v := range out[ch] {
			if v != 0 {
				t.Errorf("channel %d sample %d: want silence, got %v", ch, i, v)
			}
		}
	}
}

func TestSinkPlayContext(t *testing.T) {
	s := newSink()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	// nothing drives the callback, so playback never finishes
	if err := s.Play(ctx, Stream(Buffer{1})); err != context.DeadlineExceeded {
		t.Errorf("expected deadline error, got %v", err)
	}
}

func TestSinkPlayWaitsForQueued(t *testing.T) {
	s := newSink()
	s.Queue(Stream(Buffer{1, 2, 3}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Play(ctx, Stream()) }()

	out := [][]float32{make([]float32, 2), make([]float32, 2)}
	var played int
	for i := 0; i < 1000; i++ {
		s.Process(out)
		for _, v := range out[0] {
			if v != 0 {
				played++
			}
		}
		select {
		case err := <-errc:
			if err != nil {
				t.Fatal(err)
			}
			if want, got := 3, played; want != got {
				t.Errorf("finished after %d samples, want %d", got, want)
			}
			return
		default:
			time.Sleep(time.Millisecond)
		}
	}
	t.Fatal("play did not finish")
}
