package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/mrdg/wtsynth/audio"
)

const testRate = 8000

func testTable(t *testing.T) *audio.Wavetable {
	t.Helper()
	samples := make([]uint16, 2*audio.FrameSize)
	for i := range samples {
		x := math.Sin(2 * math.Pi * float64(i%audio.FrameSize) / audio.FrameSize)
		samples[i] = uint16(int16(x * 16000))
	}
	table, err := audio.NewWavetable(samples)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func testOptions() options {
	return options{rate: testRate, voices: 8, volume: 0.75, preset: "init", step: 0.25}
}

// fakePlayer drains every streamer as soon as it is queued.
type fakePlayer struct {
	queued  int
	played  int
	samples int
}

func (p *fakePlayer) Queue(st beep.Streamer) <-chan struct{} {
	p.queued++
	p.drain(st)
	done := make(chan struct{})
	close(done)
	return done
}

func (p *fakePlayer) Play(ctx context.Context, st beep.Streamer) error {
	p.played++
	p.drain(st)
	return ctx.Err()
}

func (p *fakePlayer) drain(st beep.Streamer) {
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		p.samples += n
		if !ok {
			return
		}
	}
}

func newTestEnv(t *testing.T) (*env, *fakePlayer, *bytes.Buffer) {
	t.Helper()
	cfg := audio.DefaultConfig()
	cfg.SampleRate = testRate
	cfg.Logger = log.New(io.Discard, "", 0)
	synth := audio.NewSynth(testTable(t), cfg)
	p := &fakePlayer{}
	var out bytes.Buffer
	return newEnv(synth, p, &out), p, &out
}
