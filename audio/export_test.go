package audio

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/youpy/go-wav"
)

func TestWriteWAV(t *testing.T) {
	bufs := []Buffer{{0, 1, -1, 32767}, {-32768, 100}}
	var out bytes.Buffer
	if err := WriteWAV(&out, 44100, bufs...); err != nil {
		t.Fatal(err)
	}

	r := wav.NewReader(bytes.NewReader(out.Bytes()))
	format, err := r.Format()
	if err != nil {
		t.Fatal(err)
	}
	if format.NumChannels != 1 || format.BitsPerSample != 16 || format.SampleRate != 44100 {
		t.Errorf("wrong format: %+v", format)
	}

	var got []int
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range samples {
			got = append(got, int(int16(r.IntValue(s, 0))))
		}
	}
	if want := []int{0, 1, -1, 32767, -32768, 100}; !reflect.DeepEqual(want, got) {
		t.Errorf("wrong samples:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestRecordedRenderLoadsAsWavetable(t *testing.T) {
	s := newTestSynth(t)
	bufs, err := s.Play([]Step{NoteStep(Note{"A", 5}, 0.1)})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := WriteWAV(&out, 44100, bufs...); err != nil {
		t.Fatal(err)
	}
	table, err := LoadWavetable(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 4410/FrameSize, table.Frames(); want != got {
		t.Errorf("wrong number of frames: want %v, got %v", want, got)
	}
}
