package audio

import (
	"errors"
	"math"
	"testing"
)

func TestFreq(t *testing.T) {
	tests := []struct {
		note   Note
		detune float64
		want   float64
	}{
		{Note{"A", 4}, 0, 220},
		{Note{"A", 5}, 0, 440},
		{Note{"A", 6}, 0, 880},
		{Note{"A", 5}, 12, 880},
		{Note{"A", 5}, -24, 110},
		{Note{"C", 5}, 0, 440 * math.Pow(2, -9.0/12)},
		{Note{"B", 5}, 0, 440 * math.Pow(2, 2.0/12)},
	}
	for _, test := range tests {
		got, err := Freq(test.note, test.detune)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("Freq(%v, %v): want %v, got %v", test.note, test.detune, test.want, got)
		}
	}
}

func TestFreqSemitoneRatio(t *testing.T) {
	a, _ := Freq(Note{"A", 5}, 0)
	as, _ := Freq(Note{"AS", 5}, 0)
	if want, got := math.Pow(2, -1.0/12), a/as; math.Abs(want-got) > 1e-9 {
		t.Errorf("wrong ratio: want %v, got %v", want, got)
	}
}

func TestSemitoneTableIsChromatic(t *testing.T) {
	for i, name := range NoteNames {
		semis, err := Note{name, 5}.Semitones()
		if err != nil {
			t.Fatal(err)
		}
		if want := i - 9; semis != want {
			t.Errorf("%s: want %v, got %v", name, want, semis)
		}
	}
}

func TestUnknownNote(t *testing.T) {
	_, err := Freq(Note{"H", 4}, 0)
	var une *UnknownNoteError
	if !errors.As(err, &une) {
		t.Fatalf("expected UnknownNoteError, got %v", err)
	}
	if want, got := "H", une.Name; want != got {
		t.Errorf("wrong name: want %v, got %v", want, got)
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		input string
		want  Note
		ok    bool
	}{
		{"A4", Note{"A", 4}, true},
		{"CS5", Note{"CS", 5}, true},
		{"C-1", Note{"C", -1}, true},
		{"DB4", Note{}, false},
		{"A", Note{}, false},
		{"4A", Note{}, false},
	}
	for _, test := range tests {
		got, err := ParseNote(test.input)
		if (err == nil) != test.ok {
			t.Errorf("%q: unexpected error result: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: want %v, got %v", test.input, test.want, got)
		}
	}
}
