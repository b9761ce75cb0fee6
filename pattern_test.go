package main

import (
	"reflect"
	"testing"

	"github.com/mrdg/wtsynth/audio"
)

func note(name string, octave int) *audio.Note {
	return &audio.Note{Name: name, Octave: octave}
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		input string
		want  []audio.Cell
	}{
		{
			input: "A4 . CS5",
			want:  []audio.Cell{{Note: note("A", 4)}, {}, {Note: note("CS", 5)}},
		},
		{
			input: "A4 ~ ~ | . C5",
			want: []audio.Cell{
				{Note: note("A", 4)},
				{Note: note("A", 4), Tie: true},
				{Note: note("A", 4), Tie: true},
				{},
				{Note: note("C", 5)},
			},
		},
		{
			input: "  ",
			want:  nil,
		},
	}
	for _, test := range tests {
		got, err := parseGrid(test.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%q:\nwant: %+v\ngot:  %+v", test.input, test.want, got)
		}
	}
}

func TestParseGridErrors(t *testing.T) {
	for _, input := range []string{
		"~ A4",
		"A4 x",
		"a4",
	} {
		if _, err := parseGrid(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}

func TestParseSequenceFile(t *testing.T) {
	events := `
# intro
A4:1 rest:0.5
A4,CS5:2
`
	got, err := parseSequenceFile(events, false, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	want := []audio.Step{
		audio.NoteStep(audio.Note{Name: "A", Octave: 4}, 1),
		audio.RestStep(0.5),
		audio.ChordStep(2, audio.Note{Name: "A", Octave: 4}, audio.Note{Name: "CS", Octave: 5}),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("\nwant: %+v\ngot:  %+v", want, got)
	}

	got, err = parseSequenceFile("A4 ~ . .\nC5 .", true, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	want = []audio.Step{
		audio.NoteStep(audio.Note{Name: "A", Octave: 4}, 0.5),
		audio.RestStep(0.5),
		audio.NoteStep(audio.Note{Name: "C", Octave: 5}, 0.25),
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("\nwant: %+v\ngot:  %+v", want, got)
	}

	if _, err := parseSequenceFile("A4", false, 0.25); err == nil {
		t.Error("expected error for event without length")
	}
}
