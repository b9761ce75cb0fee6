package dub

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type test struct {
		input string
		want  Command
	}
	tests := []test{
		{
			input: "set osc1.volume 0.5",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("osc1.volume"), Float(0.5)},
			},
		},
		{
			input: "set osc2.frame 3",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("osc2.frame"), Int(3)},
			},
		},
		{
			input: "play A4:1 rest:0.5 C5:1",
			want: Command{
				Name: Identifier("play"),
				Args: []Node{
					Event{Names: []Identifier{"A4"}, Length: 1},
					Event{Names: []Identifier{"rest"}, Length: 0.5},
					Event{Names: []Identifier{"C5"}, Length: 1},
				},
			},
		},
		{
			input: "play A4,CS5, E5:.25",
			want: Command{
				Name: Identifier("play"),
				Args: []Node{
					Event{Names: []Identifier{"A4", "CS5", "E5"}, Length: 0.25},
				},
			},
		},
		{
			input: `record "out.wav" A4:2`,
			want: Command{
				Name: Identifier("record"),
				Args: []Node{
					String("out.wav"),
					Event{Names: []Identifier{"A4"}, Length: 2},
				},
			},
		},
		{
			input: `grid "A4 . ~ C5" 120 4`,
			want: Command{
				Name: Identifier("grid"),
				Args: []Node{String("A4 . ~ C5"), Int(120), Int(4)},
			},
		},
		{
			input: `preset ""`,
			want: Command{
				Name: Identifier("preset"),
				Args: []Node{String("")},
			},
		},
		{
			input: "show",
			want:  Command{Name: Identifier("show")},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		got, err := Parse(test.input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("\nwant: %+v\ngot:  %+v", test.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"1 2",
		"play A4:",
		"play A4,:1",
		"play A4,C5",
		"play A4:x",
		"play A4:-1",
		`play "A4`,
		"set : 1",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
