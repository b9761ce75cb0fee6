package dub

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "set osc1.volume 0.5",
			expect: []token{
				{typ: typeIdentifier, text: "set"},
				{typ: typeIdentifier, text: "osc1.volume"},
				{typ: typeFloat, text: "0.5"},
				{typ: typeEOF},
			},
		},
		{
			input: "play A4:1 rest:2",
			expect: []token{
				{typ: typeIdentifier, text: "play"},
				{typ: typeIdentifier, text: "A4"},
				{typ: typeColon, text: ":"},
				{typ: typeInt, text: "1"},
				{typ: typeIdentifier, text: "rest"},
				{typ: typeColon, text: ":"},
				{typ: typeInt, text: "2"},
				{typ: typeEOF},
			},
		},
		{
			input: "A4,CS5:.5",
			expect: []token{
				{typ: typeIdentifier, text: "A4"},
				{typ: typeComma, text: ","},
				{typ: typeIdentifier, text: "CS5"},
				{typ: typeColon, text: ":"},
				{typ: typeFloat, text: ".5"},
				{typ: typeEOF},
			},
		},
		{
			input: "1.0",
			expect: []token{
				{typ: typeFloat, text: "1.0"},
				{typ: typeEOF},
			},
		},
		{
			input: "-1.",
			expect: []token{
				{typ: typeFloat, text: "-1."},
				{typ: typeEOF},
			},
		},
		{
			input: "-.1",
			expect: []token{
				{typ: typeFloat, text: "-.1"},
				{typ: typeEOF},
			},
		},
		{
			input: "set osc1.detune -12",
			expect: []token{
				{typ: typeIdentifier, text: "set"},
				{typ: typeIdentifier, text: "osc1.detune"},
				{typ: typeInt, text: "-12"},
				{typ: typeEOF},
			},
		},
		{
			input: "preset lame-bass",
			expect: []token{
				{typ: typeIdentifier, text: "preset"},
				{typ: typeIdentifier, text: "lame-bass"},
				{typ: typeEOF},
			},
		},
		{
			input: `record "this is a file.wav" 1`,
			expect: []token{
				{typ: typeIdentifier, text: "record"},
				{typ: typeString, text: `"this is a file.wav"`},
				{typ: typeInt, text: "1"},
				{typ: typeEOF},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		tokens, err := lex(test.input)
		if err != nil {
			t.Errorf("unexpected lex error: %v", err)
			continue
		}
		if len(tokens) != len(test.expect) {
			t.Fatalf("token mismatch: \nwant: %+v, \ngot:  %+v", test.expect, tokens)
		}
		for i, got := range tokens {
			want := test.expect[i]
			if want.typ != got.typ {
				t.Errorf("wrong type: want %v, got %v", want, got)
			}
			if want.text != got.text {
				t.Errorf("wrong text: want %v, got %v", want, got)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{
		"a -",
		"a .-",
		"A4/",
		"1x",
		`"open`,
		"set a;b",
	} {
		_, err := lex(input)
		if err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
