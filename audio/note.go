package audio

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const (
	tuningFreq   = 440.0
	tuningOctave = 5
)

// semitones holds each pitch class's offset from A in the tuning octave.
var semitones = map[string]int{
	"C":  -9,
	"CS": -8,
	"D":  -7,
	"DS": -6,
	"E":  -5,
	"F":  -4,
	"FS": -3,
	"G":  -2,
	"GS": -1,
	"A":  0,
	"AS": 1,
	"B":  2,
}

// NoteNames lists the pitch classes in ascending order.
var NoteNames = []string{"C", "CS", "D", "DS", "E", "F", "FS", "G", "GS", "A", "AS", "B"}

// Note is a pitch class and octave, e.g. {"FS", 5}. A5 is 440 Hz.
type Note struct {
	Name   string
	Octave int
}

func (n Note) String() string {
	return n.Name + strconv.Itoa(n.Octave)
}

// Semitones returns the note's distance from A5 in semitones.
func (n Note) Semitones() (int, error) {
	offset, ok := semitones[n.Name]
	if !ok {
		return 0, &UnknownNoteError{Name: n.Name}
	}
	return (n.Octave-tuningOctave)*12 + offset, nil
}

// Freq returns the equal-tempered frequency of the note shifted by detune
// semitones.
func Freq(n Note, detune float64) (float64, error) {
	semis, err := n.Semitones()
	if err != nil {
		return 0, err
	}
	return semitoneFreq(float64(semis) + detune), nil
}

func semitoneFreq(semis float64) float64 {
	return tuningFreq * math.Pow(2, semis/12)
}

var notePattern = regexp.MustCompile(`^([A-Z]+)(-?\d+)$`)

// ParseNote parses names like "A4" or "CS5".
func ParseNote(s string) (Note, error) {
	m := notePattern.FindStringSubmatch(s)
	if m == nil {
		return Note{}, fmt.Errorf("invalid note: %q", s)
	}
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return Note{}, err
	}
	n := Note{Name: m[1], Octave: octave}
	if _, ok := semitones[n.Name]; !ok {
		return Note{}, &UnknownNoteError{Name: n.Name}
	}
	return n, nil
}
