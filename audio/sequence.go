package audio

import (
	"strings"
	"time"
)

// Step is one entry of a sequence: the notes started together and how long
// the step lasts in seconds. A step without notes is a rest.
type Step struct {
	Notes    []Note
	Duration float64
}

func NoteStep(n Note, seconds float64) Step {
	return Step{Notes: []Note{n}, Duration: seconds}
}

func ChordStep(seconds float64, notes ...Note) Step {
	return Step{Notes: notes, Duration: seconds}
}

func RestStep(seconds float64) Step {
	return Step{Duration: seconds}
}

func (s Step) IsRest() bool { return len(s.Notes) == 0 }

func (s Step) String() string {
	if s.IsRest() {
		return "rest"
	}
	names := make([]string, len(s.Notes))
	for i, n := range s.Notes {
		names[i] = n.String()
	}
	return strings.Join(names, ",")
}

// Length returns the total duration of seq.
func Length(seq []Step) time.Duration {
	var sec float64
	for _, s := range seq {
		sec += s.Duration
	}
	return time.Duration(sec * float64(time.Second))
}

// StepLength returns the duration in seconds of one grid cell when a beat
// at bpm is divided into stepsPerBeat cells.
func StepLength(bpm float64, stepsPerBeat int) float64 {
	return 60 / bpm / float64(stepsPerBeat)
}

// Cell is one column of a sequencer grid.
type Cell struct {
	Note *Note // nil is a rest
	Tie  bool  // lengthen the previous note instead of starting a new one
}

// Grid converts sequencer cells of stepSeconds each into a sequence.
// Consecutive rests are merged, a tie extends the note before it and
// trailing rests are dropped. A tie with no note before it starts the
// cell's note normally.
func Grid(cells []Cell, stepSeconds float64) []Step {
	var (
		seq   []Step
		rests int
	)
	for _, c := range cells {
		if c.Note == nil {
			rests++
			continue
		}
		if rests > 0 {
			seq = append(seq, RestStep(float64(rests)*stepSeconds))
			rests = 0
		}
		if c.Tie && len(seq) > 0 && !seq[len(seq)-1].IsRest() {
			seq[len(seq)-1].Duration += stepSeconds
			continue
		}
		seq = append(seq, NoteStep(*c.Note, stepSeconds))
	}
	return seq
}
