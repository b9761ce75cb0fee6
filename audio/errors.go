package audio

import (
	"errors"
	"fmt"
)

// ErrNoFreeVoice is returned by NoteOn when every voice in the pool is busy.
// Play treats it as a dropped note, never as a failure.
var ErrNoFreeVoice = errors.New("no free voice available")

// FormatError reports a wavetable source that cannot be used.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "wavetable: " + e.Reason
}

// UnknownNoteError reports a pitch class that is not in the semitone table.
type UnknownNoteError struct {
	Name string
}

func (e *UnknownNoteError) Error() string {
	return fmt.Sprintf("unknown note: %q", e.Name)
}

// RangeError reports a parameter write outside of its documented range.
// The clamped value has already been applied when this is returned.
type RangeError struct {
	Key      string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("property %s: value %v not in range %v - %v, clamped", e.Key, e.Value, e.Min, e.Max)
}
