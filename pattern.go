package main

import (
	"fmt"
	"strings"

	"github.com/mrdg/wtsynth/audio"
	"github.com/mrdg/wtsynth/dub"
)

// parseGrid reads a text grid of whitespace separated cells: a note name
// like A4 or CS5 starts a note, "." is a rest and "~" holds the previous
// note for one more cell. "|" may be used to mark bars and is ignored.
func parseGrid(input string) ([]audio.Cell, error) {
	var (
		cells []audio.Cell
		prev  *audio.Note
	)
	for i, field := range strings.Fields(input) {
		switch field {
		case "|":
			continue
		case ".":
			cells = append(cells, audio.Cell{})
		case "~":
			if prev == nil {
				return nil, fmt.Errorf("cell %d: tie without a note before it", i+1)
			}
			cells = append(cells, audio.Cell{Note: prev, Tie: true})
		default:
			n, err := audio.ParseNote(field)
			if err != nil {
				return nil, fmt.Errorf("cell %d: %w", i+1, err)
			}
			prev = &n
			cells = append(cells, audio.Cell{Note: prev})
		}
	}
	return cells, nil
}

// parseSequenceFile reads a sequence for batch rendering. Grid files hold a
// text grid with cells of step seconds; other files hold play events such
// as "A4:1 rest:0.5 A4,CS5:2". Lines starting with # are comments.
func parseSequenceFile(data string, grid bool, step float64) ([]audio.Step, error) {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, " ")

	if grid {
		cells, err := parseGrid(body)
		if err != nil {
			return nil, err
		}
		return audio.Grid(cells, step), nil
	}

	cmd, err := dub.Parse("play " + body)
	if err != nil {
		return nil, err
	}
	return eventsToSteps(cmd.Args)
}
