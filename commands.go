package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/mrdg/wtsynth/audio"
	"github.com/mrdg/wtsynth/dub"
	"golang.org/x/sync/errgroup"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

type command struct {
	name  string
	run   func(*env, []dub.Node) (dub.Node, error)
	arity int // -n means len(args) must be >= n
}

var commands = []command{
	{"set", setCommand, 2},
	{"get", getCommand, 1},
	{"play", playCommand, -1},
	{"record", recordCommand, -2},
	{"grid", gridCommand, -2},
	{"preset", presetCommand, 1},
	{"show", showCommand, 0},
}

func setCommand(env *env, args []dub.Node) (dub.Node, error) {
	var key string
	if err := readArgs(args[:1], &key); err != nil {
		return nil, err
	}
	var v interface{}
	switch a := args[1].(type) {
	case dub.Float:
		v = float64(a)
	case dub.Int:
		v = int(a)
	case dub.String:
		v = string(a)
	case dub.Identifier:
		v = string(a)
	default:
		return nil, fmt.Errorf("unsupported property type: %v", a)
	}
	err := env.synth.Set(key, v)
	var rangeErr *audio.RangeError
	if errors.As(err, &rangeErr) {
		// The clamped value has been applied, so report it instead of failing.
		fmt.Fprintln(env.w, rangeErr)
		return nil, nil
	}
	return nil, err
}

func getCommand(env *env, args []dub.Node) (dub.Node, error) {
	var key string
	if err := readArgs(args, &key); err != nil {
		return nil, err
	}
	v, err := env.synth.Get(key)
	if err != nil {
		return nil, err
	}
	return toNode(v), nil
}

func playCommand(env *env, args []dub.Node) (dub.Node, error) {
	seq, err := eventsToSteps(args)
	if err != nil {
		return nil, err
	}
	return nil, env.play(seq)
}

func recordCommand(env *env, args []dub.Node) (dub.Node, error) {
	var file string
	if err := readArgs(args[:1], &file); err != nil {
		return nil, err
	}
	seq, err := eventsToSteps(args[1:])
	if err != nil {
		return nil, err
	}
	var bufs []audio.Buffer
	stats, err := env.synth.Render(seq, func(i int, buf audio.Buffer) error {
		logProgress(seq, i)
		bufs = append(bufs, buf)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := audio.WriteWAVFile(file, int(env.synth.SampleRate()), bufs...); err != nil {
		return nil, err
	}
	fmt.Fprintln(env.w, summary(file, audio.Length(seq), stats.Samples))
	env.report(stats)
	return nil, nil
}

// gridCommand plays a text grid. The cell length is given either in
// seconds or as a tempo and the number of cells per beat:
//
//	grid "A4 ~ . C5" 0.25
//	grid "A4 ~ . C5" 120 4
func gridCommand(env *env, args []dub.Node) (dub.Node, error) {
	var cells string
	if err := readArgs(args[:1], &cells); err != nil {
		return nil, err
	}
	var step float64
	switch len(args) {
	case 2:
		if err := readArgs(args[1:], &step); err != nil {
			return nil, err
		}
	case 3:
		var (
			bpm     float64
			perBeat int
		)
		if err := readArgs(args[1:], &bpm, &perBeat); err != nil {
			return nil, err
		}
		if bpm <= 0 || perBeat <= 0 {
			return nil, fmt.Errorf("invalid tempo: %v bpm, %v steps per beat", bpm, perBeat)
		}
		step = audio.StepLength(bpm, perBeat)
	default:
		return nil, fmt.Errorf("wrong number of arguments: want 2 or 3, got %v", len(args))
	}
	if step <= 0 {
		return nil, fmt.Errorf("invalid step length: %v", step)
	}
	grid, err := parseGrid(cells)
	if err != nil {
		return nil, err
	}
	return nil, env.play(audio.Grid(grid, step))
}

func presetCommand(env *env, args []dub.Node) (dub.Node, error) {
	var name string
	if err := readArgs(args, &name); err != nil {
		return nil, err
	}
	return nil, audio.LoadPreset(name, env.synth)
}

func showCommand(env *env, args []dub.Node) (dub.Node, error) {
	renderState(env.synth, env.w)
	return nil, nil
}

// play renders seq on a worker goroutine and queues every step to the
// output as soon as it is rendered, so playback starts before the whole
// sequence is done. It returns once the last step has been played.
func (e *env) play(seq []audio.Step) error {
	if e.out == nil {
		return errors.New("no audio output")
	}
	var (
		stats  audio.RenderStats
		queued = make(chan audio.Buffer, 2)
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(queued)
		var err error
		stats, err = e.synth.Render(seq, func(i int, buf audio.Buffer) error {
			logProgress(seq, i)
			select {
			case queued <- buf:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		return err
	})
	g.Go(func() error {
		for buf := range queued {
			e.out.Queue(audio.Stream(buf))
		}
		// An empty streamer finishes once everything before it has played.
		return e.out.Play(ctx, audio.Stream())
	})
	if err := g.Wait(); err != nil {
		return err
	}
	e.report(stats)
	return nil
}

func (e *env) report(stats audio.RenderStats) {
	logDebug("rendered %d steps, %s samples, %d clipped, peak %d signals",
		stats.Steps, humanize.Comma(int64(stats.Samples)), stats.Clipped, stats.Peak)
	if stats.Dropped > 0 {
		fmt.Fprintf(e.w, "%d %s dropped: no free voice\n",
			stats.Dropped, plural(stats.Dropped, "note", "notes"))
	}
}

func logProgress(seq []audio.Step, i int) {
	logDebug("rendering %v (%d/%d)", seq[i], i+1, len(seq))
}

// summary describes a written WAV file of n mono 16-bit samples.
func summary(file string, length time.Duration, n int) string {
	const headerSize = 44
	return fmt.Sprintf("wrote %s: %s, %s samples, %s",
		file,
		durafmt.Parse(length).LimitFirstN(2).Format(shortUnits),
		humanize.Comma(int64(n)),
		humanize.Bytes(uint64(headerSize+2*n)),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// eventsToSteps converts play events into a sequence. The name rest makes
// a rest step; any other names form a chord.
func eventsToSteps(args []dub.Node) ([]audio.Step, error) {
	var seq []audio.Step
	for _, arg := range args {
		ev, ok := arg.(dub.Event)
		if !ok {
			return nil, fmt.Errorf("expected an event like A4:1, got %v", arg)
		}
		if len(ev.Names) == 1 && ev.Names[0] == "rest" {
			seq = append(seq, audio.RestStep(ev.Length))
			continue
		}
		notes := make([]audio.Note, len(ev.Names))
		for i, name := range ev.Names {
			n, err := audio.ParseNote(string(name))
			if err != nil {
				return nil, err
			}
			notes[i] = n
		}
		seq = append(seq, audio.ChordStep(ev.Length, notes...))
	}
	return seq, nil
}

func toNode(v interface{}) dub.Node {
	switch v := v.(type) {
	case float64:
		return dub.Float(v)
	case int:
		return dub.Int(v)
	case bool:
		if v {
			return dub.Identifier("on")
		}
		return dub.Identifier("off")
	case string:
		if v == "" {
			return dub.Identifier("none")
		}
		return dub.String(v)
	default:
		return dub.String(fmt.Sprint(v))
	}
}

func readArgs(args []dub.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case dub.String:
				*p = string(s)
			case dub.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch v := arg.(type) {
			case dub.Float:
				*p = float64(v)
			case dub.Int:
				*p = float64(v)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			v, ok := arg.(dub.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(v)
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}
