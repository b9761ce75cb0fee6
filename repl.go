package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gopxl/beep"
	"github.com/mrdg/wtsynth/audio"
	"github.com/mrdg/wtsynth/dub"
)

// player is the part of audio.Sink the commands use.
type player interface {
	Queue(st beep.Streamer) <-chan struct{}
	Play(ctx context.Context, st beep.Streamer) error
}

type env struct {
	synth *audio.Synth
	out   player // nil when there is no audio device
	w     io.Writer
}

func newEnv(synth *audio.Synth, out player, w io.Writer) *env {
	return &env{synth: synth, out: out, w: w}
}

func (e *env) eval(input string) (dub.Node, error) {
	command, err := dub.Parse(input)
	if err != nil {
		return nil, err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) < arity {
				return nil, fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return nil, fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return nil, fmt.Errorf("unknown command: %s", name)
}

func repl(env *env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		AutoComplete: completer(env.synth),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return err
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		result, err := env.eval(line)
		if err != nil {
			fmt.Println(err)
		}
		if result != nil {
			fmt.Println(result)
		}
	}
}

func completer(synth *audio.Synth) *readline.PrefixCompleter {
	keys := func(string) []string { return synth.Keys() }
	return readline.NewPrefixCompleter(
		readline.PcItem("set", readline.PcItemDynamic(keys)),
		readline.PcItem("get", readline.PcItemDynamic(keys)),
		readline.PcItem("preset", readline.PcItemDynamic(func(string) []string { return audio.Presets() })),
		readline.PcItem("play"),
		readline.PcItem("record"),
		readline.PcItem("grid"),
		readline.PcItem("show"),
	)
}
