package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mrdg/wtsynth/audio"
	"github.com/remeh/sizedwaitgroup"
)

type options struct {
	wavetable string
	rate      int
	voices    int
	volume    float64
	preset    string
	step      float64
}

func main() {
	var (
		opts   options
		run    = flag.String("run", "", "file with commands to execute before starting the REPL")
		render = flag.Bool("render", false, "render the sequence files given as arguments and exit")
		out    = flag.String("out", ".", "output directory for -render")
		jobs   = flag.Int("jobs", runtime.NumCPU(), "number of sequence files rendered at once")
		debug  = flag.Bool("debug", false, "enable debug logging")
	)
	flag.StringVar(&opts.wavetable, "wavetable", "", "wavetable file (mono 16-bit WAV)")
	flag.IntVar(&opts.rate, "rate", 44100, "sample rate")
	flag.IntVar(&opts.voices, "voices", 8, "number of voices")
	flag.Float64Var(&opts.volume, "volume", 0.75, "master volume (0-1)")
	flag.StringVar(&opts.preset, "preset", "init", "preset loaded at startup: "+strings.Join(audio.Presets(), ", "))
	flag.Float64Var(&opts.step, "step", 0.25, "seconds per cell in .grid sequence files")
	flag.Parse()

	setupLogging(*debug)

	if opts.wavetable == "" {
		log.Fatal("missing -wavetable")
	}
	table, err := audio.LoadWavetableFile(opts.wavetable)
	if err != nil {
		log.Fatal(err)
	}
	logDebug("loaded %s: %d frames", opts.wavetable, table.Frames())

	if *render {
		if err := renderFiles(table, opts, *out, *jobs, flag.Args()); err != nil {
			log.Fatal(err)
		}
		return
	}

	synth, err := newSynth(table, opts)
	if err != nil {
		log.Fatal(err)
	}
	sink, err := audio.NewSink(float64(opts.rate))
	if err != nil {
		log.Fatal(err)
	}
	if err := sink.Start(); err != nil {
		log.Fatal(err)
	}
	defer sink.Stop()

	env := newEnv(synth, sink, os.Stdout)

	if *run != "" {
		if err := runScript(env, *run); err != nil {
			log.Fatal(err)
		}
	}

	if err := repl(env); err != nil && err != io.EOF {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newSynth(table *audio.Wavetable, opts options) (*audio.Synth, error) {
	cfg := audio.DefaultConfig()
	cfg.SampleRate = float64(opts.rate)
	cfg.Voices = opts.voices
	cfg.Logger = errorLogger
	synth := audio.NewSynth(table, cfg)
	if opts.preset != "" {
		if err := audio.LoadPreset(opts.preset, synth); err != nil {
			return nil, err
		}
	}
	synth.SetVolume(opts.volume)
	return synth, nil
}

func runScript(env *env, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := env.eval(line); err != nil {
			return fmt.Errorf("%s:%d: %w", file, n, err)
		}
	}
	return scanner.Err()
}

// renderFiles renders each sequence file to a WAV file in dir. Every job
// gets its own synth so the files can be rendered in parallel.
func renderFiles(table *audio.Wavetable, opts options, dir string, jobs int, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no sequence files to render")
	}
	if jobs < 1 {
		jobs = 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		swg  = sizedwaitgroup.New(jobs)
		errs = make([]error, len(files))
	)
	for i, file := range files {
		swg.Add()
		go func(i int, file string) {
			defer swg.Done()
			errs[i] = renderFile(table, opts, dir, file)
		}(i, file)
	}
	swg.Wait()

	var failed int
	for i, err := range errs {
		if err != nil {
			logError("render %s: %v", files[i], err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to render", failed, len(files))
	}
	return nil
}

func renderFile(table *audio.Wavetable, opts options, dir, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	seq, err := parseSequenceFile(string(data), filepath.Ext(file) == ".grid", opts.step)
	if err != nil {
		return err
	}
	synth, err := newSynth(table, opts)
	if err != nil {
		return err
	}
	bufs, err := synth.Play(seq)
	if err != nil {
		return err
	}
	base := filepath.Base(file)
	name := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".wav")
	if err := audio.WriteWAVFile(name, opts.rate, bufs...); err != nil {
		return err
	}
	fmt.Println(summary(name, audio.Length(seq), len(audio.Concat(bufs))))
	return nil
}
