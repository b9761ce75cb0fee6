package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrdg/wtsynth/audio"
)

const meterWidth = 12

// renderState prints every parameter of synth grouped by component, with a
// meter showing where numeric values sit in their range.
func renderState(synth *audio.Synth, w io.Writer) {
	var (
		groups    []string
		byGroup   = map[string][]string{}
		maxKeyLen int
	)
	for _, key := range synth.Keys() {
		group, name := splitKey(key)
		if _, ok := byGroup[group]; !ok {
			groups = append(groups, group)
		}
		byGroup[group] = append(byGroup[group], key)
		if len(name) > maxKeyLen {
			maxKeyLen = len(name)
		}
	}

	for i, group := range groups {
		header := group
		if v, err := synth.Get(group + ".enabled"); err == nil {
			if on, ok := v.(bool); ok && !on {
				header += colorize(" (off)", colorRed)
			}
		}
		fmt.Fprintln(w, colorize(header, colorGreen))
		for _, key := range byGroup[group] {
			_, name := splitKey(key)
			if name == "enabled" {
				continue
			}
			v, err := synth.Get(key)
			if err != nil {
				continue
			}
			label := colorize(name+strings.Repeat(" ", maxKeyLen-len(name)), colorBlue)
			fmt.Fprintf(w, "  %s %s %s\n", label, meter(synth, key, v), formatValue(v))
		}
		if i < len(groups)-1 {
			fmt.Fprintln(w)
		}
	}

	var active int
	for _, v := range synth.Voices() {
		if v.InUse() {
			active++
		}
	}
	fmt.Fprintf(w, "\n%s %d/%d voices, %s\n", colorize("state", colorMagenta),
		active, len(synth.Voices()), synth.State())
}

// splitKey splits osc1.volume into osc1 and volume. Keys without a
// component, like volume, are shown in the master group.
func splitKey(key string) (group, name string) {
	i := strings.IndexByte(key, '.')
	if i < 0 {
		return "master", key
	}
	return key[:i], key[i+1:]
}

func meter(synth *audio.Synth, key string, v interface{}) string {
	min, max, ok := synth.Range(key)
	if !ok || max <= min {
		return strings.Repeat(" ", meterWidth)
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return strings.Repeat(" ", meterWidth)
	}
	filled := int((f - min) / (max - min) * meterWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > meterWidth {
		filled = meterWidth
	}
	return strings.Repeat("▇", filled) + strings.Repeat("▁", meterWidth-filled)
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%.3g", v)
	case string:
		if v == "" {
			return "none"
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
