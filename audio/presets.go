package audio

import (
	"fmt"
	"sort"
	"strings"
)

type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

var presets = map[string]preset{
	"init": preset{
		"volume":         0.75,
		"osc1.volume":    0.75,
		"osc1.detune":    0.,
		"osc1.phase":     1024.,
		"osc2.volume":    0.75,
		"osc2.detune":    0.,
		"osc2.phase":     0.,
		"env1.attack":    0.1,
		"env1.decay":     2.,
		"env1.sustain":   0.5,
		"env1.release":   2.,
		"env2.attack":    0.1,
		"env2.decay":     2.,
		"env2.sustain":   0.5,
		"env2.release":   2.,
		"filter1.mode":   "lowpass",
		"filter1.cutoff": 10000.,
		"filter2.mode":   "lowpass",
		"filter2.cutoff": 10000.,
		"lfo1.enabled":   false,
		"lfo2.enabled":   false,
		"lfo3.enabled":   false,
	},
	"pluck": preset{
		"env1.attack":    0.005,
		"env1.decay":     0.3,
		"env1.sustain":   0.,
		"env1.release":   0.05,
		"env2.attack":    0.005,
		"env2.decay":     0.2,
		"env2.sustain":   0.,
		"env2.release":   0.05,
		"filter1.cutoff": 4000.,
	},
	"pad": preset{
		"osc2.detune":    0.1,
		"env1.attack":    1.5,
		"env1.decay":     1.,
		"env1.sustain":   0.8,
		"env1.release":   2.5,
		"env2.attack":    2.,
		"env2.decay":     1.,
		"env2.sustain":   0.7,
		"env2.release":   3.,
		"filter1.cutoff": 2500.,
		"lfo1.target":    "filter1.cutoff",
		"lfo1.speed":     0.2,
		"lfo1.amount":    0.05,
		"lfo1.offset":    -0.8,
		"lfo1.enabled":   true,
	},
	"lame-bass": preset{
		"volume":         1.,
		"osc2.detune":    -12.,
		"env1.decay":     0.1,
		"env1.sustain":   0.,
		"env1.release":   0.05,
		"env2.decay":     0.1,
		"env2.sustain":   0.,
		"env2.release":   0.05,
		"filter1.cutoff": 900.,
	},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	// Modes go first so cutoffs land on the mode the preset selects.
	sort.Slice(keys, func(i, j int) bool {
		mi, mj := strings.HasSuffix(keys[i], ".mode"), strings.HasSuffix(keys[j], ".mode")
		if mi != mj {
			return mi
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if err := d.Set(k, p[k]); err != nil {
			return err
		}
	}
	return nil
}
