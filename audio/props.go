package audio

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Props maps property names to the setters and getters of a device's
// components. Writes clamp to each property's range.
type Props struct {
	controls map[string]*control
}

func NewProps() *Props {
	return &Props{controls: make(map[string]*control)}
}

type control struct {
	min, max float64
	numeric  bool
	setFloat func(float64)
	set      setter
	get      func() interface{}
}

type setter func(key string, val interface{}) error

// Set updates the property with value. The key has to be registered first using Register.
func (p *Props) Set(key string, value interface{}) error {
	c, ok := p.controls[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := c.set(key, value); err != nil {
		if _, ok := err.(*RangeError); ok {
			return err
		}
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	c, ok := p.controls[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return c.get(), nil
}

// Keys returns the registered property names in sorted order.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.controls))
	for k := range p.controls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range returns the bounds of a numeric property.
func (p *Props) Range(key string) (min, max float64, ok bool) {
	c, ok := p.controls[key]
	if !ok || !c.numeric {
		return 0, 0, false
	}
	return c.min, c.max, true
}

// Register adds a new property.
func (p *Props) Register(key string, c *control) {
	p.controls[key] = c
}

func (p *Props) numeric(key string) (*control, error) {
	c, ok := p.controls[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	if !c.numeric {
		return nil, fmt.Errorf("property %s is not numeric", key)
	}
	return c, nil
}

func floatProp(min, max float64, set func(float64), get func() float64) *control {
	c := &control{
		min:      min,
		max:      max,
		numeric:  true,
		setFloat: set,
		get:      func() interface{} { return get() },
	}
	c.set = func(key string, v interface{}) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		if math.IsNaN(f) {
			return fmt.Errorf("value is not a number: %v", v)
		}
		if f < min || f > max {
			set(clamp(f, min, max))
			return &RangeError{Key: key, Value: f, Min: min, Max: max}
		}
		set(f)
		return nil
	}
	return c
}

func intProp(min, max int, set func(int), get func() int) *control {
	return floatProp(float64(min), float64(max),
		func(f float64) { set(int(math.Round(f))) },
		func() float64 { return float64(get()) },
	)
}

func boolProp(set func(bool), get func() bool) *control {
	return &control{
		set: func(_ string, v interface{}) error {
			b, err := toBool(v)
			if err != nil {
				return err
			}
			set(b)
			return nil
		},
		get: func() interface{} { return get() },
	}
}

func stringProp(set func(string) error, get func() string) *control {
	return &control{
		set: func(_ string, v interface{}) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("value is not a string: %v", v)
			}
			return set(s)
		},
		get: func() interface{} { return get() },
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value is not a float64: %v", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value is not a float64: %v", v)
	}
}

func toBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case float64:
		return b != 0, nil
	case string:
		switch b {
		case "on", "true", "yes":
			return true, nil
		case "off", "false", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("value is not a bool: %v", v)
}
