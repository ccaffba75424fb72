package config

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/iburimskiy/fireball/internal/envelope"
)

var ErrUnknownControl = errors.New("unknown control")

// Control keys, in panel order.
const (
	KeyTesselations   = "tesselations"
	KeyRed            = "red"
	KeyGreen          = "green"
	KeyBlue           = "blue"
	KeyFireVolatility = "fire_volatility"
	KeyExplosivity    = "explosivity"
	KeyFlames         = "flames"
)

// Controls holds every live-tweakable parameter. The frame loop reads it once
// per tick; the panel mutates it between ticks.
type Controls struct {
	Tesselations   int
	Red            int
	Green          int
	Blue           int
	FireVolatility int
	Explosivity    float64
	Flames         float64
}

func DefaultControls() Controls {
	return Controls{
		Tesselations:   5,
		Red:            256,
		Green:          210,
		Blue:           10,
		FireVolatility: 3,
		Explosivity:    4,
		Flames:         4,
	}
}

// Slider describes one panel row.
type Slider struct {
	Key   string
	Label string
	Min   float64
	Max   float64
	Step  float64
}

var sliders = []Slider{
	{KeyTesselations, "Tesselations", 0, 8, 1},
	{KeyRed, "Red", 0, 256, 1},
	{KeyGreen, "Green", 0, 256, 1},
	{KeyBlue, "Blue", 0, 256, 1},
	{KeyFireVolatility, "Fire Volatility", 1, 10, 1},
	{KeyExplosivity, "Fire Explosivity", 1, 10, 0.1},
	{KeyFlames, "Fire Flame Color", 1, 10, 0.1},
}

func Sliders() []Slider {
	return append([]Slider(nil), sliders...)
}

func SliderFor(key string) (Slider, error) {
	for _, s := range sliders {
		if s.Key == key {
			return s, nil
		}
	}
	return Slider{}, fmt.Errorf("%w: %q", ErrUnknownControl, key)
}

// Clamp forces every field into its slider range.
func (c *Controls) Clamp() {
	c.Tesselations = clamp(c.Tesselations, 0, 8)
	c.Red = clamp(c.Red, 0, 256)
	c.Green = clamp(c.Green, 0, 256)
	c.Blue = clamp(c.Blue, 0, 256)
	c.FireVolatility = clamp(c.FireVolatility, 1, 10)
	c.Explosivity = clamp(c.Explosivity, 1, 10)
	c.Flames = clamp(c.Flames, 1, 10)
}

func (c *Controls) Reset() { *c = DefaultControls() }

func (c *Controls) Value(key string) (float64, error) {
	switch key {
	case KeyTesselations:
		return float64(c.Tesselations), nil
	case KeyRed:
		return float64(c.Red), nil
	case KeyGreen:
		return float64(c.Green), nil
	case KeyBlue:
		return float64(c.Blue), nil
	case KeyFireVolatility:
		return float64(c.FireVolatility), nil
	case KeyExplosivity:
		return c.Explosivity, nil
	case KeyFlames:
		return c.Flames, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownControl, key)
}

// Set assigns key, snapping to the slider step and clamping to its range.
func (c *Controls) Set(key string, v float64) error {
	s, err := SliderFor(key)
	if err != nil {
		return err
	}
	v = clamp(s.Min+math.Round((v-s.Min)/s.Step)*s.Step, s.Min, s.Max)

	switch key {
	case KeyTesselations:
		c.Tesselations = int(v)
	case KeyRed:
		c.Red = int(v)
	case KeyGreen:
		c.Green = int(v)
	case KeyBlue:
		c.Blue = int(v)
	case KeyFireVolatility:
		c.FireVolatility = int(v)
	case KeyExplosivity:
		c.Explosivity = v
	case KeyFlames:
		c.Flames = v
	}
	return nil
}

// Adjust moves key by steps slider increments.
func (c *Controls) Adjust(key string, steps int) error {
	s, err := SliderFor(key)
	if err != nil {
		return err
	}
	v, _ := c.Value(key)
	return c.Set(key, v+float64(steps)*s.Step)
}

func (c Controls) EnvelopeParams() envelope.Params {
	return envelope.Params{Volatility: float32(c.FireVolatility)}
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
