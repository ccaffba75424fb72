// Package scene turns the per-frame envelope and controls into the values the
// renderer draws: colour, flame geometry and timing.
package scene

import (
	"image/color"
	"math"

	"github.com/iburimskiy/fireball/internal/config"
)

// Uniforms is everything the renderer needs for one frame. Envelope is
// borrowed from the tracker and must not be retained past the frame.
type Uniforms struct {
	Envelope     []float32
	Color        [4]float32
	Explosivity  float64
	Flames       float64
	Tesselations int
	Tick         int
}

func NewUniforms(c config.Controls, env []float32, tick int) Uniforms {
	return Uniforms{
		Envelope:     env,
		Color:        [4]float32{float32(c.Red) / 256, float32(c.Green) / 256, float32(c.Blue) / 256, 1},
		Explosivity:  c.Explosivity,
		Flames:       c.Flames,
		Tesselations: c.Tesselations,
		Tick:         tick,
	}
}

// Segments is the number of flames around the ring.
func Segments(tesselations int) int {
	if tesselations < 0 {
		tesselations = 0
	}
	return config.BaseSegments << tesselations
}

// Flame is one spike of the fireball, from the core edge outwards.
type Flame struct {
	Level     float64
	BaseX     float64
	BaseY     float64
	TipX      float64
	TipY      float64
	Thickness float64
}

const idleFlicker = 4

// Level maps an envelope value onto [0, 1]. Envelopes can exceed a byte on
// sharp attacks.
func Level(v float32) float64 {
	return clamp01(float64(v) / 255)
}

// BuildFlames lays Segments(u.Tesselations) flames around (cx, cy).
func BuildFlames(u Uniforms, cx, cy, radius, maxLen float64) []Flame {
	n := Segments(u.Tesselations)
	out := make([]Flame, n)
	t := float64(u.Tick) / config.TPS
	for k := range out {
		angle := 2 * math.Pi * float64(k) / float64(n)

		var level float64
		if len(u.Envelope) > 0 {
			level = Level(u.Envelope[k*len(u.Envelope)/n])
		}
		flicker := idleFlicker * (1 + math.Sin(angle*u.Flames+t*3))
		length := maxLen*level*u.Explosivity/10 + flicker

		cos, sin := math.Cos(angle), math.Sin(angle)
		out[k] = Flame{
			Level:     level,
			BaseX:     cx + cos*radius,
			BaseY:     cy + sin*radius,
			TipX:      cx + cos*(radius+length),
			TipY:      cy + sin*(radius+length),
			Thickness: 2 + 2*math.Pi*radius/float64(n)*(0.5+level),
		}
	}
	return out
}

// BaseColor is the core colour from the RGB controls.
func BaseColor(u Uniforms) color.RGBA {
	return color.RGBA{
		R: unit8(float64(u.Color[0])),
		G: unit8(float64(u.Color[1])),
		B: unit8(float64(u.Color[2])),
		A: 255,
	}
}

// FlameColor blends the base colour toward the hue picked by the flames
// control as the level rises.
func FlameColor(u Uniforms, level float64) color.RGBA {
	level = clamp01(level)
	hue := (u.Flames - 1) / 9 * 360
	hr, hg, hb := hsvToRgb(hue, 1, 1)
	base := BaseColor(u)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-level) + float64(b)*level)
	}
	return color.RGBA{
		R: mix(base.R, hr),
		G: mix(base.G, hg),
		B: mix(base.B, hb),
		A: uint8(120 + 135*level),
	}
}

// Peak is the highest level in the envelope.
func Peak(env []float32) float64 {
	var p float32
	for _, v := range env {
		if v > p {
			p = v
		}
	}
	return Level(p)
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
