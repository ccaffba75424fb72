// Package analyser converts recent PCM samples into byte-valued frequency
// magnitudes, one per bin, using the same windowing, smoothing and decibel
// scaling as a browser AnalyserNode.
package analyser

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

const (
	MinFFTSize = 32
	MaxFFTSize = 32768

	DefaultFFTSize               = 256
	DefaultSmoothingTimeConstant = 0.8
	DefaultMinDecibels           = -100
	DefaultMaxDecibels           = -30
)

var (
	ErrInvalidFFTSize = errors.New("analyser: fft size must be a power of two in [32, 32768]")
	ErrInvalidRange   = errors.New("analyser: invalid decibel range or smoothing constant")
)

type Options struct {
	FFTSize               int
	SmoothingTimeConstant float64
	MinDecibels           float64
	MaxDecibels           float64
}

func DefaultOptions() Options {
	return Options{
		FFTSize:               DefaultFFTSize,
		SmoothingTimeConstant: DefaultSmoothingTimeConstant,
		MinDecibels:           DefaultMinDecibels,
		MaxDecibels:           DefaultMaxDecibels,
	}
}

type Analyser struct {
	opts     Options
	window   []float64
	frame    []float64
	smoothed []float64
}

func New(opts Options) (*Analyser, error) {
	n := opts.FFTSize
	if n < MinFFTSize || n > MaxFFTSize || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFFTSize, n)
	}
	if opts.MinDecibels >= opts.MaxDecibels ||
		opts.SmoothingTimeConstant < 0 || opts.SmoothingTimeConstant > 1 {
		return nil, ErrInvalidRange
	}
	return &Analyser{
		opts:     opts,
		window:   window.Blackman(n),
		frame:    make([]float64, n),
		smoothed: make([]float64, n/2),
	}, nil
}

// FrequencyBinCount is half the FFT size.
func (a *Analyser) FrequencyBinCount() int { return len(a.smoothed) }

func (a *Analyser) FFTSize() int { return a.opts.FFTSize }

// Reset forgets the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
}

// ByteFrequencyData analyses the most recent FFTSize samples and writes one
// byte per bin into dst, which must hold FrequencyBinCount values. Fewer
// samples than FFTSize are left-padded with silence.
func (a *Analyser) ByteFrequencyData(dst []uint8, samples []float64) {
	n := a.opts.FFTSize
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	pad := n - len(samples)
	clear(a.frame[:pad])
	copy(a.frame[pad:], samples)
	floats.Mul(a.frame, a.window)

	spectrum := fft.FFTReal(a.frame)

	tau := a.opts.SmoothingTimeConstant
	scale := 255 / (a.opts.MaxDecibels - a.opts.MinDecibels)
	for k := range a.smoothed {
		mag := cmplx.Abs(spectrum[k]) / float64(n)
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		if k >= len(dst) {
			continue
		}

		db := 20 * math.Log10(a.smoothed[k])
		v := scale * (db - a.opts.MinDecibels)
		switch {
		case math.IsNaN(v) || v <= 0:
			dst[k] = 0
		case v >= 255:
			dst[k] = 255
		default:
			dst[k] = uint8(v)
		}
	}
}
