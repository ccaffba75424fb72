// Package envelope turns per-frame frequency magnitudes into a smoothed
// per-bin intensity buffer that rises fast on onsets and falls off slowly.
package envelope

import (
	"errors"
	"fmt"
)

// Params are the live tuning coefficients read on every frame.
type Params struct {
	// Volatility scales the attack gain and bounds the decay of TargetSeeking.
	Volatility float32
}

// Strategy advances an envelope by one frame.
//
// Step is called with env and snapshot of identical length. Reset is called
// whenever the tracker zeroes its state so strategies can clear scratch
// buffers of their own.
type Strategy interface {
	Name() string
	Step(env []float32, snapshot []uint8, p Params)
	Reset(n int)
}

var ErrUnknownStrategy = errors.New("envelope: unknown strategy")

// StrategyByName returns a fresh strategy for "target" or "dual".
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case TargetSeekingName:
		return NewTargetSeeking(), nil
	case DualStageName:
		return NewDualStage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Tracker owns the envelope state of one playback session.
type Tracker struct {
	strategy Strategy
	env      []float32
}

func New(n int, s Strategy) *Tracker {
	if n < 0 {
		n = 0
	}
	s.Reset(n)
	return &Tracker{strategy: s, env: make([]float32, n)}
}

// Update folds one snapshot into the envelope and returns it. The returned
// slice is owned by the tracker and is only valid until the next call.
//
// When active is false the envelope is zeroed and snapshot is ignored. A
// snapshot of a different length than the current state means the analyser
// was reconfigured: the state is reallocated at the new length, zeroed.
func (t *Tracker) Update(snapshot []uint8, active bool, p Params) []float32 {
	if !active {
		t.reset(len(t.env))
		return t.env
	}
	if len(snapshot) != len(t.env) {
		t.reset(len(snapshot))
	}
	if len(t.env) == 0 {
		return t.env
	}
	t.strategy.Step(t.env, snapshot, p)
	return t.env
}

// Reset zeroes the envelope and the strategy scratch, as at the start of a
// new playback session.
func (t *Tracker) Reset() { t.reset(len(t.env)) }

func (t *Tracker) Envelope() []float32 { return t.env }

func (t *Tracker) Len() int { return len(t.env) }

func (t *Tracker) Strategy() Strategy { return t.strategy }

// SetStrategy swaps the update policy and clears the state.
func (t *Tracker) SetStrategy(s Strategy) {
	t.strategy = s
	t.reset(len(t.env))
}

func (t *Tracker) reset(n int) {
	if cap(t.env) >= n {
		t.env = t.env[:n]
		clear(t.env)
	} else {
		t.env = make([]float32, n)
	}
	t.strategy.Reset(n)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
