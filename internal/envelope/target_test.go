package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetSeekingSingleFrameImpulse(t *testing.T) {
	s := NewTargetSeeking()
	tr := New(128, s)

	env := tr.Update(impulse(128, 0, 255), true, Params{Volatility: 3})

	assert.Greater(t, env[0], float32(0))
	assert.LessOrEqual(t, env[0], s.Target()[0])
	for i := 1; i < 128; i++ {
		assert.Zero(t, env[i], "bin %d", i)
	}
}

func TestTargetSeekingImpulseDecaysMonotonicallyToZero(t *testing.T) {
	tr := New(16, NewTargetSeeking())
	p := Params{Volatility: 3}
	tr.Update(impulse(16, 5, 255), true, p)

	silence := make([]uint8, 16)
	prev := tr.Envelope()[5]
	require.Greater(t, prev, float32(0))

	frames := 0
	for prev > 0 {
		frames++
		require.Less(t, frames, 1000, "envelope never reached zero")

		cur := tr.Update(silence, true, p)[5]
		assert.Less(t, cur, prev)
		assert.GreaterOrEqual(t, cur, float32(0))
		prev = cur
	}

	for i := 0; i < 10; i++ {
		assert.Zero(t, tr.Update(silence, true, p)[5])
	}
}

func TestTargetSeekingDecayIsBounded(t *testing.T) {
	s := NewTargetSeeking()
	env := []float32{100, 100}
	s.Step(env, []uint8{0, 0}, Params{Volatility: 6})

	// Target equals the current value when raw is below it, so the fall is
	// the minimum of volatility/3.
	assert.InDelta(t, 98, env[0], 1e-4)
	assert.InDelta(t, 98, env[1], 1e-4)
}

func TestTargetSeekingConvergesOnConstantInput(t *testing.T) {
	const v = 100
	tr := New(1, NewTargetSeeking())
	p := Params{Volatility: 3}
	in := []uint8{v}

	for i := 0; i < 200; i++ {
		tr.Update(in, true, p)
	}
	for i := 0; i < 50; i++ {
		cur := tr.Update(in, true, p)[0]
		assert.InDelta(t, v, cur, snapTolerance, "frame %d", i)
	}
}

// The target is dropped to zero once the envelope comes within five units of
// it, even though the envelope update never reads the target back. Quirk kept as is.
func TestTargetSeekingSnapsNearlyReachedTargetToZero(t *testing.T) {
	s := NewTargetSeeking()
	env := []float32{0}

	s.Step(env, []uint8{2}, Params{Volatility: 1})

	assert.InDelta(t, 1, env[0], 1e-6)
	assert.Zero(t, s.Target()[0])
}

func TestTargetSeekingKeepsDistantTarget(t *testing.T) {
	s := NewTargetSeeking()
	env := []float32{0}

	s.Step(env, []uint8{255}, Params{Volatility: 3})

	assert.Greater(t, s.Target()[0], env[0]+snapTolerance)
}

func TestTargetSeekingResetClearsTarget(t *testing.T) {
	s := NewTargetSeeking()
	tr := New(1, s)
	tr.Update([]uint8{255}, true, Params{Volatility: 3})
	require.NotZero(t, s.Target()[0])

	tr.Update([]uint8{255}, false, Params{Volatility: 3})
	assert.Zero(t, s.Target()[0])
}
