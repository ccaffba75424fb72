package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func impulse(n int, bin int, value uint8) []uint8 {
	s := make([]uint8, n)
	s[bin] = value
	return s
}

func TestInactiveUpdateZeroesEnvelope(t *testing.T) {
	for _, s := range []Strategy{NewTargetSeeking(), NewDualStage()} {
		t.Run(s.Name(), func(t *testing.T) {
			tr := New(128, s)
			for i := 0; i < 5; i++ {
				tr.Update(impulse(128, 3, 200), true, Params{Volatility: 3})
			}
			require.Greater(t, tr.Envelope()[3], float32(0))

			zeros := make([]uint8, 128)
			for i := 0; i < 3; i++ {
				env := tr.Update(zeros, false, Params{Volatility: 3})
				assert.Len(t, env, 128)
				assert.Equal(t, make([]float32, 128), env)
			}
		})
	}
}

func TestInactiveUpdateIgnoresSnapshot(t *testing.T) {
	tr := New(4, NewTargetSeeking())
	env := tr.Update([]uint8{255, 255, 255, 255}, false, Params{Volatility: 3})
	assert.Equal(t, []float32{0, 0, 0, 0}, env)
}

func TestEmptySnapshotIsNoop(t *testing.T) {
	for _, s := range []Strategy{NewTargetSeeking(), NewDualStage()} {
		tr := New(0, s)
		env := tr.Update([]uint8{}, true, Params{Volatility: 3})
		assert.Empty(t, env)
		env = tr.Update(nil, true, Params{Volatility: 3})
		assert.Empty(t, env)
		assert.Equal(t, 0, tr.Len())
	}
}

func TestSnapshotLengthChangeReallocates(t *testing.T) {
	tr := New(4, NewTargetSeeking())
	tr.Update([]uint8{10, 10, 10, 10}, true, Params{Volatility: 3})

	env := tr.Update(impulse(8, 7, 255), true, Params{Volatility: 3})
	require.Len(t, env, 8)
	assert.Greater(t, env[7], float32(0))
	for i := 0; i < 7; i++ {
		assert.Zero(t, env[i], "bin %d", i)
	}
}

func TestSetStrategyClearsState(t *testing.T) {
	tr := New(2, NewTargetSeeking())
	tr.Update([]uint8{255, 0}, true, Params{Volatility: 3})

	tr.SetStrategy(NewDualStage())
	assert.Equal(t, DualStageName, tr.Strategy().Name())
	assert.Equal(t, []float32{0, 0}, tr.Envelope())
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("target")
	require.NoError(t, err)
	assert.IsType(t, &TargetSeeking{}, s)

	s, err = StrategyByName("dual")
	require.NoError(t, err)
	assert.IsType(t, &DualStage{}, s)

	_, err = StrategyByName("vu")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestResetStartsNewSessionZeroed(t *testing.T) {
	s := NewTargetSeeking()
	tr := New(128, s)
	p := Params{Volatility: 3}
	for i := 0; i < 4; i++ {
		tr.Update(impulse(128, 0, 255), true, p)
	}
	require.NotZero(t, tr.Envelope()[0])
	require.NotZero(t, s.Target()[0])

	tr.Reset()
	assert.Equal(t, make([]float32, 128), tr.Envelope())
	assert.Equal(t, make([]float32, 128), s.Target())

	// The first frame of the new session starts from zero, same as a fresh tracker.
	fresh := New(128, NewTargetSeeking())
	want := append([]float32(nil), fresh.Update(impulse(128, 9, 40), true, p)...)
	assert.Equal(t, want, tr.Update(impulse(128, 9, 40), true, p))
}

func TestResetClearsDualStagePeak(t *testing.T) {
	s := NewDualStage()
	tr := New(2, s)
	tr.Update([]uint8{200, 10}, true, Params{})

	tr.Reset()
	assert.Equal(t, []float32{0, 0}, tr.Envelope())
	assert.Equal(t, []float32{0, 0}, s.Peak())
}
