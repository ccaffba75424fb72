package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualStageAmplifiesOnset(t *testing.T) {
	s := NewDualStage()
	env := []float32{0}

	s.Step(env, []uint8{10}, Params{})

	assert.Equal(t, float32(15), s.Peak()[0])
	assert.Equal(t, float32(13.5), env[0])
}

func TestDualStageFlatDecay(t *testing.T) {
	tr := New(3, NewDualStage())
	tr.Update([]uint8{9, 4, 1}, true, Params{})

	silence := make([]uint8, 3)
	for frame := 0; frame < 20; frame++ {
		prev := append([]float32(nil), tr.Envelope()...)
		env := tr.Update(silence, true, Params{})
		for i := range env {
			want := prev[i] - DefaultDualStageDecay
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, env[i], "frame %d bin %d", frame, i)
			assert.GreaterOrEqual(t, env[i], float32(0))
		}
	}
	assert.Equal(t, []float32{0, 0, 0}, tr.Envelope())
}

func TestDualStageHoldsAboveRaw(t *testing.T) {
	s := NewDualStage()
	env := []float32{50}

	s.Step(env, []uint8{20}, Params{})

	assert.Equal(t, float32(50), s.Peak()[0])
	assert.Equal(t, float32(48.5), env[0])
}

func TestDualStageResetClearsPeak(t *testing.T) {
	s := NewDualStage()
	tr := New(2, s)
	tr.Update([]uint8{100, 100}, true, Params{})
	require.NotZero(t, s.Peak()[0])

	tr.Update(nil, false, Params{})
	assert.Equal(t, []float32{0, 0}, s.Peak())
	assert.Equal(t, []float32{0, 0}, tr.Envelope())
}
