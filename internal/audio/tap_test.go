package audio

import (
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{next, -next}
			next++
		}
		return len(samples), true
	})
}

func TestTapPassesSamplesThrough(t *testing.T) {
	tap := NewTap(counter(), 8)
	buf := make([][2]float64, 3)

	n, ok := tap.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 3, n)
	assert.Equal(t, [][2]float64{{0, 0}, {1, -1}, {2, -2}}, buf)
	assert.NoError(t, tap.Err())
}

func TestTapSnapshotWrapsChronologically(t *testing.T) {
	tap := NewTap(counter(), 4)
	tap.Stream(make([][2]float64, 6))

	assert.Equal(t, [][2]float64{{2, -2}, {3, -3}, {4, -4}, {5, -5}}, tap.Snapshot(4))
	assert.Equal(t, [][2]float64{{4, -4}, {5, -5}}, tap.Snapshot(2))
	assert.Len(t, tap.Snapshot(100), 4)
}

func TestTapMono(t *testing.T) {
	tap := NewTap(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 0}
		}
		return len(samples), true
	}), 16)
	tap.Stream(make([][2]float64, 16))

	dst := make([]float64, 4)
	assert.Equal(t, 4, tap.Mono(dst))
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, dst)

	big := make([]float64, 32)
	assert.Equal(t, 16, tap.Mono(big))
}

func TestTapClear(t *testing.T) {
	tap := NewTap(counter(), 4)
	tap.Stream(make([][2]float64, 4))
	tap.Clear()

	assert.Equal(t, make([][2]float64, 4), tap.Snapshot(4))
}
