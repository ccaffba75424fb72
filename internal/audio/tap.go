package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N frames into a ring buffer
// so the renderer can analyse recently played audio.
//
// Stream runs on the speaker goroutine while Snapshot and Mono run on the
// frame loop.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns the last n stereo frames, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	out := make([][2]float64, t.clamp(n))
	t.read(len(out), func(i int, f [2]float64) { out[i] = f })
	return out
}

// Mono fills dst with the last len(dst) frames mixed down to mono, oldest
// first, and returns how many were written.
func (t *Tap) Mono(dst []float64) int {
	n := t.clamp(len(dst))
	t.read(n, func(i int, f [2]float64) { dst[i] = (f[0] + f[1]) * 0.5 })
	return n
}

// Clear drops everything recorded so far.
func (t *Tap) Clear() {
	t.mu.Lock()
	clear(t.buffer)
	t.nextIndex = 0
	t.mu.Unlock()
}

func (t *Tap) clamp(n int) int {
	if n > len(t.buffer) {
		return len(t.buffer)
	}
	if n < 0 {
		return 0
	}
	return n
}

func (t *Tap) read(n int, fn func(int, [2]float64)) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		fn(i, t.buffer[idx])
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
}
