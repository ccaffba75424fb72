// Package playback drives the speaker for one audio source at a time.
package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"github.com/iburimskiy/fireball/internal/audio"
)

// Player chains source -> tap -> ctrl into the speaker.
//
// The speaker goroutine only touches the chain and the finished flag; every
// other field is owned by the frame loop. Never hold mu while taking the
// speaker lock.
type Player struct {
	log      *zap.Logger
	ringSize int
	debounce func(func())

	mu       sync.Mutex
	src      *audio.Source
	ctrl     *beep.Ctrl
	tap      *audio.Tap
	format   beep.Format
	initDone bool
	paused   bool

	generation atomic.Uint64
	finished   atomic.Bool
}

func New(log *zap.Logger, ringSize int, seekDebounce time.Duration) *Player {
	return &Player{
		log:      log,
		ringSize: ringSize,
		debounce: debounce.New(seekDebounce),
	}
}

// Load stops whatever is playing and starts src. The player owns src from
// here on.
func (p *Player) Load(src *audio.Source) error {
	p.Stop()

	bufferSize := src.Format.SampleRate.N(time.Second / 20)
	p.mu.Lock()
	needInit := !p.initDone || p.format.SampleRate != src.Format.SampleRate
	p.mu.Unlock()

	if needInit {
		if err := speaker.Init(src.Format.SampleRate, bufferSize); err != nil {
			_ = src.Close()
			return err
		}
		p.log.Debug("speaker initialised",
			zap.Int("sampleRate", int(src.Format.SampleRate)),
			zap.Int("bufferSize", bufferSize))
	}

	tap := audio.NewTap(src.Streamer, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: tap}
	gen := p.generation.Add(1)
	p.finished.Store(false)

	p.mu.Lock()
	p.initDone = true
	p.src = src
	p.format = src.Format
	p.tap = tap
	p.ctrl = ctrl
	p.paused = false
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		if p.generation.Load() == gen {
			p.finished.Store(true)
		}
	})))

	p.log.Info("playing",
		zap.String("path", src.Path),
		zap.Duration("duration", src.Duration()),
		zap.Int("sampleRate", int(src.Format.SampleRate)))
	return nil
}

// Stop silences the speaker and releases the current source.
func (p *Player) Stop() {
	p.generation.Add(1)

	p.mu.Lock()
	src, initDone := p.src, p.initDone
	p.src, p.tap, p.ctrl = nil, nil, nil
	p.paused = false
	p.mu.Unlock()

	if initDone {
		speaker.Clear()
	}
	if src != nil {
		speaker.Lock()
		err := src.Close()
		speaker.Unlock()
		if err != nil {
			p.log.Warn("closing source", zap.String("path", src.Path), zap.Error(err))
		}
	}
	p.finished.Store(false)
}

func (p *Player) TogglePause() {
	p.mu.Lock()
	ctrl := p.ctrl
	if ctrl == nil {
		p.mu.Unlock()
		return
	}
	p.paused = !p.paused
	paused := p.paused
	p.mu.Unlock()

	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src != nil
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

func (p *Player) Finished() bool { return p.finished.Load() }

func (p *Player) State() audio.PlayState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return audio.PlayState{
		Loaded:   p.src != nil,
		Paused:   p.paused,
		Finished: p.finished.Load(),
	}
}

// Active reports whether audio is audibly playing right now.
func (p *Player) Active() bool { return p.State().Active() }

// Tap returns the ring buffer of the current source, or nil.
func (p *Player) Tap() *audio.Tap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	src := p.src
	p.mu.Unlock()
	if src == nil {
		return 0
	}
	return src.Duration()
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	src := p.src
	p.mu.Unlock()
	if src == nil {
		return 0
	}
	speaker.Lock()
	n := src.Streamer.Position()
	speaker.Unlock()
	return src.Format.SampleRate.D(n)
}

// Seek jumps to fraction of the play time. Bursts of calls, as produced by
// dragging the progress bar, collapse into the last one.
func (p *Player) Seek(fraction float64) {
	gen := p.generation.Load()
	p.debounce(func() {
		p.mu.Lock()
		src, tap := p.src, p.tap
		p.mu.Unlock()
		if src == nil || p.generation.Load() != gen {
			return
		}

		speaker.Lock()
		// Stop bumps the generation before closing src under this lock.
		if p.generation.Load() != gen {
			speaker.Unlock()
			return
		}
		err := src.Streamer.Seek(src.FrameAt(fraction))
		speaker.Unlock()
		if err != nil {
			p.log.Warn("seek failed", zap.Float64("fraction", fraction), zap.Error(err))
			return
		}
		tap.Clear()
	})
}
