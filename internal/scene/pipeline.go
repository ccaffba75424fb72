package scene

import (
	"github.com/iburimskiy/fireball/internal/analyser"
	"github.com/iburimskiy/fireball/internal/config"
	"github.com/iburimskiy/fireball/internal/envelope"
)

// Pipeline is the per-frame path from played samples to Uniforms.
type Pipeline struct {
	Analyser *analyser.Analyser
	Tracker  *envelope.Tracker

	snapshot []uint8
	tick     int
}

func NewPipeline(a *analyser.Analyser, s envelope.Strategy) *Pipeline {
	n := a.FrequencyBinCount()
	return &Pipeline{
		Analyser: a,
		Tracker:  envelope.New(n, s),
		snapshot: make([]uint8, n),
	}
}

// Step analyses samples (oldest first) when active and advances the
// envelope. Inactive frames zero the envelope and the analyser history.
func (p *Pipeline) Step(samples []float64, active bool, c config.Controls) Uniforms {
	if n := p.Analyser.FrequencyBinCount(); len(p.snapshot) != n {
		p.snapshot = make([]uint8, n)
	}
	if active {
		p.Analyser.ByteFrequencyData(p.snapshot, samples)
	} else {
		p.Analyser.Reset()
	}

	env := p.Tracker.Update(p.snapshot, active, c.EnvelopeParams())
	u := NewUniforms(c, env, p.tick)
	p.tick++
	return u
}

// Snapshot is the byte spectrum of the last active frame.
func (p *Pipeline) Snapshot() []uint8 { return p.snapshot }
