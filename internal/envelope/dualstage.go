package envelope

const DualStageName = "dual"

const (
	DefaultDualStageGain  = 1.5
	DefaultDualStageDecay = 1.5
)

// DualStage amplifies rising edges with a fixed gain and then lets every bin
// fall by a constant amount per frame, independent of amplitude.
type DualStage struct {
	Gain  float32
	Decay float32

	peak []float32
}

func NewDualStage() *DualStage {
	return &DualStage{Gain: DefaultDualStageGain, Decay: DefaultDualStageDecay}
}

func (s *DualStage) Name() string { return DualStageName }

func (s *DualStage) Reset(n int) {
	if cap(s.peak) >= n {
		s.peak = s.peak[:n]
		clear(s.peak)
		return
	}
	s.peak = make([]float32, n)
}

// Peak returns the pre-decay values computed by the last Step.
func (s *DualStage) Peak() []float32 { return s.peak }

// Step ignores Params: the gain and decay are fixed on the strategy.
func (s *DualStage) Step(env []float32, snapshot []uint8, _ Params) {
	if len(s.peak) != len(env) {
		s.Reset(len(env))
	}
	for i, b := range snapshot {
		raw := float32(b)
		old := env[i]
		smoothed := max32(max32(old, raw), s.Gain*(raw-old))
		s.peak[i] = smoothed

		if smoothed > 0 {
			smoothed = max32(smoothed-s.Decay, 0)
		}
		env[i] = smoothed
	}
}
