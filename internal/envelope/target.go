package envelope

const TargetSeekingName = "target"

const (
	targetGain      = 1.6
	attackCatchUp   = 20
	targetShrink    = 6
	snapTolerance   = 5
	decayCatchUp    = 10
	decayFloorRatio = 3
)

// TargetSeeking chases a per-bin target that a sharp transient can push well
// above the raw reading. The rise is at least Volatility per frame and the fall
// is bounded to [Volatility/3, Volatility] per frame.
type TargetSeeking struct {
	target []float32
}

func NewTargetSeeking() *TargetSeeking { return &TargetSeeking{} }

func (s *TargetSeeking) Name() string { return TargetSeekingName }

func (s *TargetSeeking) Reset(n int) {
	if cap(s.target) >= n {
		s.target = s.target[:n]
		clear(s.target)
		return
	}
	s.target = make([]float32, n)
}

// Target returns the scratch targets left by the last Step.
func (s *TargetSeeking) Target() []float32 { return s.target }

func (s *TargetSeeking) Step(env []float32, snapshot []uint8, p Params) {
	if len(s.target) != len(env) {
		s.Reset(len(env))
	}
	v := p.Volatility
	for i, b := range snapshot {
		raw := float32(b)
		cur := env[i]
		target := max32(max32(cur, raw), targetGain*v*(raw-cur))

		if target > cur {
			cur += max32(v, (target-cur)/attackCatchUp)
			target -= v / targetShrink
			// A target that is nearly reached is consumed.
			if cur+snapTolerance >= target {
				target = 0
			}
		} else {
			cur -= max32(v/decayFloorRatio, min32(v, (cur-target)/decayCatchUp))
			if cur < 0 {
				cur = 0
			}
		}

		env[i] = cur
		s.target[i] = target
	}
}
