package onset

import "github.com/cwbudde/algo-vecmath"

// Moving-average weights shared by both trackers: new = 0.9·old + 0.1·x.
const (
	averageKeep  = 0.9
	averageBlend = 0.1
)

func blend(avg, x float64) float64 {
	return averageKeep*avg + averageBlend*x
}

// Phase is the coarse state of an [EnergyState].
type Phase int

const (
	// PhaseFilling collects the first energies to seed the moving average.
	PhaseFilling Phase = iota
	// PhaseTracking compares each energy against the moving average.
	PhaseTracking
	// PhaseCooldown suppresses beats after a detection.
	PhaseCooldown
)

func (p Phase) String() string {
	switch p {
	case PhaseFilling:
		return "filling"
	case PhaseTracking:
		return "tracking"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// EnergyState is the per-scan state of the beat detector.
type EnergyState struct {
	MovingAverage     float64
	CooldownRemaining int
	Init              []float64 // energies collected while filling
	Initialized       bool

	initFrames     int
	cooldownFrames int
	sensitivity    float64
}

// NewEnergyState returns a state that seeds its average from initFrames
// energies (at least one), then reports a beat whenever an energy exceeds
// sensitivity times the moving average, followed by cooldownFrames quiet
// hops.
func NewEnergyState(initFrames, cooldownFrames int, sensitivity float64) *EnergyState {
	if initFrames < 1 {
		initFrames = 1
	}

	if cooldownFrames < 0 {
		cooldownFrames = 0
	}

	return &EnergyState{
		Init:           make([]float64, 0, initFrames),
		initFrames:     initFrames,
		cooldownFrames: cooldownFrames,
		sensitivity:    sensitivity,
	}
}

// Phase reports the current phase.
func (s *EnergyState) Phase() Phase {
	switch {
	case !s.Initialized:
		return PhaseFilling
	case s.CooldownRemaining > 0:
		return PhaseCooldown
	default:
		return PhaseTracking
	}
}

// Step advances the state by one window energy and reports whether the
// window is a beat. The moving average is updated on every hop after
// filling, cooldown hops included.
func (s *EnergyState) Step(energy float64) bool {
	if !s.Initialized {
		s.Init = append(s.Init, energy)
		if len(s.Init) >= s.initFrames {
			s.MovingAverage = vecmath.Sum(s.Init) / float64(len(s.Init))
			s.Initialized = true
		}

		return false
	}

	s.MovingAverage = blend(s.MovingAverage, energy)

	if s.CooldownRemaining > 0 {
		s.CooldownRemaining--
		return false
	}

	if energy > s.MovingAverage*s.sensitivity {
		s.CooldownRemaining = s.cooldownFrames
		return true
	}

	return false
}

// CentroidState is the per-scan state of the frequency-change detector.
type CentroidState struct {
	Reference         float64
	HasReference      bool
	CooldownRemaining int

	cooldownFrames int
	sensitivity    float64
}

// NewCentroidState returns a state that reports a change when a centroid
// differs from the reference by more than sensitivity (relative), followed
// by cooldownFrames hops during which the reference only follows.
func NewCentroidState(cooldownFrames int, sensitivity float64) *CentroidState {
	if cooldownFrames < 0 {
		cooldownFrames = 0
	}

	return &CentroidState{
		cooldownFrames: cooldownFrames,
		sensitivity:    sensitivity,
	}
}

// Step advances the state by one valid window centroid and reports whether
// the window is a frequency change.
//
// The first centroid seeds the reference. On a change the reference is reset
// to the new centroid; otherwise it is blended towards it. A reference that is
// not positive cannot anchor a relative change, so such hops only blend.
func (s *CentroidState) Step(centroid float64) bool {
	if !s.HasReference {
		s.Reference = centroid
		s.HasReference = true

		return false
	}

	if s.CooldownRemaining > 0 {
		s.CooldownRemaining--
		s.Reference = blend(s.Reference, centroid)

		return false
	}

	if s.Reference <= 0 {
		s.Reference = blend(s.Reference, centroid)
		return false
	}

	change := (centroid - s.Reference) / s.Reference
	if change < 0 {
		change = -change
	}

	if change > s.sensitivity {
		s.CooldownRemaining = s.cooldownFrames
		s.Reference = centroid

		return true
	}

	s.Reference = blend(s.Reference, centroid)

	return false
}
