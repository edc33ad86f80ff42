package glimmer

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// FormState is the lifecycle of a particle formation.
type FormState uint8

const (
	FormIdle    FormState = iota // no targets
	FormForming                  // particles travel from the origin to their targets
	FormSettled                  // particles rest exactly on their targets
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormForming:
		return "forming"
	case FormSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// minFormDuration guards the formation divisor.
const minFormDuration = 1e-3

// Particle is the shader-facing state of one point. Index, Size, Type and
// Color are fixed for the life of a formation; Position changes while forming.
type Particle struct {
	Index    int
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Size     float64
	Type     int
	Color    Color
}

// ParticleConfig controls how a formation is built and animated.
type ParticleConfig struct {
	// FormDuration is the time in seconds to travel from origin to target.
	FormDuration float64
	// Smoothing is the fraction of the remaining distance the smoothed
	// pointer covers each tick. It is applied per tick, not per second.
	Smoothing float64
	// Size is the range particle sizes are drawn from.
	Size Range
	// Types is the number of particle shapes; each particle gets a type in
	// [0, Types).
	Types int
	// BaseColor tints every particle.
	BaseColor Color
	// Seed feeds the size and type distribution. Zero picks a random seed.
	Seed uint64
}

// DefaultParticleConfig returns the particle-plane defaults.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		FormDuration: 2.5,
		Smoothing:    0.4,
		Size:         Range{Min: 0.94, Max: 1.5},
		Types:        2,
		BaseColor:    Color{R: 0, G: 0x58 / 255.0, B: 0xeb / 255.0, A: 1},
	}
}

// Simulator animates a fixed set of particles from the origin onto sampled
// targets and keeps a smoothed copy of the pointer for repulsion. Noise,
// drift and repulsion offsets are left to the renderer; the simulator only
// supplies their stable inputs.
type Simulator struct {
	config    ParticleConfig
	particles []Particle
	state     FormState
	progress  float64

	rawPointer      mgl64.Vec3
	smoothedPointer mgl64.Vec3

	rng *rand.Rand
}

// NewSimulator creates an idle simulator. The pointer starts at FarPointer.
func NewSimulator(cfg ParticleConfig) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulator{
		config:          cfg,
		rawPointer:      FarPointer,
		smoothedPointer: FarPointer,
		rng:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Config returns a pointer to the simulator's config for live tuning.
// Size, Types and BaseColor take effect on the next Start or SetBaseColor.
func (s *Simulator) Config() *ParticleConfig {
	return &s.config
}

// Start rebuilds the particle set for targets: every particle returns to the
// origin and formation restarts. The targets slice is borrowed, not copied.
// An empty set leaves the simulator idle with zero particles.
func (s *Simulator) Start(targets []mgl64.Vec3) {
	if cap(s.particles) >= len(targets) {
		s.particles = s.particles[:len(targets)]
	} else {
		s.particles = make([]Particle, len(targets))
	}
	s.progress = 0
	if len(targets) == 0 {
		s.state = FormIdle
		return
	}
	types := s.config.Types
	if types < 1 {
		types = 1
	}
	for i := range s.particles {
		s.particles[i] = Particle{
			Index:  i,
			Target: targets[i],
			Size:   s.randomSize(),
			Type:   s.rng.IntN(types),
			Color:  s.config.BaseColor,
		}
	}
	s.state = FormForming
}

// Restart replays the formation over the current targets.
func (s *Simulator) Restart() {
	if len(s.particles) == 0 {
		return
	}
	for i := range s.particles {
		s.particles[i].Position = mgl64.Vec3{}
	}
	s.progress = 0
	s.state = FormForming
}

func (s *Simulator) randomSize() float64 {
	r := s.config.Size
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// SetPointer replaces the raw pointer sample used by the next Tick.
func (s *Simulator) SetPointer(p PointerSample) {
	s.rawPointer = p.world()
}

// SetBaseColor recolors every particle in place without restarting the
// formation.
func (s *Simulator) SetBaseColor(c Color) {
	s.config.BaseColor = c
	for i := range s.particles {
		s.particles[i].Color = c
	}
}

// Tick advances formation by dt seconds and filters the pointer. A zero,
// negative or NaN dt leaves all state unchanged.
func (s *Simulator) Tick(dt float64) {
	if !(dt > 0) {
		return
	}
	s.smoothedPointer = lerpVec3(s.smoothedPointer, s.rawPointer, s.smoothing())
	if !finiteVec3(s.smoothedPointer) {
		s.smoothedPointer = s.rawPointer
	}

	if s.state != FormForming {
		return
	}
	dur := s.config.FormDuration
	if !(dur >= minFormDuration) {
		dur = minFormDuration
	}
	s.progress += dt / dur
	if s.progress >= 1 {
		s.progress = 1
		for i := range s.particles {
			s.particles[i].Position = s.particles[i].Target
		}
		s.state = FormSettled
		return
	}
	// Linear from the origin; positions scale with progress, no easing.
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = p.Target.Mul(s.progress)
	}
}

// smoothing returns the pointer filter factor clamped to [0, 1]. Factors
// above 1 overshoot, and above 2 the filter diverges.
func (s *Simulator) smoothing() float64 {
	a := s.config.Smoothing
	if !(a > 0) {
		return 0
	}
	return math.Min(a, 1)
}

func finiteVec3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// State returns the formation state.
func (s *Simulator) State() FormState {
	return s.state
}

// FormProgress returns formation progress in [0, 1].
func (s *Simulator) FormProgress() float64 {
	return s.progress
}

// Pointer returns the smoothed pointer position.
func (s *Simulator) Pointer() mgl64.Vec3 {
	return s.smoothedPointer
}

// Particles returns the live particles. The slice is owned by the simulator.
func (s *Simulator) Particles() []Particle {
	return s.particles
}

// Len returns the particle count.
func (s *Simulator) Len() int {
	return len(s.particles)
}
