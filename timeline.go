package glimmer

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Phase is one of the four ordered segments of a timeline cycle.
type Phase uint8

const (
	PhaseHold0    Phase = iota // progress held at 0
	PhaseRampUp                // eased 0 -> 1
	PhaseHold1                 // progress held at 1
	PhaseRampDown              // eased 1 -> 0
)

func (p Phase) String() string {
	switch p {
	case PhaseHold0:
		return "hold0"
	case PhaseRampUp:
		return "rampUp"
	case PhaseHold1:
		return "hold1"
	case PhaseRampDown:
		return "rampDown"
	default:
		return "unknown"
	}
}

const (
	// minPhaseDuration guards ramp divisions when a ramp is configured as zero.
	minPhaseDuration = 1e-6
	// minCycleDuration is the smallest cycle a timeline will run.
	minCycleDuration = 1e-3
)

// TimelineConfig holds the four phase durations in seconds. Ease shapes both
// ramps and defaults to ease.InOutQuad.
type TimelineConfig struct {
	Hold0    float64
	RampUp   float64
	Hold1    float64
	RampDown float64
	Ease     ease.TweenFunc
}

// DefaultTimelineConfig is the 1.5s/3.5s/1.5s/3.5s burst-and-gather loop.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{Hold0: 1.5, RampUp: 3.5, Hold1: 1.5, RampDown: 3.5}
}

// Timeline is a cyclic hold/ramp/hold/ramp progress generator. Advance is a
// pure function of elapsed time; the last phase and progress are kept only
// for inspection.
type Timeline struct {
	hold0, rampUp, hold1, rampDown float64
	cycle                          float64
	ease                           ease.TweenFunc

	phase    Phase
	progress float64
}

// NewTimeline creates a timeline from cfg. Negative durations are treated as
// zero and a cycle shorter than minCycleDuration is stretched to it.
func NewTimeline(cfg TimelineConfig) *Timeline {
	t := &Timeline{ease: cfg.Ease}
	if t.ease == nil {
		t.ease = ease.InOutQuad
	}
	t.SetDurations(cfg.Hold0, cfg.RampUp, cfg.Hold1, cfg.RampDown)
	return t
}

// SetDurations replaces the phase durations. The next Advance uses them.
func (t *Timeline) SetDurations(hold0, rampUp, hold1, rampDown float64) {
	t.hold0 = clampMin(hold0, 0)
	t.rampUp = clampMin(rampUp, 0)
	t.hold1 = clampMin(hold1, 0)
	t.rampDown = clampMin(rampDown, 0)
	t.cycle = t.hold0 + t.rampUp + t.hold1 + t.rampDown
	if t.cycle < minCycleDuration {
		Logger().Debug("glimmer: timeline cycle clamped", "cycle", t.cycle, "min", minCycleDuration)
		t.hold0 += minCycleDuration - t.cycle
		t.cycle = minCycleDuration
	}
}

// CycleDuration returns the sum of the four phase durations.
func (t *Timeline) CycleDuration() float64 {
	return t.cycle
}

// Phase returns the phase computed by the last Advance.
func (t *Timeline) Phase() Phase {
	return t.phase
}

// Progress returns the value computed by the last Advance.
func (t *Timeline) Progress() float64 {
	return t.progress
}

// Advance maps elapsed seconds to a progress value in [0, 1]. Wraparound is
// handled by the modulo, so a timeline resumes after a suspension without an
// explicit reset.
func (t *Timeline) Advance(elapsed float64) float64 {
	local := math.Mod(elapsed, t.cycle)
	if local < 0 || math.IsNaN(local) {
		local = math.Mod(local+t.cycle, t.cycle)
		if math.IsNaN(local) {
			local = 0
		}
	}

	upStart := t.hold0
	holdStart := upStart + t.rampUp
	downStart := holdStart + t.hold1

	var p float64
	switch {
	case local < upStart:
		t.phase = PhaseHold0
		p = 0
	case local < holdStart:
		t.phase = PhaseRampUp
		p = t.eased((local - upStart) / math.Max(t.rampUp, minPhaseDuration))
	case local < downStart:
		t.phase = PhaseHold1
		p = 1
	default:
		t.phase = PhaseRampDown
		p = 1 - t.eased((local-downStart)/math.Max(t.rampDown, minPhaseDuration))
	}
	t.progress = clamp01(p)
	return t.progress
}

// eased applies the ramp easing to a phase-local fraction.
func (t *Timeline) eased(x float64) float64 {
	x = clamp01(x)
	return float64(t.ease(float32(x), 0, 1, 1))
}

// EaseInOutQuad is the quadratic ease-in-out curve in float64:
// 2x² below one half, 1-2(1-x)² above.
func EaseInOutQuad(x float64) float64 {
	if x < 0.5 {
		return 2 * x * x
	}
	return 1 - 2*(1-x)*(1-x)
}

// EaseInOutQuad64 adapts EaseInOutQuad to the gween signature so timelines
// can run the curve without float32 rounding of x.
func EaseInOutQuad64(t, b, c, d float32) float32 {
	return b + c*float32(EaseInOutQuad(float64(t)/float64(d)))
}

// DrawCount converts progress into a draw-range count for progressive
// reveals: floor(progress*total), clamped to [0, total].
func DrawCount(progress float64, total int) int {
	if total <= 0 || !(progress > 0) {
		return 0
	}
	n := int(math.Floor(clamp01(progress) * float64(total)))
	if n > total {
		return total
	}
	return n
}
