package glimmer

import (
	"math"
	"testing"
)

// gween easing runs in float32.
const easeEps = 1e-6

func testTimeline() *Timeline {
	return NewTimeline(TimelineConfig{Hold0: 1, RampUp: 2, Hold1: 1, RampDown: 2})
}

func TestTimeline_KnownValues(t *testing.T) {
	tl := testTimeline()
	cases := []struct {
		elapsed float64
		want    float64
		phase   Phase
	}{
		{0, 0, PhaseHold0},
		{0.5, 0, PhaseHold0},
		{2.0, 0.5, PhaseRampUp},
		{3.5, 1, PhaseHold1},
		{5.0, 0.5, PhaseRampDown},
		{6.0, 0, PhaseHold0},
	}
	for _, c := range cases {
		got := tl.Advance(c.elapsed)
		assertNearEps(t, "Advance", got, c.want, easeEps)
		if tl.Phase() != c.phase {
			t.Errorf("Phase at %v = %v, want %v", c.elapsed, tl.Phase(), c.phase)
		}
	}
}

func TestTimeline_Range(t *testing.T) {
	tl := NewTimeline(DefaultTimelineConfig())
	for i := 0; i < 2000; i++ {
		e := float64(i) * 0.0137
		p := tl.Advance(e)
		if p < 0 || p > 1 {
			t.Fatalf("Advance(%v) = %v, out of [0,1]", e, p)
		}
	}
}

func TestTimeline_Periodic(t *testing.T) {
	tl := testTimeline()
	cycle := tl.CycleDuration()
	assertNear(t, "CycleDuration", cycle, 6)
	for _, e := range []float64{0.25, 1.5, 2.75, 4.5, 5.9} {
		a := tl.Advance(e)
		b := tl.Advance(e + cycle)
		c := tl.Advance(e + 10*cycle)
		assertNearEps(t, "one cycle later", b, a, easeEps)
		assertNearEps(t, "ten cycles later", c, a, easeEps)
	}
}

func TestTimeline_Continuous(t *testing.T) {
	tl := testTimeline()
	const h = 1e-4
	prev := tl.Advance(0)
	for e := h; e < 6; e += h {
		p := tl.Advance(e)
		if math.Abs(p-prev) > 0.01 {
			t.Fatalf("jump at %v: %v -> %v", e, prev, p)
		}
		prev = p
	}
}

func TestTimeline_RampsAreMonotonic(t *testing.T) {
	tl := testTimeline()
	prev := tl.Advance(1)
	for e := 1.01; e < 3; e += 0.01 {
		p := tl.Advance(e)
		if p+easeEps < prev {
			t.Fatalf("ramp up decreased at %v: %v -> %v", e, prev, p)
		}
		prev = p
	}
	prev = tl.Advance(4)
	for e := 4.01; e < 6; e += 0.01 {
		p := tl.Advance(e)
		if p > prev+easeEps {
			t.Fatalf("ramp down increased at %v: %v -> %v", e, prev, p)
		}
		prev = p
	}
}

func TestTimeline_ZeroRampsStep(t *testing.T) {
	tl := NewTimeline(TimelineConfig{Hold0: 1, RampUp: 0, Hold1: 1, RampDown: 0})
	assertNear(t, "hold0", tl.Advance(0.5), 0)
	assertNear(t, "hold1", tl.Advance(1.5), 1)
	assertNear(t, "wrap", tl.Advance(2.5), 0)
}

func TestTimeline_AllZeroDurations(t *testing.T) {
	tl := NewTimeline(TimelineConfig{})
	if tl.CycleDuration() < minCycleDuration {
		t.Errorf("CycleDuration = %v, want >= %v", tl.CycleDuration(), minCycleDuration)
	}
	for _, e := range []float64{0, 1, 123.456} {
		p := tl.Advance(e)
		if math.IsNaN(p) || p < 0 || p > 1 {
			t.Errorf("Advance(%v) = %v", e, p)
		}
	}
}

func TestTimeline_NegativeElapsed(t *testing.T) {
	tl := testTimeline()
	assertNearEps(t, "Advance(-4)", tl.Advance(-4), tl.Advance(2), easeEps)
	if p := tl.Advance(math.NaN()); p != 0 {
		t.Errorf("Advance(NaN) = %v, want 0", p)
	}
}

func TestTimeline_SetDurations(t *testing.T) {
	tl := testTimeline()
	tl.SetDurations(0, 1, 0, 1)
	assertNear(t, "CycleDuration", tl.CycleDuration(), 2)
	assertNearEps(t, "mid ramp", tl.Advance(0.5), 0.5, easeEps)
}

func TestTimeline_CustomEase(t *testing.T) {
	tl := NewTimeline(TimelineConfig{RampUp: 1, Hold1: 1, Ease: EaseInOutQuad64})
	assertNearEps(t, "quarter", tl.Advance(0.25), 0.125, easeEps)
}

func TestEaseInOutQuad(t *testing.T) {
	assertNear(t, "0", EaseInOutQuad(0), 0)
	assertNear(t, "0.25", EaseInOutQuad(0.25), 0.125)
	assertNear(t, "0.5", EaseInOutQuad(0.5), 0.5)
	assertNear(t, "0.75", EaseInOutQuad(0.75), 0.875)
	assertNear(t, "1", EaseInOutQuad(1), 1)
}

func TestDrawCount(t *testing.T) {
	cases := []struct {
		p     float64
		total int
		want  int
	}{
		{0, 100, 0},
		{0.5, 100, 50},
		{0.999, 100, 99},
		{1, 100, 100},
		{1.5, 100, 100},
		{-1, 100, 0},
		{0.5, 0, 0},
		{math.NaN(), 100, 0},
	}
	for _, c := range cases {
		if got := DrawCount(c.p, c.total); got != c.want {
			t.Errorf("DrawCount(%v, %d) = %d, want %d", c.p, c.total, got, c.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRampDown.String() != "rampDown" {
		t.Errorf("PhaseRampDown.String() = %q", PhaseRampDown.String())
	}
}
