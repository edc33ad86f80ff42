package glimmer

import (
	"math"
	"testing"
)

func TestFractalConfigFrom_Defaults(t *testing.T) {
	p := NewParams()
	p.DefineAll(DefaultFractalParams())
	c := FractalConfigFrom(p)
	if c != DefaultFractalConfig() {
		t.Errorf("FractalConfigFrom = %+v, want defaults", c)
	}
}

func TestFractalConfigFrom_ClampsLoopLimit(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{1e9, MaxFractalLoops},
		{1e300, MaxFractalLoops},
		{-3, 0},
		{4.4, 4},
		{math.NaN(), 7},
		{math.Inf(1), 7},
	}
	p := NewParams()
	p.DefineAll(DefaultFractalParams())
	for _, c := range cases {
		p.SetFloat(KeyFractalLoopLimit, c.in)
		if got := FractalConfigFrom(p).LoopLimit; got != c.want {
			t.Errorf("LoopLimit(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFractalConfigFrom_SanitizesDivisors(t *testing.T) {
	p := NewParams()
	p.DefineAll(DefaultFractalParams())
	p.SetFloat(KeyFractalSinDivisor, 0)
	p.SetFloat(KeyFractalPowNumerator, -1)
	p.SetFloat(KeyFractalAlpha, 4)
	p.SetFloat(KeyFractalCoordScale, math.NaN())

	c := FractalConfigFrom(p)
	assertNear(t, "SinDivisor", c.SinDivisor, minSinDivisor)
	assertNear(t, "PowNumerator", c.PowNumerator, 0)
	assertNear(t, "Alpha", c.Alpha, 1)
	assertNear(t, "CoordScale", c.CoordScale, DefaultFractalConfig().CoordScale)
}

func TestFractalConfigFromUniforms(t *testing.T) {
	u := map[string]Value{
		KeyFractalEnabled:   Bool(false),
		KeyFractalLoopLimit: Number(99),
		KeyFractalAlpha:     Number(0.5),
	}
	c := FractalConfigFromUniforms(u)
	if c.Enabled {
		t.Error("Enabled = true, want false")
	}
	if c.LoopLimit != MaxFractalLoops {
		t.Errorf("LoopLimit = %d, want %d", c.LoopLimit, MaxFractalLoops)
	}
	assertNear(t, "Alpha", c.Alpha, 0.5)
	assertNear(t, "SinScale", c.SinScale, DefaultFractalConfig().SinScale)
}

func TestFractalShade_ZeroLoopsIsBlack(t *testing.T) {
	c := DefaultFractalConfig()
	c.LoopLimit = 0
	got := c.Shade(10, 20, 100, 50, 3)
	if got != (Color{A: 1}) {
		t.Errorf("Shade = %+v, want opaque black", got)
	}
}

func TestFractalShade_FiniteOnExtremes(t *testing.T) {
	p := NewParams()
	p.DefineAll(DefaultFractalParams())
	p.SetFloat(KeyFractalLoopLimit, 1e9)
	p.SetFloat(KeyFractalSinDivisor, 0)
	p.SetFloat(KeyFractalPowExponent, 5)
	p.SetFloat(KeyFractalPowNumerator, 0.5)
	c := FractalConfigFrom(p)

	for _, pt := range [][2]float64{{0, 0}, {50, 25}, {99, 49}} {
		got := c.Shade(pt[0], pt[1], 100, 50, 12.5)
		for _, v := range []float64{got.R, got.G, got.B, got.A} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Shade(%v) = %+v, want finite", pt, got)
			}
		}
	}
	if got := c.Shade(1, 1, 0, 0, 0); got != (Color{A: 1}) {
		t.Errorf("Shade on empty target = %+v, want opaque black", got)
	}
}

func TestFractalShade_MoreLoopsAddLight(t *testing.T) {
	c := DefaultFractalConfig()
	c.LoopLimit = 1
	one := c.Shade(30, 40, 100, 100, 0)
	c.LoopLimit = 2
	two := c.Shade(30, 40, 100, 100, 0)
	if two.R+two.G+two.B <= one.R+one.G+one.B {
		t.Errorf("two layers %+v should be brighter than one %+v", two, one)
	}
}

func TestTorusKnot(t *testing.T) {
	pts := TorusKnot(200, 2, 5, 10)
	if len(pts) != 201 {
		t.Fatalf("len = %d, want 201", len(pts))
	}
	assertVec(t, "closes", pts[200], pts[0])
	// u = 0: cos(0) = 1, so x = r*(2+1)/2.
	assertNear(t, "pts[0].X", pts[0][0], 15)
	for i, p := range pts {
		if r := math.Hypot(p[0], p[1]); r < 5-epsilon || r > 15+epsilon {
			t.Errorf("pts[%d] radius %v outside [5, 15]", i, r)
		}
	}
	if got := TorusKnot(0, 0, 3, 1); len(got) != 2 {
		t.Errorf("degenerate len = %d, want 2", len(got))
	}
}
