package ebitenfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"

	"github.com/phanxgames/glimmer"
)

// ParticleStyle holds the drift, repulsion and shading constants of the
// particle plane. Fields exposed as parameters are refreshed from the frame
// uniforms by Apply; the rest keep their defaults.
type ParticleStyle struct {
	VertTimeFactor float64
	IndexFactor    float64
	SwirlIndexFreq float64
	SwirlTimeFreq  float64

	NoiseFactor1Low  float64
	NoiseFactor1High float64
	Offset1Freq      mgl64.Vec3
	Offset1IdxFreq   mgl64.Vec3
	Offset1Strength  float64

	RandIdxFactor    float64
	NoiseFactor2Low  float64
	NoiseFactor2High float64
	DriftSpeedFactor float64
	Offset2Freq      mgl64.Vec3
	Offset2IdxFreq   mgl64.Vec3
	Offset2Strength  float64

	MouseInteractionRadius float64
	MouseFalloffStart      float64
	MouseRepelStrength     float64

	PerspectiveFactor  float64
	PointSizeMouseMult float64
	MinPointSize       float64

	HueShiftTimeFreq  float64
	HueShiftIndexFreq float64
	HueShiftAmount    float64

	MouseColorMixBase      float64
	MouseColorMixTarget    float64
	MouseColorMixInfluence float64

	FinalAlphaMult float64
	AlphaClampMin  float64
	AlphaClampMax  float64
}

// DefaultParticleStyle returns the particle plane look.
func DefaultParticleStyle() ParticleStyle {
	return ParticleStyle{
		VertTimeFactor: 0.5,
		IndexFactor:    0.08,
		SwirlIndexFreq: 30,
		SwirlTimeFreq:  9.9,

		NoiseFactor1Low:  0,
		NoiseFactor1High: 0.48,
		Offset1Freq:      mgl64.Vec3{2.11, 12.9, 3.64},
		Offset1IdxFreq:   mgl64.Vec3{5, 6, 7},
		Offset1Strength:  8.8,

		RandIdxFactor:    3.24,
		NoiseFactor2Low:  7.1,
		NoiseFactor2High: 0,
		DriftSpeedFactor: 0.96,
		Offset2Freq:      mgl64.Vec3{0.64, 0.11, 0.54},
		Offset2IdxFreq:   mgl64.Vec3{1.1, 1.2, 1.3},
		Offset2Strength:  1.94,

		MouseInteractionRadius: 245,
		MouseFalloffStart:      6.6,
		MouseRepelStrength:     39,

		PerspectiveFactor:  1000,
		PointSizeMouseMult: 5,
		MinPointSize:       5,

		HueShiftTimeFreq:  0.81,
		HueShiftIndexFreq: 0.03,
		HueShiftAmount:    0.5,

		MouseColorMixBase:      0.08,
		MouseColorMixTarget:    0.46,
		MouseColorMixInfluence: 2.8,

		FinalAlphaMult: 1.9,
		AlphaClampMin:  0,
		AlphaClampMax:  1,
	}
}

// Apply copies the tunable fields present in uniforms onto s. NaN values
// are ignored.
func (s *ParticleStyle) Apply(uniforms map[string]glimmer.Value) {
	set := func(key string, dst *float64) {
		if v, ok := uniforms[key]; ok && v.Kind == glimmer.KindNumber && !math.IsNaN(v.Num) {
			*dst = v.Num
		}
	}
	set("vertTimeFactor", &s.VertTimeFactor)
	set("noiseFactor1Low", &s.NoiseFactor1Low)
	set("noiseFactor1High", &s.NoiseFactor1High)
	set("mouseInteractionRadius", &s.MouseInteractionRadius)
	set("mouseFalloffStart", &s.MouseFalloffStart)
	set("mouseRepelStrength", &s.MouseRepelStrength)
	set("pointSizeMouseMult", &s.PointSizeMouseMult)
	set("minPointSize", &s.MinPointSize)
	set("fragHueShiftTimeFreq", &s.HueShiftTimeFreq)
	set("fragHueShiftIndexFreq", &s.HueShiftIndexFreq)
	set("fragAlphaClampMax", &s.AlphaClampMax)
}

// smoothstep is the Hermite step. edge0 may exceed edge1, which inverts
// the ramp.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// Drift computes the animated offsets for particle index at time t. The
// per-particle amplitude of the slow drift comes from 2D simplex noise
// sampled at the index, so it is stable across frames.
func Drift(noise opensimplex.Noise, index int, t float64, s ParticleStyle) mgl64.Vec3 {
	T := t * s.VertTimeFactor
	idx := float64(index) * s.IndexFactor

	nf1 := math.Sin(idx*s.SwirlIndexFreq+T*s.SwirlTimeFreq)*s.NoiseFactor1Low + s.NoiseFactor1High
	offset1 := mgl64.Vec3{
		math.Cos(T*s.Offset1Freq[0]+idx*s.Offset1IdxFreq[0]) * nf1,
		math.Sin(T*s.Offset1Freq[1]+idx*s.Offset1IdxFreq[1]) * nf1,
		math.Cos(T*s.Offset1Freq[2]+idx*s.Offset1IdxFreq[2]) * nf1,
	}.Mul(s.Offset1Strength)

	// Eval2 is in [-1, 1]; remap to [0, 1].
	r := 0.5
	if noise != nil {
		r = (noise.Eval2(idx, idx*s.RandIdxFactor) + 1) / 2
	}
	nf2 := r*s.NoiseFactor2Low + s.NoiseFactor2High
	sp := T * s.DriftSpeedFactor
	offset2 := mgl64.Vec3{
		math.Sin(sp*s.Offset2Freq[0]+idx*s.Offset2IdxFreq[0]) * nf2,
		math.Cos(sp*s.Offset2Freq[1]+idx*s.Offset2IdxFreq[1]) * nf2,
		math.Sin(sp*s.Offset2Freq[2]+idx*s.Offset2IdxFreq[2]) * nf2,
	}.Mul(s.Offset2Strength)

	return offset1.Add(offset2)
}

// Repel pushes pos away from pointer. influence is 0 outside the
// interaction radius and rises to 1 at the falloff distance.
func Repel(pos, pointer mgl64.Vec3, s ParticleStyle) (offset mgl64.Vec3, influence float64) {
	away := pos.Sub(pointer)
	dist := away.Len()
	if dist >= s.MouseInteractionRadius {
		return mgl64.Vec3{}, 0
	}
	influence = smoothstep(s.MouseInteractionRadius, s.MouseFalloffStart, dist)
	if dist < 1e-12 {
		return mgl64.Vec3{}, influence
	}
	return away.Mul(influence * s.MouseRepelStrength / dist), influence
}

// PointSize is the on-screen diameter in pixels for a particle at view
// depth.
func PointSize(size, depth, influence float64, s ParticleStyle) float64 {
	if depth <= 0 {
		return s.MinPointSize
	}
	px := size * (s.PerspectiveFactor / depth) * (1 + influence*s.PointSizeMouseMult)
	return math.Max(s.MinPointSize, px)
}

// PointColor is the hue-shifted, pointer-tinted color of a particle.
func PointColor(base glimmer.Color, index int, t, influence float64, s ParticleStyle) glimmer.Color {
	shift := math.Sin(t*s.HueShiftTimeFreq+float64(index)*s.HueShiftIndexFreq) * s.HueShiftAmount
	c := base.HueShift(shift)
	target := glimmer.Color{
		R: c.R*s.MouseColorMixBase + s.MouseColorMixTarget,
		G: c.G*s.MouseColorMixBase + s.MouseColorMixTarget,
		B: c.B*s.MouseColorMixBase + s.MouseColorMixTarget,
		A: c.A,
	}
	return c.Mix(target, influence*s.MouseColorMixInfluence)
}

// Particle shapes by type.
const (
	ShapeCore = iota
	ShapeRing
	ShapePulse
)

// PointAlpha is the opacity of a point sprite at normalized radius dist
// (0 center, 1 edge) for a particle of the given type.
func PointAlpha(typ int, dist, t float64, index int, s ParticleStyle) float64 {
	if dist > 1 {
		return 0
	}
	var a float64
	switch {
	case typ <= ShapeCore:
		core := smoothstep(1, 0.76, dist) * 0.5
		glow := math.Pow(math.Max(0, 1-dist), 0.1) * 2
		a = core + glow
	case typ == ShapeRing:
		const width, center, div = 0.05, 0, 5
		ring := math.Exp(-math.Pow(dist-center, 2) / (div * width * width))
		a = smoothstep(1, 0.8, ring) * 1.39
		a += smoothstep(0.3, 1, dist) * 0.1
	default:
		pulse := math.Sin(dist*5-t*2+float64(index)*0.1)*0.1 + 0.9
		a = math.Pow(math.Max(0, 1-dist), 2.5) * pulse * 0.9
	}
	a *= s.FinalAlphaMult
	return math.Max(s.AlphaClampMin, math.Min(s.AlphaClampMax, a))
}
