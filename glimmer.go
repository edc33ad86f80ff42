package glimmer

import "github.com/go-gl/mathgl/mgl64"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// Range is a general-purpose min/max range with an optional step.
// Used by parameter declarations and by the particle size distribution.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to [Min, Max]. A zero-width range returns Min.
func (r Range) Clamp(v float64) float64 {
	if r.Max < r.Min {
		return r.Min
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FarPointer is the sentinel position used when no pointer is present. It
// lies far outside any interaction radius, so repulsion falls to zero.
var FarPointer = mgl64.Vec3{10000, 1000, 1000}

// PointerSample is one reading from the input collaborator. When Present is
// false the simulator treats the pointer as FarPointer.
type PointerSample struct {
	Position mgl64.Vec3
	Present  bool
}

// world returns the position the simulator should steer toward.
func (p PointerSample) world() mgl64.Vec3 {
	if !p.Present {
		return FarPointer
	}
	return p.Position
}

// PointerSource supplies the latest pointer sample once per tick.
type PointerSource interface {
	Pointer() PointerSample
}

// StaticPointer is a PointerSource that always returns the same sample.
// Useful for tests and headless runs.
type StaticPointer PointerSample

// Pointer implements PointerSource.
func (s StaticPointer) Pointer() PointerSample {
	return PointerSample(s)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec3 interpolates each component of a toward b by t.
func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		lerp(a[0], b[0], t),
		lerp(a[1], b[1], t),
		lerp(a[2], b[2], t),
	}
}

// clampMin returns v, or min if v is below it.
func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
