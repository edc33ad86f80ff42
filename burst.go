package glimmer

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// BurstConfig shapes the per-vertex control vectors of a burst effect.
type BurstConfig struct {
	// NormalScale pushes each vertex along its normal.
	NormalScale float64
	// RandomRange adds a uniform offset in [-RandomRange/2, RandomRange/2]
	// on every axis.
	RandomRange float64
	// MidFactor places the Bézier control point along the control vector.
	MidFactor float64
	// Weight scales the middle Bézier term; 2 gives a standard quadratic curve.
	Weight float64
	Seed   uint64
}

// DefaultBurstConfig matches the logo burst defaults.
func DefaultBurstConfig() BurstConfig {
	return BurstConfig{MidFactor: 0.5, Weight: 2}
}

// BurstControls computes one control vector per normal:
// normal*NormalScale + random jitter. Computed once per geometry, like the
// sampler's targets.
func BurstControls(normals []mgl64.Vec3, cfg BurstConfig) []mgl64.Vec3 {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, ^seed))
	jitter := func() float64 {
		if cfg.RandomRange == 0 {
			return 0
		}
		return (rng.Float64() - 0.5) * cfg.RandomRange
	}
	out := make([]mgl64.Vec3, len(normals))
	for i, n := range normals {
		out[i] = mgl64.Vec3{
			n[0]*cfg.NormalScale + jitter(),
			n[1]*cfg.NormalScale + jitter(),
			n[2]*cfg.NormalScale + jitter(),
		}
	}
	return out
}

// BezierPoint evaluates the burst curve at progress t:
//
//	(1-t)²·start + w·(1-t)·t·(start + control·mid) + t²·(start + control)
//
// With the defaults (mid 0.5, weight 2) t=0 is start and t=1 is start+control.
func BezierPoint(start, control mgl64.Vec3, t float64, cfg BurstConfig) mgl64.Vec3 {
	u := 1 - t
	end := start.Add(control)
	mid := start.Add(control.Mul(cfg.MidFactor))
	return start.Mul(u * u).
		Add(mid.Mul(cfg.Weight * u * t)).
		Add(end.Mul(t * t))
}

// BurstPositions writes BezierPoint for every start/control pair into dst,
// growing it if needed, and returns it.
func BurstPositions(dst, starts, controls []mgl64.Vec3, t float64, cfg BurstConfig) []mgl64.Vec3 {
	n := min(len(starts), len(controls))
	if cap(dst) < n {
		dst = make([]mgl64.Vec3, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = BezierPoint(starts[i], controls[i], t, cfg)
	}
	return dst
}
