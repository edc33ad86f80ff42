package glimmer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TorusKnot returns segments+1 points along the centre line of a (p, q)
// torus knot: the curve winds p times around the axis of a torus of the
// given radius and q times through its hole. The last point closes the loop.
// Paired with DriverConfig.RevealTotal it gives a shape the timeline can
// draw progressively.
func TorusKnot(segments, p, q int, radius float64) []mgl64.Vec3 {
	if segments < 1 {
		segments = 1
	}
	if p == 0 {
		p = 1
	}
	pts := make([]mgl64.Vec3, segments+1)
	for i := range pts {
		u := float64(i) / float64(segments) * float64(p) * 2 * math.Pi
		qu := float64(q) / float64(p) * u
		cs := math.Cos(qu)
		pts[i] = mgl64.Vec3{
			radius * (2 + cs) * 0.5 * math.Cos(u),
			radius * (2 + cs) * 0.5 * math.Sin(u),
			radius * math.Sin(qu) * 0.5,
		}
	}
	return pts
}
