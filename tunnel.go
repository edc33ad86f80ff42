package glimmer

import "math"

const (
	// DefaultDeltaCap bounds the delta used in a single integration step so a
	// stalled frame does not produce one large jump.
	DefaultDeltaCap = 0.1
	// minSpacing is the smallest segment spacing the recycler will use.
	minSpacing = 1e-3
	// recycleEpsilon is the fraction of spacing a segment may overshoot
	// before being recycled; it absorbs float error at exactly +spacing.
	recycleEpsilon = 1e-9
	// MaxSegments caps the ring size; larger counts clamp to it.
	MaxSegments = 4096
)

// Segment is one recyclable slice of the tunnel.
type Segment struct {
	Index int
	Z     float64
	Scale float64
}

// TunnelInfo carries the tunnel dimensions the renderer needs to draw walls
// and the ground plane.
type TunnelInfo struct {
	Width, Height float64
	Spacing       float64
	TotalDepth    float64
}

// Recycler keeps a fixed ring of segments and moves them toward the viewer,
// translating each one back by the total depth once it passes the front.
// Storage is allocated once per Initialize and never grows.
type Recycler struct {
	// DeltaCap is the largest delta applied in one Tick. Zero means
	// DefaultDeltaCap.
	DeltaCap float64

	segments    []Segment
	spacing     float64
	scaleFactor float64
}

// NewRecycler creates an empty recycler. Call Initialize before Tick.
func NewRecycler() *Recycler {
	return &Recycler{DeltaCap: DefaultDeltaCap}
}

// Initialize lays out count segments at Z = -index*spacing with
// Scale = scaleFactor^index. Invalid count or spacing clamp to the smallest
// usable value rather than failing.
func (r *Recycler) Initialize(count int, spacing, scaleFactor float64) {
	if count < 1 {
		Logger().Debug("glimmer: segment count clamped", "count", count)
		count = 1
	}
	if count > MaxSegments {
		Logger().Debug("glimmer: segment count clamped", "count", count, "max", MaxSegments)
		count = MaxSegments
	}
	if !(spacing >= minSpacing) || math.IsInf(spacing, 0) {
		Logger().Debug("glimmer: segment spacing clamped", "spacing", spacing)
		spacing = minSpacing
	}
	if cap(r.segments) >= count {
		r.segments = r.segments[:count]
	} else {
		r.segments = make([]Segment, count)
	}
	r.spacing = spacing
	r.scaleFactor = scaleFactor
	for i := range r.segments {
		r.segments[i] = Segment{
			Index: i,
			Z:     -float64(i) * spacing,
			Scale: math.Pow(scaleFactor, float64(i)),
		}
	}
}

// Tick advances every segment by speed*min(dt, DeltaCap) and recycles any
// segment that left (-TotalDepth, Spacing]. A zero delta or zero speed
// leaves the ring unchanged.
func (r *Recycler) Tick(dt, speed float64) {
	if len(r.segments) == 0 || !(dt > 0) || speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return
	}
	deltaCap := r.DeltaCap
	if deltaCap <= 0 {
		deltaCap = DefaultDeltaCap
	}
	step := speed * math.Min(dt, deltaCap)
	total := r.TotalDepth()
	front := r.spacing + r.spacing*recycleEpsilon

	for i := range r.segments {
		s := &r.segments[i]
		s.Z += step
		if s.Z > front {
			// One subtraction covers normal speeds; the division handles
			// steps longer than the whole tunnel.
			s.Z -= total * math.Ceil((s.Z-front)/total)
			if s.Z > front {
				s.Z -= total
			}
		}
		if s.Z <= -total {
			// Negative speed runs the tunnel backwards.
			s.Z += total * (math.Floor((-total-s.Z)/total) + 1)
		}
	}
}

// Segments returns the live segments. The slice is owned by the recycler
// and is overwritten by the next Tick or Initialize.
func (r *Recycler) Segments() []Segment {
	return r.segments
}

// Len returns the number of segments.
func (r *Recycler) Len() int {
	return len(r.segments)
}

// Spacing returns the effective (clamped) spacing.
func (r *Recycler) Spacing() float64 {
	return r.spacing
}

// ScaleFactor returns the per-index scale multiplier.
func (r *Recycler) ScaleFactor() float64 {
	return r.scaleFactor
}

// TotalDepth is count*spacing, the distance a segment is translated when it
// is recycled.
func (r *Recycler) TotalDepth() float64 {
	return float64(len(r.segments)) * r.spacing
}
