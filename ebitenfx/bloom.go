package ebitenfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Bloom adds a blurred copy of a layer on top of the target. The blur is a
// Kawase-style chain of half-size linear downscales followed by upscales;
// bilinear filtering in DrawImage does the averaging.
type Bloom struct {
	// Radius in pixels. The chain has ceil(log2(Radius)) levels.
	Radius int

	temps []*ebiten.Image
	op    ebiten.DrawImageOptions
}

// NewBloom creates a bloom pass with the given blur radius.
func NewBloom(radius int) *Bloom {
	return &Bloom{Radius: max(radius, 0)}
}

// levels returns the number of downscale steps for the radius.
func (b *Bloom) levels() int {
	if b.Radius <= 1 {
		return 1
	}
	return max(1, int(math.Ceil(math.Log2(float64(b.Radius)))))
}

// Apply blurs src and adds it to dst scaled by intensity. Zero or negative
// intensity is a no-op.
func (b *Bloom) Apply(src, dst *ebiten.Image, intensity float64) {
	if intensity <= 0 {
		return
	}
	n := b.levels()
	for i := n; i < len(b.temps); i++ {
		if b.temps[i] != nil {
			b.temps[i].Deallocate()
		}
	}
	if len(b.temps) > n {
		b.temps = b.temps[:n]
	}
	for len(b.temps) < n {
		b.temps = append(b.temps, nil)
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := 0; i < n; i++ {
		w, h = max(w/2, 1), max(h/2, 1)
		if t := b.temps[i]; t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			b.temps[i] = ebiten.NewImage(w, h)
		} else {
			t.Clear()
		}
		b.scaleInto(b.temps[i], current, ebiten.BlendSourceOver, 1)
		current = b.temps[i]
	}
	for i := n - 2; i >= 0; i-- {
		b.temps[i].Clear()
		b.scaleInto(b.temps[i], current, ebiten.BlendSourceOver, 1)
		current = b.temps[i]
	}
	b.scaleInto(dst, current, ebiten.BlendLighter, float32(intensity))
}

func (b *Bloom) scaleInto(dst, src *ebiten.Image, blend ebiten.Blend, gain float32) {
	op := &b.op
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(
		float64(dst.Bounds().Dx())/float64(src.Bounds().Dx()),
		float64(dst.Bounds().Dy())/float64(src.Bounds().Dy()),
	)
	op.ColorScale.ScaleAlpha(gain)
	op.Filter = ebiten.FilterLinear
	op.Blend = blend
	dst.DrawImage(src, op)
}
