package ebitenfx

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ojrac/opensimplex-go"

	"github.com/phanxgames/glimmer"
)

// spriteSize is the pixel size of the pre-rendered point sprites.
const spriteSize = 32

// Renderer is a glimmer.Sink that keeps the latest frame and draws it with
// Ebitengine. Render and Draw must be called from the game goroutine.
type Renderer struct {
	// TunnelCamera views the segments, PlaneCamera the particles.
	TunnelCamera Camera
	PlaneCamera  Camera
	Style        ParticleStyle

	noise   opensimplex.Noise
	frame   glimmer.FrameState
	hasData bool
	sprites [3]*ebiten.Image
	// spriteKey holds the style values the sprites were rasterized with.
	spriteKey  [3]float64
	hasSprites bool
	order      []int
	layer      *ebiten.Image
	bloom      *Bloom
	fractal    *FractalLayer
}

// NewRenderer creates a renderer with the default cameras and style. seed
// feeds the drift noise.
func NewRenderer(seed int64) *Renderer {
	return &Renderer{
		TunnelCamera: TunnelCamera(),
		PlaneCamera:  PlaneCamera(),
		Style:        DefaultParticleStyle(),
		noise:        opensimplex.New(seed),
		bloom:        NewBloom(16),
		fractal:      NewFractalLayer(),
	}
}

// Render implements glimmer.Sink.
func (r *Renderer) Render(f glimmer.FrameState) {
	r.frame = f
	r.hasData = true
	r.Style.Apply(f.Uniforms)
	if v, ok := f.Uniforms["camera.fov"]; ok && v.Kind == glimmer.KindNumber {
		r.TunnelCamera.FOV = v.Num
	}
	if v, ok := f.Uniforms["camera.positionZ"]; ok && v.Kind == glimmer.KindNumber {
		r.TunnelCamera.Position[2] = v.Num
	}
}

// Frame returns the last frame handed to Render.
func (r *Renderer) Frame() (glimmer.FrameState, bool) {
	return r.frame, r.hasData
}

// Draw paints the last frame onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(uniformColor(r.frame.Uniforms, "scene.backgroundColor", glimmer.Color{A: 1}).RGBA())
	if !r.hasData {
		return
	}
	if c, ok := fractalConfig(r.frame.Uniforms); ok {
		r.fractal.Draw(screen, c, r.frame.Elapsed)
	}
	if len(r.frame.Segments) > 0 {
		if glow := bloomIntensity(r.frame.Uniforms); glow > 0 {
			r.drawTunnelBloom(screen, glow)
		} else {
			r.drawTunnel(screen)
		}
	}
	if len(r.frame.Particles) > 0 {
		r.drawParticles(screen)
	}
}

func (r *Renderer) drawTunnel(screen *ebiten.Image) {
	f := &r.frame
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cam := r.TunnelCamera

	// Ground plane under the tunnel.
	ground := uniformColor(f.Uniforms, "ground.color", glimmer.Color{R: 0.04, G: 0.04, B: 0.04, A: 1})
	if _, gy, _, ok := cam.Project(mgl64.Vec3{0, -f.Tunnel.Height / 2, -f.Tunnel.TotalDepth}, w, h); ok {
		vector.DrawFilledRect(screen, 0, float32(gy), float32(w), float32(float64(h)-gy), ground.RGBA(), false)
	}

	wall := uniformColor(f.Uniforms, "tunnel.wallColor", glimmer.ColorWhite)

	// Back to front.
	r.order = r.order[:0]
	for i := range f.Segments {
		r.order = append(r.order, i)
	}
	slices.SortFunc(r.order, func(a, b int) int {
		switch za, zb := f.Segments[a].Z, f.Segments[b].Z; {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return 0
	})

	for _, i := range r.order {
		s := f.Segments[i]
		hw := f.Tunnel.Width * s.Scale / 2
		hh := f.Tunnel.Height * s.Scale / 2
		x0, y0, depth, ok0 := cam.Project(mgl64.Vec3{-hw, hh, s.Z}, w, h)
		x1, y1, _, ok1 := cam.Project(mgl64.Vec3{hw, -hh, s.Z}, w, h)
		if !ok0 || !ok1 || depth < cam.Near {
			continue
		}
		// Fade with distance so the far end dissolves into the background.
		fade := 1 - clamp(depth/math.Max(f.Tunnel.TotalDepth, 1), 0, 1)
		c := wall
		c.A = fade
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, c.RGBA(), true)
	}
}

// drawTunnelBloom draws the tunnel into an offscreen layer, then composites
// the layer and its bloom onto screen.
func (r *Renderer) drawTunnelBloom(screen *ebiten.Image, glow float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if r.layer == nil || r.layer.Bounds().Dx() != w || r.layer.Bounds().Dy() != h {
		if r.layer != nil {
			r.layer.Deallocate()
		}
		r.layer = ebiten.NewImage(w, h)
	} else {
		r.layer.Clear()
	}
	r.drawTunnel(r.layer)
	screen.DrawImage(r.layer, nil)
	r.bloom.Apply(r.layer, screen, glow)
}

// bloomIntensity reads bloom.intensity, or 0 when bloom.enabled is false.
func bloomIntensity(u map[string]glimmer.Value) float64 {
	if v, ok := u["bloom.enabled"]; ok && v.Kind == glimmer.KindBool && !v.Bool {
		return 0
	}
	if v, ok := u["bloom.intensity"]; ok && v.Kind == glimmer.KindNumber {
		return v.Num
	}
	return 0
}

func (r *Renderer) drawParticles(screen *ebiten.Image) {
	r.ensureSprites()
	f := &r.frame
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	t := f.Elapsed

	var op ebiten.DrawImageOptions
	for i := range f.Particles {
		p := &f.Particles[i]
		pos := p.Position.Add(Drift(r.noise, p.Index, t, r.Style))
		off, influence := Repel(pos, f.Pointer, r.Style)
		pos = pos.Add(off)

		sx, sy, depth, ok := r.PlaneCamera.Project(pos, w, h)
		if !ok {
			continue
		}
		size := PointSize(p.Size, depth, influence, r.Style)
		c := PointColor(p.Color, p.Index, t, influence, r.Style)

		typ := min(max(p.Type, 0), len(r.sprites)-1)
		scale := size / spriteSize
		op.GeoM.Reset()
		op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
		op.Blend = ebiten.BlendLighter
		screen.DrawImage(r.sprites[typ], &op)
	}
}

// ensureSprites renders one white point sprite per particle shape, and
// renders them again when an alpha knob they bake in has changed.
func (r *Renderer) ensureSprites() {
	if !r.spritesStale() {
		return
	}
	r.spriteKey = spriteKeyOf(r.Style)
	r.hasSprites = true
	for typ := range r.sprites {
		if r.sprites[typ] != nil {
			r.sprites[typ].Deallocate()
		}
		r.sprites[typ] = ebiten.NewImageFromImage(SpriteImage(typ, spriteSize, r.Style))
	}
}

// spritesStale reports whether the sprites are missing or were rasterized
// with different alpha settings.
func (r *Renderer) spritesStale() bool {
	return !r.hasSprites || r.spriteKey != spriteKeyOf(r.Style)
}

func spriteKeyOf(s ParticleStyle) [3]float64 {
	return [3]float64{s.FinalAlphaMult, s.AlphaClampMin, s.AlphaClampMax}
}

// SpriteImage rasterizes the alpha profile of a particle shape into a
// premultiplied white n×n image.
func SpriteImage(typ, n int, s ParticleStyle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	half := float64(n) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			a := PointAlpha(typ, math.Hypot(dx, dy), 0, 0, s)
			v := uint8(a*255 + 0.5)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

// DrawPoints draws world-space points through the plane camera as filled
// circles. Used by effects that compute positions outside the simulator.
func (r *Renderer) DrawPoints(screen *ebiten.Image, points []mgl64.Vec3, radius float64, c glimmer.Color) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	clr := c.RGBA()
	for _, p := range points {
		sx, sy, depth, ok := r.PlaneCamera.Project(p, w, h)
		if !ok {
			continue
		}
		rad := math.Max(1, radius*r.Style.PerspectiveFactor/depth)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(rad), clr, true)
	}
}

func uniformColor(u map[string]glimmer.Value, key string, fallback glimmer.Color) glimmer.Color {
	v, ok := u[key]
	if !ok || v.Kind != glimmer.KindColor {
		return fallback
	}
	return v.Color
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
