package ebitenfx

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/glimmer"
)

// fractalShaderSrc folds the coordinates once per layer and accumulates a
// cosine palette weighted by a sine ring. LoopLimit is a uniform, so the
// loop runs to the constant bound and breaks early.
const fractalShaderSrc = `//kage:unit pixels
package main

var Time float
var Resolution vec2
var CoordScale float
var LoopLimit float
var FractScale float
var FractOffset float
var PaletteFactor float
var TimeFactor float
var SinScale float
var SinDivisor float
var PowNumerator float
var PowExponent float
var Alpha float

func palette(t float) vec3 {
	return 0.5 + 0.5*cos(6.28318*(t+vec3(0.0, 0.33, 0.67)))
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	// Y up, origin bottom left.
	frag := vec2(dst.x, Resolution.y-dst.y)
	uv := (frag*CoordScale - Resolution) / Resolution.y
	dist0 := length(uv)
	col := vec3(0)
	for i := 0; i < 10; i++ {
		if float(i) >= LoopLimit {
			break
		}
		uv = fract(uv*FractScale) - FractOffset
		d := length(uv) * exp(-dist0)
		c := palette(dist0 + float(i)*PaletteFactor + Time*TimeFactor)
		d = abs(sin(d*SinScale+Time) / SinDivisor)
		d = max(d, 0.0001)
		d = pow(PowNumerator/d, PowExponent)
		col += c * d
	}
	col = clamp(col, 0, 1)
	return vec4(col*Alpha, Alpha)
}
`

// FractalLayer draws the fractal plane as a full-target shader pass. A
// shader that fails to compile disables the layer instead of failing the
// frame.
type FractalLayer struct {
	shader   *ebiten.Shader
	failed   bool
	uniforms map[string]any
	op       ebiten.DrawRectShaderOptions
}

// NewFractalLayer creates a layer; the shader compiles on first draw.
func NewFractalLayer() *FractalLayer {
	return &FractalLayer{uniforms: make(map[string]any, 13)}
}

func (l *FractalLayer) ensureShader() bool {
	if l.shader != nil || l.failed {
		return l.shader != nil
	}
	s, err := ebiten.NewShader([]byte(fractalShaderSrc))
	if err != nil {
		l.failed = true
		glimmer.Logger().Error("glimmer: fractal shader failed", "err", err)
		return false
	}
	l.shader = s
	return true
}

// Draw fills dst with the fractal at time t. It reports whether anything
// was drawn.
func (l *FractalLayer) Draw(dst *ebiten.Image, c glimmer.FractalConfig, t float64) bool {
	if !c.Enabled || !l.ensureShader() {
		return false
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	fractalUniforms(l.uniforms, c, t, w, h)
	l.op.Uniforms = l.uniforms
	l.op.Blend = ebiten.BlendSourceOver
	dst.DrawRectShader(w, h, l.shader, &l.op)
	return true
}

// fractalUniforms fills u with the shader inputs for a w by h target.
func fractalUniforms(u map[string]any, c glimmer.FractalConfig, t float64, w, h int) {
	u["Time"] = float32(t)
	u["Resolution"] = []float32{float32(w), float32(h)}
	u["CoordScale"] = float32(c.CoordScale)
	u["LoopLimit"] = float32(min(c.LoopLimit, glimmer.MaxFractalLoops))
	u["FractScale"] = float32(c.FractScale)
	u["FractOffset"] = float32(c.FractOffset)
	u["PaletteFactor"] = float32(c.PaletteFactor)
	u["TimeFactor"] = float32(c.TimeFactor)
	u["SinScale"] = float32(c.SinScale)
	u["SinDivisor"] = float32(c.SinDivisor)
	u["PowNumerator"] = float32(c.PowNumerator)
	u["PowExponent"] = float32(c.PowExponent)
	u["Alpha"] = float32(c.Alpha)
}

// fractalConfig returns the fractal settings in u, or false when the frame
// carries no fractal parameters.
func fractalConfig(u map[string]glimmer.Value) (glimmer.FractalConfig, bool) {
	if _, ok := u[glimmer.KeyFractalEnabled]; !ok {
		return glimmer.FractalConfig{}, false
	}
	c := glimmer.FractalConfigFromUniforms(u)
	return c, c.Enabled
}
