package glimmer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fractal plane parameter keys.
const (
	KeyFractalEnabled       = "fractal.enabled"
	KeyFractalCoordScale    = "fractal.coordMultiplier"
	KeyFractalLoopLimit     = "fractal.loopLimit"
	KeyFractalFractScale    = "fractal.fractMultiplier"
	KeyFractalFractOffset   = "fractal.fractOffset"
	KeyFractalPaletteFactor = "fractal.paletteFactor"
	KeyFractalTimeFactor    = "fractal.timeFactor"
	KeyFractalSinScale      = "fractal.sinMultiplier"
	KeyFractalSinDivisor    = "fractal.sinDivisor"
	KeyFractalPowNumerator  = "fractal.powNumerator"
	KeyFractalPowExponent   = "fractal.powExponent"
	KeyFractalAlpha         = "fractal.alpha"
)

// MaxFractalLoops bounds the fractal layer count. GPU loops need a constant
// bound, so larger limits clamp to it.
const MaxFractalLoops = 10

const (
	minSinDivisor = 1e-3
	minFractalD   = 1e-4
)

// FractalConfig drives the fractal plane: each layer folds the coordinates
// with fract, then adds a palette color weighted by a sine ring.
type FractalConfig struct {
	Enabled       bool
	CoordScale    float64
	LoopLimit     int
	FractScale    float64
	FractOffset   float64
	PaletteFactor float64
	TimeFactor    float64
	SinScale      float64
	SinDivisor    float64
	PowNumerator  float64
	PowExponent   float64
	Alpha         float64
}

// DefaultFractalConfig returns the stock fractal look.
func DefaultFractalConfig() FractalConfig {
	return FractalConfig{
		Enabled:       true,
		CoordScale:    2,
		LoopLimit:     7,
		FractScale:    1.3,
		FractOffset:   0.2,
		PaletteFactor: 0.9,
		TimeFactor:    0.47,
		SinScale:      9.5,
		SinDivisor:    10,
		PowNumerator:  0.01,
		PowExponent:   1.2,
		Alpha:         1,
	}
}

// DefaultFractalParams declares the fractal.* knobs.
func DefaultFractalParams() []Parameter {
	c := DefaultFractalConfig()
	return []Parameter{
		{Key: KeyFractalEnabled, Value: Bool(c.Enabled), Label: "Fractal", Folder: "fractal"},
		{Key: KeyFractalCoordScale, Value: Number(c.CoordScale), Range: rng(0.1, 5, 0.1), Label: "Coord Scale Factor", Folder: "fractal"},
		{Key: KeyFractalLoopLimit, Value: Number(float64(c.LoopLimit)), Range: rng(1, MaxFractalLoops, 1), Label: "Loop Count Limit", Folder: "fractal"},
		{Key: KeyFractalFractScale, Value: Number(c.FractScale), Range: rng(0.1, 5, 0.1), Label: "Fractal Scale", Folder: "fractal"},
		{Key: KeyFractalFractOffset, Value: Number(c.FractOffset), Range: rng(-1, 1, 0.1), Label: "Fractal Offset", Folder: "fractal"},
		{Key: KeyFractalPaletteFactor, Value: Number(c.PaletteFactor), Range: rng(0, 2, 0.01), Label: "Palette Iteration Factor", Folder: "fractal"},
		{Key: KeyFractalTimeFactor, Value: Number(c.TimeFactor), Range: rng(0, 2, 0.01), Label: "Palette Time Factor", Folder: "fractal"},
		{Key: KeyFractalSinScale, Value: Number(c.SinScale), Range: rng(1, 20, 0.1), Label: "Sine Multiplier", Folder: "fractal"},
		{Key: KeyFractalSinDivisor, Value: Number(c.SinDivisor), Range: rng(1, 20, 0.1), Label: "Sine Divisor", Folder: "fractal"},
		{Key: KeyFractalPowNumerator, Value: Number(c.PowNumerator), Range: rng(0.001, 0.5, 0.001), Label: "Power Numerator", Folder: "fractal"},
		{Key: KeyFractalPowExponent, Value: Number(c.PowExponent), Range: rng(0.1, 5, 0.1), Label: "Power Exponent", Folder: "fractal"},
		{Key: KeyFractalAlpha, Value: Number(c.Alpha), Range: rng(0, 1, 0.01), Label: "Alpha", Folder: "fractal"},
	}
}

// FractalConfigFrom reads the fractal.* keys from p.
func FractalConfigFrom(p *Params) FractalConfig {
	c := readFractalConfig(p.Float)
	c.Enabled = p.Bool(KeyFractalEnabled, c.Enabled)
	return c
}

// FractalConfigFromUniforms reads the fractal.* keys from a frame's uniforms.
func FractalConfigFromUniforms(u map[string]Value) FractalConfig {
	c := readFractalConfig(func(key string, fallback float64) float64 {
		if v, ok := u[key]; ok && v.Kind == KindNumber {
			return v.Num
		}
		return fallback
	})
	if v, ok := u[KeyFractalEnabled]; ok && v.Kind == KindBool {
		c.Enabled = v.Bool
	}
	return c
}

// readFractalConfig reads every numeric knob through get and sanitizes the
// result. Non-finite values fall back to the defaults; the loop limit is
// clamped to [0, MaxFractalLoops].
func readFractalConfig(get func(key string, fallback float64) float64) FractalConfig {
	d := DefaultFractalConfig()
	c := d
	num := func(key string, def float64) float64 {
		v := get(key, def)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	c.CoordScale = num(KeyFractalCoordScale, d.CoordScale)
	c.FractScale = num(KeyFractalFractScale, d.FractScale)
	c.FractOffset = num(KeyFractalFractOffset, d.FractOffset)
	c.PaletteFactor = num(KeyFractalPaletteFactor, d.PaletteFactor)
	c.TimeFactor = num(KeyFractalTimeFactor, d.TimeFactor)
	c.SinScale = num(KeyFractalSinScale, d.SinScale)
	c.PowExponent = math.Max(num(KeyFractalPowExponent, d.PowExponent), 0)
	c.PowNumerator = math.Max(num(KeyFractalPowNumerator, d.PowNumerator), 0)
	c.Alpha = clamp01(num(KeyFractalAlpha, d.Alpha))

	c.SinDivisor = num(KeyFractalSinDivisor, d.SinDivisor)
	if math.Abs(c.SinDivisor) < minSinDivisor {
		c.SinDivisor = math.Copysign(minSinDivisor, c.SinDivisor)
	}

	loops := math.Round(num(KeyFractalLoopLimit, float64(d.LoopLimit)))
	c.LoopLimit = int(math.Max(0, math.Min(MaxFractalLoops, loops)))
	return c
}

// fractalPalette is a cosine gradient cycling through the hues.
func fractalPalette(t float64) (r, g, b float64) {
	const tau = 6.28318
	return 0.5 + 0.5*math.Cos(tau*t),
		0.5 + 0.5*math.Cos(tau*(t+0.33)),
		0.5 + 0.5*math.Cos(tau*(t+0.67))
}

// Shade evaluates the fractal at pixel (x, y) of a w by h target at time t,
// with y measured from the bottom. It mirrors the GPU layer and serves
// software rendering and tests. Color channels are unbounded; callers clamp.
func (c FractalConfig) Shade(x, y, w, h, t float64) Color {
	if !(h > 0) || !(w > 0) {
		return Color{A: c.Alpha}
	}
	uv := mgl64.Vec2{(x*c.CoordScale - w) / h, (y*c.CoordScale - h) / h}
	dist0 := uv.Len()

	var out Color
	for i := 0; i < c.LoopLimit; i++ {
		uv = mgl64.Vec2{fract(uv[0]*c.FractScale) - c.FractOffset, fract(uv[1]*c.FractScale) - c.FractOffset}
		d := uv.Len() * math.Exp(-dist0)
		r, g, b := fractalPalette(dist0 + float64(i)*c.PaletteFactor + t*c.TimeFactor)
		d = math.Abs(math.Sin(d*c.SinScale+t) / c.SinDivisor)
		d = math.Max(d, minFractalD)
		d = math.Pow(c.PowNumerator/d, c.PowExponent)
		out.R += r * d
		out.G += g * d
		out.B += b * d
	}
	out.A = c.Alpha
	return out
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}
