package glimmer

// Parameter keys bound by the Driver. Any other key is passed through to the
// frame's uniforms untouched (hex strings resolved to colors).
const (
	KeyHold0    = "timeline.hold0"
	KeyRampUp   = "timeline.rampUp"
	KeyHold1    = "timeline.hold1"
	KeyRampDown = "timeline.rampDown"

	KeyTunnelSpeed       = "tunnel.speed"
	KeyTunnelCount       = "tunnel.count"
	KeyTunnelSpacing     = "tunnel.spacing"
	KeyTunnelScaleFactor = "tunnel.scaleFactor"
	KeyTunnelWidth       = "tunnel.baseWidth"
	KeyTunnelHeight      = "tunnel.baseHeight"

	KeyImageSkip           = "image.skip"
	KeyImageTolerance      = "image.tolerance"
	KeyImageAlphaThreshold = "image.alphaThreshold"
	KeyImageInitialZ       = "image.initialZ"

	KeyParticleMinSize      = "particles.minSize"
	KeyParticleMaxSize      = "particles.maxSize"
	KeyParticleTypes        = "particles.types"
	KeyParticleBaseColor    = "particles.baseColor"
	KeyParticleFormDuration = "particles.formDuration"
	KeyPointerSmoothing     = "particles.pointerSmoothing"
)

// Uniform names the Driver fills in every tick.
const (
	UniformTime     = "time"
	UniformProgress = "progress"
	UniformPointer  = "mousePos"

	// UniformResolution is the output size in pixels as (width, height, 0).
	UniformResolution = "resolution"
)

func rng(min, max, step float64) *Range {
	return &Range{Min: min, Max: max, Step: step}
}

// DefaultTimelineParams declares the four timeline phase durations.
func DefaultTimelineParams() []Parameter {
	d := DefaultTimelineConfig()
	return []Parameter{
		{Key: KeyHold0, Value: Number(d.Hold0), Range: rng(0, 10, 0.1), Label: "Hold (start)", Folder: "timeline"},
		{Key: KeyRampUp, Value: Number(d.RampUp), Range: rng(0, 10, 0.1), Label: "Ramp up", Folder: "timeline"},
		{Key: KeyHold1, Value: Number(d.Hold1), Range: rng(0, 10, 0.1), Label: "Hold (end)", Folder: "timeline"},
		{Key: KeyRampDown, Value: Number(d.RampDown), Range: rng(0, 10, 0.1), Label: "Ramp down", Folder: "timeline"},
	}
}

// DefaultTunnelParams declares the neon tunnel knobs, including appearance
// values the renderer reads from the uniforms.
func DefaultTunnelParams() []Parameter {
	return []Parameter{
		{Key: "scene.backgroundColor", Value: String("#000000"), Label: "Background", Folder: "scene"},
		{Key: "camera.fov", Value: Number(75), Range: rng(10, 120, 1), Label: "FOV", Folder: "camera"},
		{Key: "camera.positionZ", Value: Number(0), Range: rng(0.1, 50, 0.1), Label: "Camera Z", Folder: "camera"},
		{Key: KeyTunnelSpeed, Value: Number(5), Range: rng(0, 100, 1), Label: "Speed", Folder: "tunnel"},
		{Key: KeyTunnelCount, Value: Number(25), Range: rng(3, 60, 1), Label: "Segments", Folder: "tunnel"},
		{Key: KeyTunnelSpacing, Value: Number(5), Range: rng(1, 30, 0.5), Label: "Spacing", Folder: "tunnel"},
		{Key: KeyTunnelWidth, Value: Number(12), Range: rng(1, 50, 0.5), Label: "Width", Folder: "tunnel"},
		{Key: KeyTunnelHeight, Value: Number(12), Range: rng(1, 50, 0.5), Label: "Height", Folder: "tunnel"},
		{Key: KeyTunnelScaleFactor, Value: Number(0.95), Range: rng(0.8, 1, 0.005), Label: "Scale factor", Folder: "tunnel"},
		{Key: "tunnel.wallColor", Value: String("#ffffff"), Label: "Wall color", Folder: "segmentAppearance"},
		{Key: "ground.color", Value: String("#0b0a0a"), Label: "Ground color", Folder: "groundReflector"},
		{Key: "bloom.enabled", Value: Bool(true), Label: "Bloom", Folder: "postProcessing"},
		{Key: "bloom.intensity", Value: Number(0.2), Range: rng(0, 10, 0.1), Label: "Bloom intensity", Folder: "postProcessing"},
	}
}

// DefaultParticleParams declares image sampling, formation and the pointer
// interaction knobs consumed by the renderer.
func DefaultParticleParams() []Parameter {
	s := DefaultSampleOptions()
	p := DefaultParticleConfig()
	return []Parameter{
		{Key: KeyImageSkip, Value: Number(float64(s.Step)), Range: rng(1, 20, 1), Label: "Skip", Folder: "imageProcessing"},
		{Key: KeyImageTolerance, Value: Number(s.BrightnessThreshold), Range: rng(0, 254, 1), Label: "Tolerance", Folder: "imageProcessing"},
		{Key: KeyImageAlphaThreshold, Value: Number(s.AlphaThreshold), Range: rng(0, 254, 1), Label: "Alpha threshold", Folder: "imageProcessing"},
		{Key: KeyImageInitialZ, Value: Number(s.ZOffset), Range: rng(-100, 100, 0.1), Label: "Initial Z", Folder: "imageProcessing"},
		{Key: KeyParticleMinSize, Value: Number(p.Size.Min), Range: rng(0.01, 5, 0.01), Label: "Min Size", Folder: "particleProperties"},
		{Key: KeyParticleMaxSize, Value: Number(p.Size.Max), Range: rng(0.1, 10, 0.1), Label: "Max Size", Folder: "particleProperties"},
		{Key: KeyParticleTypes, Value: Number(float64(p.Types)), Range: rng(1, 3, 1), Label: "Types (int)", Folder: "particleProperties"},
		{Key: KeyParticleBaseColor, Value: String("#0058eb"), Label: "Base Color", Folder: "particleProperties"},
		{Key: KeyParticleFormDuration, Value: Number(p.FormDuration), Range: rng(0.1, 10, 0.1), Label: "Form duration", Folder: "particleProperties"},
		{Key: KeyPointerSmoothing, Value: Number(p.Smoothing), Range: rng(0.01, 1, 0.01), Label: "Pointer smoothing", Folder: "particleProperties"},
		{Key: "vertTimeFactor", Value: Number(0.5), Range: rng(0, 5, 0.01), Label: "Vertex Time Factor", Folder: "vertex"},
		{Key: "noiseFactor1Low", Value: Number(0), Range: rng(0, 2, 0.01), Label: "Noise Factor 1 Low", Folder: "vertex"},
		{Key: "noiseFactor1High", Value: Number(0.48), Range: rng(0, 2, 0.01), Label: "Noise Factor 1 High", Folder: "vertex"},
		{Key: "mouseInteractionRadius", Value: Number(245), Range: rng(0, 500, 1), Label: "Mouse Radius", Folder: "vertex"},
		{Key: "mouseFalloffStart", Value: Number(6.6), Range: rng(0, 400, 0.1), Label: "Mouse Falloff", Folder: "vertex"},
		{Key: "mouseRepelStrength", Value: Number(39), Range: rng(0, 400, 0.1), Label: "Mouse Repel", Folder: "vertex"},
		{Key: "pointSizeMouseMult", Value: Number(5), Range: rng(0, 5, 0.01), Label: "Point Size Mouse Mult", Folder: "vertex"},
		{Key: "minPointSize", Value: Number(5), Range: rng(0.1, 10, 0.1), Label: "Min Point Size", Folder: "vertex"},
		{Key: "fragHueShiftTimeFreq", Value: Number(0.81), Range: rng(0, 5, 0.01), Label: "Hue Shift Time Freq", Folder: "fragment"},
		{Key: "fragHueShiftIndexFreq", Value: Number(0.03), Range: rng(0, 0.1, 0.01), Label: "Hue Shift Index Freq", Folder: "fragment"},
		{Key: "fragAlphaClampMax", Value: Number(1), Range: rng(0, 1, 0.01), Label: "Alpha Clamp Max", Folder: "fragment"},
	}
}

// sampleOptionsFrom reads the image.* keys.
func sampleOptionsFrom(p *Params) SampleOptions {
	d := DefaultSampleOptions()
	return SampleOptions{
		Step:                p.Int(KeyImageSkip, d.Step),
		BrightnessThreshold: p.Float(KeyImageTolerance, d.BrightnessThreshold),
		AlphaThreshold:      p.Float(KeyImageAlphaThreshold, d.AlphaThreshold),
		ZOffset:             p.Float(KeyImageInitialZ, d.ZOffset),
	}
}

// particleConfigFrom reads the particles.* keys over base.
func particleConfigFrom(p *Params, base ParticleConfig) ParticleConfig {
	cfg := base
	cfg.FormDuration = p.Float(KeyParticleFormDuration, base.FormDuration)
	cfg.Smoothing = p.Float(KeyPointerSmoothing, base.Smoothing)
	cfg.Size = Range{
		Min: p.Float(KeyParticleMinSize, base.Size.Min),
		Max: p.Float(KeyParticleMaxSize, base.Size.Max),
	}
	if cfg.Size.Max < cfg.Size.Min {
		cfg.Size.Max = cfg.Size.Min
	}
	cfg.Types = p.Int(KeyParticleTypes, base.Types)
	cfg.BaseColor = p.Color(KeyParticleBaseColor, base.BaseColor)
	return cfg
}
