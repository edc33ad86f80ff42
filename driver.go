package glimmer

import (
	"context"
	"maps"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sink receives one immutable snapshot per tick. Render is called on the
// frame goroutine and must not retain slices across calls if it mutates them.
type Sink interface {
	Render(frame FrameState)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(frame FrameState)

// Render implements Sink.
func (f SinkFunc) Render(frame FrameState) { f(frame) }

// FrameState is everything a renderer needs for one frame. Slices and the
// uniforms map are copies; the next Tick never changes them.
type FrameState struct {
	Elapsed float64
	Delta   float64

	Progress float64
	Phase    Phase

	Segments []Segment
	Tunnel   TunnelInfo

	Particles    []Particle
	FormState    FormState
	FormProgress float64
	Pointer      mgl64.Vec3

	// RevealCount is DrawCount(Progress, RevealTotal): how many primitives
	// of a progressively drawn shape are visible this frame.
	RevealCount int

	// Uniforms holds every parameter with hex strings resolved to colors,
	// plus time, progress and mousePos for this tick.
	Uniforms map[string]Value
}

// DriverConfig selects which components a Driver runs.
type DriverConfig struct {
	// Sink receives every frame. Nil discards frames; Last still works.
	Sink Sink
	// Pointer is read once per tick before the simulator runs.
	Pointer PointerSource
	// Tunnel enables the segment recycler.
	Tunnel bool
	// Image enables the particle simulator. It is sampled asynchronously;
	// the simulator idles with zero particles until the sample resolves.
	Image ImageSource
	// Context bounds asynchronous sampling. Nil means context.Background.
	Context context.Context
	// DeltaCap bounds dt per tick. Zero means DefaultDeltaCap.
	DeltaCap float64
	// Seed feeds the particle simulator; zero picks a random seed.
	Seed uint64
	// RevealTotal is the primitive count of a shape revealed by the timeline.
	// Zero leaves FrameState.RevealCount at zero.
	RevealTotal int
}

// Driver runs the per-frame update in a fixed order: pointer, targets,
// timeline, tunnel, particles, then one snapshot to the sink. Parameter
// changes are collected through change callbacks and applied at the start
// of the next tick, so uniforms and derived state are only recomputed when
// something changed.
type Driver struct {
	params *Params
	cfg    DriverConfig

	timeline *Timeline
	tunnel   *Recycler
	sim      *Simulator
	pending  *PendingTargets
	targets  []mgl64.Vec3

	speed      float64
	tunnelInfo TunnelInfo
	uniforms   map[string]Value
	resolution mgl64.Vec3

	timelineDirty bool
	tunnelDirty   bool
	sampleDirty   bool
	restartDirty  bool
	colorDirty    bool

	handles []CallbackHandle
	last    FrameState
}

// NewDriver wires a driver to params. Parameters the enabled components
// need but params does not declare fall back to their defaults.
func NewDriver(params *Params, cfg DriverConfig) *Driver {
	if params == nil {
		params = NewParams()
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.DeltaCap <= 0 {
		cfg.DeltaCap = DefaultDeltaCap
	}
	d := &Driver{
		params:   params,
		cfg:      cfg,
		uniforms: make(map[string]Value),
	}
	d.timeline = NewTimeline(d.timelineConfig())

	if cfg.Tunnel {
		d.tunnel = NewRecycler()
		d.tunnel.DeltaCap = cfg.DeltaCap
		d.initTunnel()
	}
	if cfg.Image != nil {
		pc := particleConfigFrom(params, DefaultParticleConfig())
		pc.Seed = cfg.Seed
		d.sim = NewSimulator(pc)
		d.pending = SampleAsync(cfg.Context, cfg.Image, sampleOptionsFrom(params))
	}

	for k, v := range params.Snapshot() {
		d.uniforms[k] = resolveUniform(v)
	}
	d.bind()
	return d
}

func (d *Driver) bind() {
	on := func(dirty *bool, keys ...string) {
		for _, k := range keys {
			d.handles = append(d.handles, d.params.OnChange(k, func(string, Value) { *dirty = true }))
		}
	}
	on(&d.timelineDirty, KeyHold0, KeyRampUp, KeyHold1, KeyRampDown)
	on(&d.tunnelDirty, KeyTunnelCount, KeyTunnelSpacing, KeyTunnelScaleFactor)
	on(&d.sampleDirty, KeyImageSkip, KeyImageTolerance, KeyImageAlphaThreshold, KeyImageInitialZ)
	on(&d.restartDirty, KeyParticleMinSize, KeyParticleMaxSize, KeyParticleTypes)
	on(&d.colorDirty, KeyParticleBaseColor)

	d.handles = append(d.handles,
		d.params.OnChange(KeyTunnelSpeed, func(_ string, v Value) {
			if v.Kind == KindNumber {
				d.speed = v.Num
			}
		}),
		d.params.OnChange(KeyTunnelWidth, func(_ string, v Value) {
			if v.Kind == KindNumber {
				d.tunnelInfo.Width = v.Num
			}
		}),
		d.params.OnChange(KeyTunnelHeight, func(_ string, v Value) {
			if v.Kind == KindNumber {
				d.tunnelInfo.Height = v.Num
			}
		}),
		d.params.OnChange(KeyParticleFormDuration, func(_ string, v Value) {
			if d.sim != nil && v.Kind == KindNumber {
				d.sim.Config().FormDuration = v.Num
			}
		}),
		d.params.OnChange(KeyPointerSmoothing, func(_ string, v Value) {
			if d.sim != nil && v.Kind == KindNumber {
				d.sim.Config().Smoothing = v.Num
			}
		}),
		d.params.OnAnyChange(func(k string, v Value) {
			d.uniforms[k] = resolveUniform(v)
		}),
	)
}

// Close unregisters every parameter callback. The driver must not be ticked
// afterwards.
func (d *Driver) Close() {
	for _, h := range d.handles {
		h.Remove()
	}
	d.handles = nil
}

func (d *Driver) timelineConfig() TimelineConfig {
	def := DefaultTimelineConfig()
	return TimelineConfig{
		Hold0:    d.params.Float(KeyHold0, def.Hold0),
		RampUp:   d.params.Float(KeyRampUp, def.RampUp),
		Hold1:    d.params.Float(KeyHold1, def.Hold1),
		RampDown: d.params.Float(KeyRampDown, def.RampDown),
	}
}

func (d *Driver) initTunnel() {
	d.tunnel.Initialize(
		d.params.Int(KeyTunnelCount, 25),
		d.params.Float(KeyTunnelSpacing, 5),
		d.params.Float(KeyTunnelScaleFactor, 0.95),
	)
	d.speed = d.params.Float(KeyTunnelSpeed, 5)
	d.tunnelInfo.Width = d.params.Float(KeyTunnelWidth, 12)
	d.tunnelInfo.Height = d.params.Float(KeyTunnelHeight, 12)
}

// applyChanges folds collected parameter changes into component state.
func (d *Driver) applyChanges() {
	if d.timelineDirty {
		d.timelineDirty = false
		c := d.timelineConfig()
		d.timeline.SetDurations(c.Hold0, c.RampUp, c.Hold1, c.RampDown)
	}
	if d.tunnelDirty {
		d.tunnelDirty = false
		if d.tunnel != nil {
			d.initTunnel()
		}
	}
	if d.sim == nil {
		d.sampleDirty, d.restartDirty, d.colorDirty = false, false, false
		return
	}
	if d.sampleDirty {
		d.sampleDirty = false
		d.pending = SampleAsync(d.cfg.Context, d.cfg.Image, sampleOptionsFrom(d.params))
	}
	if d.restartDirty {
		d.restartDirty = false
		d.colorDirty = false
		cfg := d.sim.Config()
		*cfg = particleConfigFrom(d.params, *cfg)
		d.sim.Start(d.targets)
	}
	if d.colorDirty {
		d.colorDirty = false
		d.sim.SetBaseColor(d.params.Color(KeyParticleBaseColor, d.sim.Config().BaseColor))
	}
}

// SetImage swaps the sampled image. The current formation keeps running
// until the new sample resolves, then the particle set is rebuilt.
func (d *Driver) SetImage(src ImageSource) {
	d.cfg.Image = src
	if src == nil {
		d.pending = nil
		d.targets = nil
		if d.sim != nil {
			d.sim.Start(nil)
		}
		return
	}
	if d.sim == nil {
		pc := particleConfigFrom(d.params, DefaultParticleConfig())
		pc.Seed = d.cfg.Seed
		d.sim = NewSimulator(pc)
	}
	d.pending = SampleAsync(d.cfg.Context, src, sampleOptionsFrom(d.params))
}

// Tick advances every component and hands one snapshot to the sink.
// elapsed is seconds since start and drives the timeline; dt is seconds
// since the previous tick and is capped at DeltaCap. A tick with dt of zero
// leaves all state unchanged.
func (d *Driver) Tick(elapsed, dt float64) FrameState {
	if !(dt > 0) {
		dt = 0
	}
	dt = math.Min(dt, d.cfg.DeltaCap)

	d.applyChanges()

	if d.sim != nil {
		if d.cfg.Pointer != nil {
			d.sim.SetPointer(d.cfg.Pointer.Pointer())
		}
		if d.pending != nil {
			if targets, ok := d.pending.Poll(); ok {
				d.pending = nil
				d.targets = targets
				d.sim.Start(targets)
			}
		}
	}

	progress := d.timeline.Advance(elapsed)

	if d.tunnel != nil {
		d.tunnel.Tick(dt, d.speed)
	}
	if d.sim != nil {
		d.sim.Tick(dt)
	}

	frame := d.snapshot(elapsed, dt, progress)
	d.last = frame
	if d.cfg.Sink != nil {
		d.cfg.Sink.Render(frame)
	}
	return frame
}

func (d *Driver) snapshot(elapsed, dt, progress float64) FrameState {
	f := FrameState{
		Elapsed:  elapsed,
		Delta:    dt,
		Progress: progress,
		Phase:    d.timeline.Phase(),
		Pointer:  FarPointer,
	}
	if d.cfg.RevealTotal > 0 {
		f.RevealCount = DrawCount(progress, d.cfg.RevealTotal)
	}
	if d.tunnel != nil {
		f.Segments = append([]Segment(nil), d.tunnel.Segments()...)
		f.Tunnel = d.tunnelInfo
		f.Tunnel.Spacing = d.tunnel.Spacing()
		f.Tunnel.TotalDepth = d.tunnel.TotalDepth()
	}
	if d.sim != nil {
		f.Particles = append([]Particle(nil), d.sim.Particles()...)
		f.FormState = d.sim.State()
		f.FormProgress = d.sim.FormProgress()
		f.Pointer = d.sim.Pointer()
	}
	f.Uniforms = maps.Clone(d.uniforms)
	if f.Uniforms == nil {
		f.Uniforms = make(map[string]Value, 4)
	}
	f.Uniforms[UniformTime] = Number(elapsed)
	f.Uniforms[UniformProgress] = Number(progress)
	f.Uniforms[UniformPointer] = Value{Kind: KindVector, Vec: f.Pointer}
	f.Uniforms[UniformResolution] = Value{Kind: KindVector, Vec: d.resolution}
	return f
}

// SetResolution records the output size in pixels. It is published as the
// resolution uniform from the next tick on.
func (d *Driver) SetResolution(width, height float64) {
	d.resolution = mgl64.Vec3{width, height, 0}
}

// resolveUniform turns hex color strings into color values.
func resolveUniform(v Value) Value {
	if v.Kind == KindString {
		if c, ok := resolveColor(v); ok {
			return ColorValue(c)
		}
	}
	return v
}

// Params returns the store the driver is bound to.
func (d *Driver) Params() *Params { return d.params }

// Timeline returns the driver's timeline.
func (d *Driver) Timeline() *Timeline { return d.timeline }

// Tunnel returns the recycler, or nil when the tunnel is disabled.
func (d *Driver) Tunnel() *Recycler { return d.tunnel }

// Simulator returns the particle simulator, or nil when no image is set.
func (d *Driver) Simulator() *Simulator { return d.sim }

// Last returns the most recent frame.
func (d *Driver) Last() FrameState { return d.last }
