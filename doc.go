// Package glimmer is a per-frame simulation core for animated background
// effects: an endless neon tunnel, an image-sampled particle plane and a
// time-looped burst-and-gather effect.
//
// glimmer does no drawing. Each frame a [Driver] advances a cyclic
// [Timeline], a segment [Recycler] and a particle [Simulator], then hands an
// immutable [FrameState] to a [Sink]. The ebitenfx subpackage provides a
// Sink that draws with Ebitengine; the ecs submodule publishes frames as
// Donburi events.
//
// # Quick start
//
//	params := glimmer.NewParams()
//	params.DefineAll(glimmer.DefaultTimelineParams())
//	params.DefineAll(glimmer.DefaultTunnelParams())
//
//	d := glimmer.NewDriver(params, glimmer.DriverConfig{
//		Tunnel: true,
//		Sink: glimmer.SinkFunc(func(f glimmer.FrameState) {
//			// draw f.Segments at f.Progress ...
//		}),
//	})
//	for {
//		d.Tick(elapsed, dt)
//	}
//
// # Parameters
//
// [Params] is a flat key/value store of numbers, strings, vectors, colors
// and booleans. The driver subscribes to the keys it consumes (see the Key
// constants) and applies changes at the start of the next tick. Every other
// key is passed through to [FrameState.Uniforms], with hex color strings
// resolved once per change.
//
// Presets load YAML or TOML files into a store:
//
//	p, err := glimmer.LoadPreset("neon.yaml")
//	if err != nil { ... }
//	p.Apply(params)
//
// [WatchPreset] reloads a preset whenever its file changes; drain the
// channel with [DrainPresets] from the frame loop, or ease the newest one
// in with [LatestPreset] and [NewTransition].
//
// # Timeline
//
// A [Timeline] maps elapsed seconds to progress in [0, 1] through four
// phases: hold at 0, eased ramp up, hold at 1, eased ramp down. It is a pure
// function of elapsed time, so pausing and resuming needs no reset.
//
// # Tunnel
//
// A [Recycler] lays out count segments at Z = -i*spacing and moves them
// toward the viewer. A segment passing Z = spacing is translated back by the
// total depth, so the ring never allocates and always spans the same depth.
//
// # Particles
//
// [Sample] walks an image and returns one target per bright, opaque pixel.
// [SampleAsync] does the same on a goroutine; the driver polls the result
// and starts formation once it resolves. A [Simulator] moves particles
// linearly from the origin onto their targets and low-pass filters the
// pointer for repulsion.
//
// # Reveals and the fractal plane
//
// Set [DriverConfig.RevealTotal] and each frame carries
// [FrameState.RevealCount], the prefix of a shape such as a [TorusKnot] to
// draw. [DefaultFractalParams] declares the fractal.* knobs a renderer reads
// back with [FractalConfigFromUniforms].
//
// # Logging
//
// Diagnostics go through [log/slog]. The package is silent until
// [SetLogger] is called.
package glimmer
