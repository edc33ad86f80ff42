// Package ebitenfx draws glimmer frames with Ebitengine.
//
// [Renderer] is a glimmer.Sink: the driver hands it a frame each tick and
// [Renderer.Draw] paints the tunnel as perspective-projected rectangles and
// the particles as additive point sprites. Per-particle drift, pointer
// repulsion and hue shifting run on the CPU at draw time.
//
// [CursorPointer] feeds the mouse position, unprojected onto the
// interaction plane, back into the driver. [Game] and [Run] wrap it all in
// a window. With bloom.enabled the tunnel also gets a [Bloom] pass, and
// frames carrying fractal.* parameters get a [FractalLayer] background.
//
// [Script] replays JSON capture scripts (pointer sweeps, parameter changes,
// screenshots) for recording a scene unattended.
//
// A minimal window:
//
//	r := ebitenfx.NewRenderer(1)
//	ptr := ebitenfx.NewCursorPointer(&r.PlaneCamera)
//	d := glimmer.NewDriver(params, glimmer.DriverConfig{Sink: r, Pointer: ptr, Image: img})
//	g := ebitenfx.NewGame(d, r)
//	g.Pointer = ptr
//	err := ebitenfx.Run(g, ebitenfx.RunConfig{Title: "glimmer", Width: 1280, Height: 720})
package ebitenfx
