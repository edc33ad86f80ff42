package ebitenfx

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/glimmer"
)

// injectedSample is a queued synthetic pointer reading in screen pixels.
type injectedSample struct {
	x, y    float64
	present bool
}

// CursorPointer is a glimmer.PointerSource reading the mouse cursor and
// converting it to world space on the interaction plane. Leaving the window
// reports an absent pointer.
type CursorPointer struct {
	Camera *Camera
	// PlaneZ is the Z of the interaction plane.
	PlaneZ float64
	// Lift is added to the hit point's Z so the pointer sits just in front
	// of the particles.
	Lift float64

	width, height int
	cursor        func() (int, int)
	queue         []injectedSample
}

// NewCursorPointer creates a pointer source for cam, whose plane sits at
// Z = 0 with a lift of 1.
func NewCursorPointer(cam *Camera) *CursorPointer {
	return &CursorPointer{Camera: cam, Lift: 1, cursor: ebiten.CursorPosition}
}

// SetScreenSize records the layout size used for unprojection.
func (c *CursorPointer) SetScreenSize(w, h int) {
	c.width, c.height = w, h
}

// InjectMove queues a synthetic pointer position in screen coordinates.
// Each Pointer call consumes one queued sample before real input is read.
func (c *CursorPointer) InjectMove(x, y float64) {
	c.queue = append(c.queue, injectedSample{x: x, y: y, present: true})
}

// InjectLeave queues a pointer-out event.
func (c *CursorPointer) InjectLeave() {
	c.queue = append(c.queue, injectedSample{})
}

// Pointer implements glimmer.PointerSource.
func (c *CursorPointer) Pointer() glimmer.PointerSample {
	var s injectedSample
	if len(c.queue) > 0 {
		s = c.queue[0]
		copy(c.queue, c.queue[1:])
		c.queue = c.queue[:len(c.queue)-1]
	} else if c.cursor != nil {
		mx, my := c.cursor()
		s = injectedSample{x: float64(mx), y: float64(my), present: true}
	}
	if !s.present || s.x < 0 || s.y < 0 || int(s.x) >= c.width || int(s.y) >= c.height || c.Camera == nil {
		return glimmer.PointerSample{}
	}
	hit, ok := c.Camera.Unproject(s.x, s.y, c.width, c.height, c.PlaneZ)
	if !ok {
		return glimmer.PointerSample{}
	}
	return glimmer.PointerSample{Position: hit.Add(mgl64.Vec3{0, 0, c.Lift}), Present: true}
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY) spread over frames samples, followed by a leave. Frames below
// 2 are raised to 2.
func (c *CursorPointer) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectLeave()
}

// Queued reports how many injected samples have not been consumed yet.
func (c *CursorPointer) Queued() int { return len(c.queue) }
