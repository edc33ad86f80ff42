// Package ecs publishes glimmer frames into a Donburi world.
package ecs

import (
	"github.com/phanxgames/glimmer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameEventType is the Donburi event type for glimmer frames.
// Subscribe to this in your ECS systems to receive one event per tick.
var FrameEventType = events.NewEventType[glimmer.FrameState]()

// Frame is the component holding the most recent frame on the sink's
// singleton entity.
var Frame = donburi.NewComponentType[glimmer.FrameState]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a glimmer.Sink backed by a Donburi world. Each
// rendered frame is published to FrameEventType and stored on a singleton
// entity carrying the Frame component.
func NewDonburiSink(world donburi.World) glimmer.Sink {
	return &donburiSink{world: world, entity: world.Create(Frame)}
}

func (s *donburiSink) Render(frame glimmer.FrameState) {
	if s.world.Valid(s.entity) {
		Frame.SetValue(s.world.Entry(s.entity), frame)
	}
	FrameEventType.Publish(s.world, frame)
}

// LatestFrame returns the frame stored by the sink, if any.
func LatestFrame(world donburi.World) (glimmer.FrameState, bool) {
	entry, ok := Frame.First(world)
	if !ok {
		return glimmer.FrameState{}, false
	}
	return *Frame.Get(entry), true
}
