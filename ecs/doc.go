// Package ecs provides an ECS adapter for glimmer frames.
//
// [NewDonburiSink] is a glimmer.Sink that bridges every frame into a
// [Donburi] world: as a typed event on [FrameEventType] and as the
// [Frame] component of a singleton entity.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	driver := glimmer.NewDriver(params, glimmer.DriverConfig{Sink: sink, Tunnel: true})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
