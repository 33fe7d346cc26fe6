// Package ecs bridges sprig's interaction events into an ECS.
//
// [NewDonburiStore] publishes pointer events on nodes with an EntityID to
// [InteractionEventType] and button press/release/click events to
// [ButtonEventType] in a [Donburi] world.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	ecs.ButtonEventType.Subscribe(world, onButton)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
