// Package ecs provides ECS adapters for sprig.
package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for pointer events
// (down, up, click, enter, leave) on nodes that carry an EntityID.
var InteractionEventType = events.NewEventType[sprig.InteractionEvent]()

// ButtonEventType is the Donburi event type for button press, release and
// click events.
var ButtonEventType = events.NewEventType[sprig.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Pointer events are published to InteractionEventType and button events to
// ButtonEventType; consume them with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sprig.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sprig.InteractionEvent) {
	if isButtonEvent(event.Type) {
		ButtonEventType.Publish(s.world, event)
		return
	}
	InteractionEventType.Publish(s.world, event)
}

func isButtonEvent(t sprig.EventType) bool {
	switch t {
	case sprig.EventButtonPress, sprig.EventButtonRelease, sprig.EventButtonClick:
		return true
	}
	return false
}
