package ecs

import (
	"testing"

	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []sprig.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(sprig.InteractionEvent{
		Type:     sprig.EventPointerDown,
		EntityID: 42,
		GlobalX:  100,
		GlobalY:  200,
		Button:   sprig.MouseButtonLeft,
	})
	store.EmitEvent(sprig.InteractionEvent{
		Type:      sprig.EventPointerEnter,
		EntityID:  7,
		PointerID: 3,
	})

	// Events are queued until processed.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != sprig.EventPointerDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.GlobalX != 100 || e0.GlobalY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.GlobalX, e0.GlobalY)
	}
	if e1 := received[1]; e1.Type != sprig.EventPointerEnter || e1.PointerID != 3 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_RoutesButtonEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var pointer, button []sprig.EventType
	InteractionEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		pointer = append(pointer, e.Type)
	})
	ButtonEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		button = append(button, e.Type)
	})

	store.EmitEvent(sprig.InteractionEvent{Type: sprig.EventClick, EntityID: 1})
	store.EmitEvent(sprig.InteractionEvent{Type: sprig.EventButtonPress, EntityID: 1})
	store.EmitEvent(sprig.InteractionEvent{Type: sprig.EventButtonClick, EntityID: 1})
	store.EmitEvent(sprig.InteractionEvent{Type: sprig.EventButtonRelease, EntityID: 1})
	events.ProcessAllEvents(world)

	if len(pointer) != 1 || pointer[0] != sprig.EventClick {
		t.Errorf("pointer events = %v", pointer)
	}
	want := []sprig.EventType{sprig.EventButtonPress, sprig.EventButtonClick, sprig.EventButtonRelease}
	if len(button) != len(want) {
		t.Fatalf("button events = %v, want %v", button, want)
	}
	for i := range want {
		if button[i] != want[i] {
			t.Errorf("button event %d = %v, want %v", i, button[i], want[i])
		}
	}
}

func TestDonburiStore_SceneButtonClick(t *testing.T) {
	world := donburi.NewWorld()
	scene := sprig.NewScene(sprig.SceneConfig{Headless: true})
	scene.SetEntityStore(NewDonburiStore(world))

	n := sprig.NewImage("ok", 100, 40, sprig.ColorWhite)
	n.EntityID = 9
	scene.Root().AddChild(n)
	scene.NewButton(n, sprig.DefaultButtonStyle())

	var got []sprig.EventType
	ButtonEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		if e.EntityID != 9 {
			t.Errorf("entity = %d, want 9", e.EntityID)
		}
		got = append(got, e.Type)
	})

	scene.InjectClick(50, 20)
	scene.Update()
	scene.Update()
	events.ProcessAllEvents(world)

	want := []sprig.EventType{sprig.EventButtonPress, sprig.EventButtonClick, sprig.EventButtonRelease}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e sprig.InteractionEvent) {
		count2++
	})

	store.EmitEvent(sprig.InteractionEvent{Type: sprig.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
