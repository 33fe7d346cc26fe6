package sprig

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used and converted to world coordinates via the
// primary camera, identical to real input.
type syntheticPointerEvent struct {
	pointerID        int
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectPress queues a mouse press at the given screen coordinates (left
// button). The event is consumed on the next frame's input pass.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.InjectPress(x, y)
}

// InjectHover queues a mouse move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectTouch queues a touch down or move for touch slot 1-9.
func (s *Scene) InjectTouch(slot int, x, y float64) {
	if slot < 1 || slot >= maxPointers {
		panic("sprig: touch slot out of range")
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		pointerID: slot,
		screenX:   x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectTouchEnd queues the end of a touch in slot 1-9.
func (s *Scene) InjectTouchEnd(slot int, x, y float64) {
	if slot < 1 || slot >= maxPointers {
		panic("sprig: touch slot out of range")
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		pointerID: slot,
		screenX:   x, screenY: y,
		button: MouseButtonLeft,
	})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue, converts
// screen to world via the primary camera, and feeds it through
// processPointer. Returns true if an event was consumed, in which case real
// input is skipped this frame.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	wx, wy := s.screenToWorld(evt.screenX, evt.screenY)
	s.processPointer(evt.pointerID, wx, wy, evt.screenX, evt.screenY, evt.pressed, evt.button, 0)
	return true
}
