package sprig

import (
	"math"
	"testing"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}
	if !c.Contains(50, 50) || !c.Contains(75, 50) {
		t.Error("center and circumference should be inside")
	}
	if c.Contains(70, 70) {
		t.Error("diagonal point outside the radius should miss")
	}
}

func TestHitPolygonContains(t *testing.T) {
	cw := HitPolygon{Points: []Vec2{{0, 0}, {100, 0}, {100, 100}, {0, 100}}}
	ccw := HitPolygon{Points: []Vec2{{0, 100}, {100, 100}, {100, 0}, {0, 0}}}
	for name, p := range map[string]HitPolygon{"cw": cw, "ccw": ccw} {
		if !p.Contains(50, 50) || !p.Contains(0, 50) {
			t.Errorf("%s: inside and edge points should hit", name)
		}
		if p.Contains(-1, 50) {
			t.Errorf("%s: outside point should miss", name)
		}
	}
	if (HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}).Contains(0, 0) {
		t.Error("degenerate polygon should never hit")
	}
}

// --- nodeContainsLocal ---

func TestNodeContainsLocal(t *testing.T) {
	img := NewImage("img", 100, 50, ColorWhite)
	if !nodeContainsLocal(img, 50, 25) || !nodeContainsLocal(img, 0, 0) {
		t.Error("box should contain its interior and corner")
	}
	if nodeContainsLocal(img, 101, 25) {
		t.Error("box should not contain points past its width")
	}

	img.HitShape = HitCircle{CenterX: 50, CenterY: 25, Radius: 10}
	if nodeContainsLocal(img, 0, 0) {
		t.Error("HitShape should replace the box")
	}

	if nodeContainsLocal(NewContainer("c"), 0, 0) {
		t.Error("sizeless container should not be hit-testable")
	}
}

// --- Hit testing ---

func interactableBox(name string, w, h float64) *Node {
	n := NewImage(name, w, h, ColorWhite)
	n.Interactable = true
	return n
}

func refresh(s *Scene) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

func TestHitTestTopmostNode(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	b := interactableBox("b", 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	refresh(s)

	if hit := s.hitTest(50, 50); hit != b {
		t.Errorf("expected topmost node b, got %v", hit)
	}
}

func TestHitTestSkipsInvisibleAndNonInteractable(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	hidden := interactableBox("hidden", 100, 100)
	hidden.Visible = false
	inert := NewImage("inert", 100, 100, ColorWhite)
	s.Root().AddChild(a)
	s.Root().AddChild(hidden)
	s.Root().AddChild(inert)
	refresh(s)

	if hit := s.hitTest(50, 50); hit != a {
		t.Errorf("expected a, got %v", hit)
	}
}

func TestHitTestRespectsZIndex(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	a.SetZIndex(10)
	b := interactableBox("b", 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	refresh(s)

	if hit := s.hitTest(50, 50); hit != a {
		t.Errorf("expected a (higher ZIndex), got %v", hit)
	}
}

func TestHitTestTransformedAndRotated(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	a.SetPosition(200, 200)
	r := interactableBox("r", 100, 100)
	r.SetPivot(50, 50)
	r.SetPosition(50, 50)
	r.SetRotation(math.Pi / 4)
	s.Root().AddChild(a)
	s.Root().AddChild(r)
	refresh(s)

	if s.hitTest(250, 250) != a {
		t.Error("expected hit on translated node")
	}
	if s.hitTest(50, 50) != r {
		t.Error("center of rotated node should hit")
	}
	if s.hitTest(400, 400) != nil {
		t.Error("expected miss")
	}
}

func TestHitTestBubblesToHandler(t *testing.T) {
	s := newTestScene(true)
	btn := NewContainer("btn")
	btn.Interactable = true
	bg := interactableBox("bg", 100, 40)
	label := NewText("label", "OK", ColorWhite)
	label.Interactable = true
	label.HitShape = HitRect{Width: 40, Height: 10}
	btn.AddChild(bg)
	btn.AddChild(label)
	s.Root().AddChild(btn)
	btn.OnPointerDown = func(PointerContext) {}
	refresh(s)

	if hit := s.hitTest(5, 5); hit != btn {
		t.Errorf("hit on label should bubble to btn, got %v", hit)
	}
	if hit := s.hitTest(80, 30); hit != btn {
		t.Errorf("hit on background should bubble to btn, got %v", hit)
	}
}

func TestHitTestGroupBlocksSubtree(t *testing.T) {
	s := newTestScene(true)
	panel := NewContainer("panel")
	panel.Interactable = true
	panel.Group = NewGroup()
	child := interactableBox("child", 100, 100)
	panel.AddChild(child)
	s.Root().AddChild(panel)
	refresh(s)

	if s.hitTest(50, 50) != child {
		t.Fatal("interactable group should pass hits through")
	}
	panel.Group.Interactable = false
	if s.hitTest(50, 50) != nil {
		t.Error("non-interactable group should block its subtree")
	}
}

func TestCollectInteractableSkipsSubtrees(t *testing.T) {
	root := NewContainer("root")
	root.Interactable = true
	hidden := NewContainer("hidden")
	hidden.Interactable = true
	hidden.Visible = false
	inert := NewContainer("inert")
	hidden.AddChild(interactableBox("h", 1, 1))
	inert.AddChild(interactableBox("i", 1, 1))
	root.AddChild(hidden)
	root.AddChild(inert)

	if got := collectInteractable(root, nil); len(got) != 0 {
		t.Errorf("collected %d nodes, want 0", len(got))
	}
}

// --- Dispatch ---

func TestCallbackOrderSceneThenNode(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 100, 100)
	s.Root().AddChild(box)

	var order []string
	s.OnPointerDown(func(PointerContext) { order = append(order, "scene") })
	box.OnPointerDown = func(PointerContext) { order = append(order, "node") }

	s.InjectPress(50, 50)
	s.Update()
	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
}

func TestPointerUpBeforeClick(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 100, 100)
	s.Root().AddChild(box)

	var order []string
	s.OnPointerUp(func(PointerContext) { order = append(order, "up") })
	s.OnClick(func(ctx PointerContext) {
		order = append(order, "click")
		if ctx.Node != box {
			t.Error("click should target box")
		}
	})

	s.InjectClick(50, 50)
	s.Update()
	s.Update()
	if len(order) != 2 || order[0] != "up" || order[1] != "click" {
		t.Errorf("order = %v, want [up click]", order)
	}
}

func TestClickNotFiredOnDragOrDifferentNode(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	b := interactableBox("b", 100, 100)
	b.SetPosition(200, 0)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	var clicks int
	s.OnClick(func(PointerContext) { clicks++ })

	s.InjectDrag(10, 10, 60, 60, 3)
	s.InjectPress(50, 50)
	s.InjectRelease(250, 50)
	for i := 0; i < 5; i++ {
		s.Update()
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestDraggingFlagOnPointerUp(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 400, 400)
	s.Root().AddChild(box)

	var dragging []bool
	s.OnPointerUp(func(ctx PointerContext) { dragging = append(dragging, ctx.Dragging) })

	s.InjectClick(50, 50)
	s.InjectDrag(50, 50, 150, 50, 3)
	for i := 0; i < 5; i++ {
		s.Update()
	}
	if len(dragging) != 2 || dragging[0] || !dragging[1] {
		t.Errorf("dragging = %v, want [false true]", dragging)
	}
}

func TestSetDragDeadZone(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 400, 400)
	s.Root().AddChild(box)
	s.SetDragDeadZone(100)

	var clicks int
	s.OnClick(func(PointerContext) { clicks++ })
	s.InjectDrag(50, 50, 100, 50, 3)
	for i := 0; i < 3; i++ {
		s.Update()
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 inside a wide dead zone", clicks)
	}
}

func TestContextCoordinates(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 100, 100)
	box.SetPosition(100, 50)
	box.EntityID = 7
	box.UserData = "payload"
	s.Root().AddChild(box)

	var got PointerContext
	box.OnPointerDown = func(ctx PointerContext) { got = ctx }
	s.InjectPress(130, 60)
	s.Update()

	if got.GlobalX != 130 || got.GlobalY != 60 || got.LocalX != 30 || got.LocalY != 10 {
		t.Errorf("ctx = global (%v,%v) local (%v,%v)", got.GlobalX, got.GlobalY, got.LocalX, got.LocalY)
	}
	if got.EntityID != 7 || got.UserData != "payload" || got.Node != box {
		t.Errorf("ctx metadata = %+v", got)
	}
}

func TestHoverEnterLeave(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	s.Root().AddChild(a)

	var events []string
	a.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	a.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.InjectHover(50, 50)
	s.InjectHover(60, 60)
	s.InjectHover(300, 300)
	for i := 0; i < 3; i++ {
		s.Update()
	}
	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestPointerCapture(t *testing.T) {
	s := newTestScene(true)
	a := interactableBox("a", 100, 100)
	s.Root().AddChild(a)

	var ups []*Node
	s.OnPointerUp(func(ctx PointerContext) { ups = append(ups, ctx.Node) })

	s.CapturePointer(0, a)
	s.InjectPress(50, 50)
	s.InjectRelease(500, 500)
	s.Update()
	s.Update()
	if len(ups) != 1 || ups[0] != a {
		t.Errorf("captured release delivered to %v, want a", ups)
	}

	// Capture is released automatically on pointer up.
	s.InjectPress(500, 500)
	s.InjectRelease(500, 500)
	s.Update()
	s.Update()
	if len(ups) != 2 || ups[1] != nil {
		t.Errorf("second release delivered to %v, want nil", ups[1:])
	}

	s.CapturePointer(0, a)
	s.ReleasePointer(0)
	s.CapturePointer(42, a)
	if s.captured[0] != nil {
		t.Error("ReleasePointer should clear capture")
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := newTestScene(true)
	box := interactableBox("box", 100, 100)
	s.Root().AddChild(box)

	var downs, enters int
	h := s.OnPointerDown(func(PointerContext) { downs++ })
	e := s.OnPointerEnter(func(PointerContext) { enters++ })
	s.OnPointerLeave(func(PointerContext) {})
	h.Remove()
	h.Remove()
	e.Remove()

	s.InjectPress(50, 50)
	s.Update()
	if downs != 0 || enters != 0 {
		t.Errorf("removed handlers fired: downs=%d enters=%d", downs, enters)
	}
	CallbackHandle{}.Remove()
}

func TestFrameReleasesRecorded(t *testing.T) {
	s := newTestScene(true)
	s.InjectPress(10, 10)
	s.Update()
	if s.LastReleases() != (FrameReleases{}) {
		t.Errorf("press frame releases = %+v", s.LastReleases())
	}

	s.InjectRelease(10, 10)
	s.Update()
	if !s.LastReleases().Mouse {
		t.Error("mouse release not recorded")
	}

	s.InjectTouch(1, 10, 10)
	s.InjectTouch(2, 20, 20)
	s.InjectTouchEnd(1, 10, 10)
	s.InjectTouchEnd(2, 20, 20)
	var touches int
	for i := 0; i < 4; i++ {
		s.Update()
		touches += s.LastReleases().Touches
		if s.LastReleases().Mouse {
			t.Error("touch end recorded as mouse release")
		}
	}
	if touches != 2 {
		t.Errorf("touch ends = %d, want 2", touches)
	}
	if s.Coordinator().Broadcasts() != 3 {
		t.Errorf("broadcasts = %d, want 3", s.Coordinator().Broadcasts())
	}
}

func TestRightButtonReleaseNotRecorded(t *testing.T) {
	s := newTestScene(true)
	s.processPointer(0, 10, 10, 10, 10, true, MouseButtonRight, 0)
	s.frameReleases = FrameReleases{}
	s.processPointer(0, 10, 10, 10, 10, false, MouseButtonRight, 0)
	if s.frameReleases.Mouse {
		t.Error("right button release should not count as a mouse release")
	}
}

// --- ECS bridge ---

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) { r.events = append(r.events, e) }

func TestECSBridge(t *testing.T) {
	s := newTestScene(true)
	store := &recordingStore{}
	s.SetEntityStore(store)

	box := interactableBox("box", 100, 100)
	box.EntityID = 42
	plain := interactableBox("plain", 100, 100)
	plain.SetPosition(200, 0)
	s.Root().AddChild(box)
	s.Root().AddChild(plain)

	s.InjectClick(50, 50)
	s.InjectClick(250, 50)
	for i := 0; i < 4; i++ {
		s.Update()
	}

	want := []EventType{EventPointerEnter, EventPointerDown, EventPointerUp, EventClick, EventPointerLeave}
	if len(store.events) != len(want) {
		t.Fatalf("events = %+v, want %d", store.events, len(want))
	}
	for i, w := range want {
		if store.events[i].Type != w || store.events[i].EntityID != 42 {
			t.Errorf("event %d = %+v, want type %d on entity 42", i, store.events[i], w)
		}
	}
}

func TestECSBridgeButtonEvents(t *testing.T) {
	f := newButtonFixture(t)
	store := &recordingStore{}
	f.scene.SetEntityStore(store)
	f.node.EntityID = 5

	f.btn.PointerDown(down(150, 120))
	f.btn.PointerUp(down(150, 120))

	want := []EventType{EventButtonPress, EventButtonClick, EventButtonRelease}
	if len(store.events) != len(want) {
		t.Fatalf("events = %+v", store.events)
	}
	for i, w := range want {
		if store.events[i].Type != w || store.events[i].EntityID != 5 {
			t.Errorf("event %d = %+v, want %d", i, store.events[i], w)
		}
	}
}
