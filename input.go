package sprig

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates, in either
// winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon. Every edge cross
// product must share one sign.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a, b := p.Points[i], p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type buttonHandler struct {
	id uint32
	fn func()
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []pointerHandler
	buttonClick  []buttonHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removePointerHandler(h.reg.click, h.id)
	case EventButtonClick:
		h.reg.buttonClick = removeButtonHandler(h.reg.buttonClick, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeButtonHandler(s []buttonHandler, id uint32) []buttonHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = buttonHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

func (s *Scene) addPointerHandler(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.click, EventClick, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width x Height box.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// rebuildSortedChildren refreshes n's ZIndex-ordered child list.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips subtrees that are invisible,
// not interactable, or under a group that blocks interaction.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Group != nil && !n.Group.Interactable {
		return buf
	}

	if n.HitShape != nil || n.Type != NodeTypeContainer || n.Width > 0 || n.Height > 0 {
		buf = append(buf, n)
	}

	if len(n.children) == 0 {
		return buf
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY) and
// returns the nearest node at or above it that handles pointer events.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if !nodeContainsLocal(n, lx, ly) {
			continue
		}
		for p := n; p != nil; p = p.Parent {
			if p.handlesPointer() {
				return p
			}
		}
		return n
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// screenToWorld converts screen coordinates to world coordinates using the
// coordinator's camera.
func (s *Scene) screenToWorld(sx, sy float64) (float64, float64) {
	if cam := s.coord.Camera(); cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// processInput handles one frame of pointer input. Injected events take
// priority over real input; headless scenes read no real input at all.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.headless {
		return
	}
	mods := readModifiers()
	s.processMousePointer(mods)
	s.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	wx, wy := s.screenToWorld(sx, sy)

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, wx, wy, sx, sy, pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		sx, sy := float64(tx), float64(ty)
		wx, wy := s.screenToWorld(sx, sy)
		s.processPointer(slot, wx, wy, sx, sy, true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				sx, sy := ps.lastX, ps.lastY
				if cam := s.coord.Camera(); cam != nil {
					sx, sy = cam.WorldToScreen(sx, sy)
				}
				s.processPointer(i, ps.lastX, ps.lastY, sx, sy, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer and
// records releases for the coordinator's end-of-frame poll.
func (s *Scene) processPointer(pointerID int, wx, wy, sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	ev := pointerEvent{pointerID: pointerID, wx: wx, wy: wy, sx: sx, sy: sy, button: button, mods: mods}

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.dispatch(EventPointerLeave, ps.hoverNode, ev)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, ev)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.dispatch(EventPointerDown, target, ev)

	case !pressed && ps.down:
		ev.button = ps.button
		ev.dragging = ps.dragging
		s.dispatch(EventPointerUp, target, ev)
		if !ps.dragging && ps.hitNode != nil && ps.hitNode == target {
			s.dispatch(EventClick, target, ev)
		}

		if pointerID == 0 {
			if ps.button == MouseButtonLeft {
				s.frameReleases.Mouse = true
			}
		} else {
			s.frameReleases.Touches++
		}

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if !ps.dragging && (wx != ps.lastX || wy != ps.lastY) {
			dx := wx - ps.startX
			dy := wy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
				ps.dragging = true
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// --- Event dispatch ---

type pointerEvent struct {
	pointerID int
	wx, wy    float64
	sx, sy    float64
	button    MouseButton
	mods      KeyModifiers
	dragging  bool
}

// dispatch delivers one event to the scene-level handlers, then the node's
// own callback, then the ECS bridge.
func (s *Scene) dispatch(event EventType, node *Node, ev pointerEvent) {
	ctx := PointerContext{
		Node:      node,
		GlobalX:   ev.wx,
		GlobalY:   ev.wy,
		ScreenX:   ev.sx,
		ScreenY:   ev.sy,
		Button:    ev.button,
		PointerID: ev.pointerID,
		Modifiers: ev.mods,
		Dragging:  ev.dragging,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(ev.wx, ev.wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}

	var handlers []pointerHandler
	var nodeFn func(PointerContext)
	switch event {
	case EventPointerDown:
		handlers = s.handlers.pointerDown
		if node != nil {
			nodeFn = node.OnPointerDown
		}
	case EventPointerUp:
		handlers = s.handlers.pointerUp
		if node != nil {
			nodeFn = node.OnPointerUp
		}
	case EventPointerEnter:
		handlers = s.handlers.pointerEnter
		if node != nil {
			nodeFn = node.OnPointerEnter
		}
	case EventPointerLeave:
		handlers = s.handlers.pointerLeave
		if node != nil {
			nodeFn = node.OnPointerLeave
		}
	case EventClick:
		handlers = s.handlers.click
		if node != nil {
			nodeFn = node.OnClick
		}
	}

	for _, h := range handlers {
		h.fn(ctx)
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	s.emitInteractionEvent(event, node, ctx)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(event EventType, node *Node, ctx PointerContext) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      event,
		EntityID:  node.EntityID,
		GlobalX:   ctx.GlobalX,
		GlobalY:   ctx.GlobalY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
		PointerID: ctx.PointerID,
	})
}

// emitButtonEvent forwards a button's press, release or click to the ECS
// bridge.
func (s *Scene) emitButtonEvent(event EventType, b *Button) {
	n := b.Node()
	if s.store == nil || n == nil || n.EntityID == 0 {
		return
	}
	wx, wy := n.LocalToWorld(0, 0)
	s.store.EmitEvent(InteractionEvent{
		Type:     event,
		EntityID: n.EntityID,
		GlobalX:  wx,
		GlobalY:  wy,
		Button:   MouseButtonLeft,
	})
}
