package sprig

import "github.com/tanema/gween/ease"

// HiddenOffset is the X position a hidden button is parked at so that no
// pointer can reach it.
const HiddenOffset = -999999999.0

type extraScale struct {
	node *Node
	base Vec2
}

// Button is the press/hover state machine for a node subtree. It animates
// press feedback through the widget's Animator and coordinates with every
// other button through a shared Coordinator, so at most one button is down
// at a time.
type Button struct {
	Widget

	Style ButtonStyle

	// OnPress runs when a press starts, with the pointer ID and the world
	// position of the press.
	OnPress func(pointerID int, pos Vec2)
	// OnRelease runs once when a press cycle ends, whether or not it
	// produced a click.
	OnRelease func()

	coord       *Coordinator
	parentGroup *Group
	handlers    handlerRegistry

	interactable bool
	enabled      bool
	down         bool
	pressed      bool
	clicked      bool
	hovered      bool
	inside       bool
	pressOrigin  Vec2 // normalized screen position
	hiddenPos    Vec2

	sub      Subscription
	attached bool

	extraScales []extraScale
	extraDarken []*Node
	extraColors []*Node
	downOverlay *Node
	hoverLayer  *Node

	emit func(EventType, *Button)
}

// NewButton turns n into a button. The node's pointer callbacks are taken
// over, the nearest enclosing group is resolved once, and the button is
// attached to coord.
func NewButton(n *Node, coord *Coordinator, anim Animator, style ButtonStyle) *Button {
	b := &Button{
		Style:        style,
		coord:        coord,
		interactable: true,
		enabled:      true,
	}
	b.capture(n, anim)
	b.In, b.Out = style.In, style.Out
	b.InEase, b.OutEase = style.eases()
	b.parentGroup = nearestGroup(n)

	n.Interactable = true
	n.OnPointerDown = b.PointerDown
	n.OnPointerUp = b.PointerUp
	n.OnClick = b.PointerClick
	n.OnPointerEnter = b.PointerEnter
	n.OnPointerLeave = b.PointerLeave
	prev := n.OnDispose
	n.OnDispose = func() {
		if prev != nil {
			prev()
		}
		b.Detach()
	}

	b.Attach()
	return b
}

// Name returns the node name, for logs.
func (b *Button) Name() string {
	if b == nil || b.node == nil {
		return ""
	}
	return b.node.Name
}

// --- Lifecycle ---

// Attach subscribes the button to release broadcasts and resets its
// visuals. No-op when already attached.
func (b *Button) Attach() {
	if b.attached {
		return
	}
	b.attached = true
	b.sub = b.coord.subscribe(b.globalRelease, b.dropped)
	b.setRestImmediate()
}

// dropped runs when the coordinator discards the subscription on unload.
func (b *Button) dropped() {
	b.attached = false
	b.down = false
	b.pressed = false
	b.hovered = false
	b.inside = false
}

// Detach stops animations, gives up holding and unsubscribes. Safe to call
// more than once.
func (b *Button) Detach() {
	if !b.attached {
		return
	}
	b.attached = false
	b.KillTweens()
	b.down = false
	b.pressed = false
	b.hovered = false
	b.releaseHold()
	b.sub.Remove()
}

// Attached reports whether the button receives release broadcasts.
func (b *Button) Attached() bool { return b.attached }

// --- Extras ---

// AddExtraScale makes n scale along with the button.
func (b *Button) AddExtraScale(n *Node) {
	b.extraScales = append(b.extraScales, extraScale{node: n, base: Vec2{n.ScaleX, n.ScaleY}})
}

// AddExtraDarken makes n's tint follow the button's gray level.
func (b *Button) AddExtraDarken(n *Node) {
	b.extraDarken = append(b.extraDarken, n)
	n.Color = Gray(b.grayLevel(), n.Color.A)
}

// AddExtraColor makes n switch between ExtraColorNormal and
// ExtraColorPressed.
func (b *Button) AddExtraColor(n *Node) {
	b.extraColors = append(b.extraColors, n)
	n.Color = b.Style.ExtraColorNormal
}

// SetOverlays sets the nodes faded in while down and while hovered. Either
// may be nil.
func (b *Button) SetOverlays(down, hover *Node) {
	b.downOverlay, b.hoverLayer = down, hover
	if down != nil {
		down.Color.A = 0
	}
	if hover != nil {
		hover.Color.A = 0
	}
}

// --- Queries ---

// IsInteractable reports whether the button accepts input. A fully
// transparent node, or a resolved enclosing group that is not interactable
// or not fully opaque, blocks it.
func (b *Button) IsInteractable() bool {
	if g := b.parentGroup; g != nil && (!g.Interactable || g.Alpha < 1) {
		return false
	}
	return b.interactable && b.node.Alpha > 0
}

// IsDown reports whether a pointer is held on the button.
func (b *Button) IsDown() bool { return b.down }

// IsHovered reports whether the desktop pointer hovers the button.
func (b *Button) IsHovered() bool { return b.hovered }

// Enabled reports the visual enabled flag.
func (b *Button) Enabled() bool { return b.enabled }

// Group returns the enclosing group resolved at construction, or nil.
func (b *Button) Group() *Group { return b.parentGroup }

// State returns the current interaction state.
func (b *Button) State() ButtonState {
	switch {
	case !b.IsInteractable():
		return StateDisabled
	case b.down:
		return StateDown
	case b.hovered:
		return StateHovered
	}
	return StateResting
}

// OnClick registers fn to run on every click and returns a handle that
// removes it.
func (b *Button) OnClick(fn func()) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.buttonClick = append(b.handlers.buttonClick, buttonHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventButtonClick}
}

// --- Interactability and visibility ---

// SetInteractable enables or disables input. Disabling resolves any press
// immediately and releases holding. Setting the current value is a no-op.
func (b *Button) SetInteractable(v bool) {
	if b.interactable == v {
		return
	}
	b.interactable = v
	b.node.Interactable = v
	if !v {
		b.ClearImmediate()
	}
}

// SetEnabled shows the button as enabled or greyed out. It stays clickable
// either way; use SetInteractable to block input.
func (b *Button) SetEnabled(v bool) {
	if b.enabled == v {
		return
	}
	b.enabled = v
	if b.Style.AllowGray || !v {
		b.SetAllGray(b.grayLevel())
	}
	for _, n := range b.extraDarken {
		b.cancelColor(n)
		n.Color = Gray(b.grayLevel(), n.Color.A)
	}
}

// Hide parks the button off screen and stops input without animating.
// No-op when already hidden.
func (b *Button) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	b.ClearImmediate()
	b.interactable = false
	b.node.Interactable = false
	if b.rect != nil {
		b.hiddenPos = Vec2{b.rect.X, b.rect.Y}
		b.rect.SetPosition(HiddenOffset, b.rect.Y)
	}
}

// Show restores the position saved by Hide and re-enables input. No-op when
// already visible.
func (b *Button) Show() {
	if b.visible {
		return
	}
	b.visible = true
	if b.rect != nil {
		b.rect.SetPosition(b.hiddenPos.X, b.hiddenPos.Y)
	}
	b.interactable = true
	b.node.Interactable = true
}

// Clear animates the button back to resting and ends any press without a
// click.
func (b *Button) Clear() {
	b.hovered = false
	b.down = false
	b.releaseHold()
	b.finishPress()
	b.tweenRest(b.Out)
}

// ClearImmediate cancels every animation and snaps the button to resting.
func (b *Button) ClearImmediate() {
	b.KillTweens()
	b.hovered = false
	b.down = false
	b.releaseHold()
	b.finishPress()
	b.setRestImmediate()
}

// --- Input ---

// PointerDown starts a press. Only the left button presses.
func (b *Button) PointerDown(ctx PointerContext) {
	if ctx.Button != MouseButtonLeft || b.down || !b.IsInteractable() {
		return
	}
	b.pressOrigin = b.coord.normalize(ctx.GlobalX, ctx.GlobalY)
	b.clicked = false
	b.pressed = true
	b.coord.Acquire(b)
	b.tweenDown()
	logger.Debug("button press", "button", b.Name(), "pointer", ctx.PointerID)
	if b.OnPress != nil {
		b.OnPress(ctx.PointerID, Vec2{ctx.GlobalX, ctx.GlobalY})
	}
	if b.pressed {
		b.fire(EventButtonPress)
	}
}

// PointerUp ends a press on the button. The release counts as a click when
// the pointer moved less than the style's threshold.
func (b *Button) PointerUp(ctx PointerContext) {
	if ctx.Button != MouseButtonLeft {
		return
	}
	wasPressed := b.pressed
	b.tweenUp()
	if !wasPressed {
		return
	}
	if b.IsInteractable() {
		p := b.coord.normalize(ctx.GlobalX, ctx.GlobalY)
		dx, dy := p.X-b.pressOrigin.X, p.Y-b.pressOrigin.Y
		if d2 := dx*dx + dy*dy; d2 < b.Style.ClickThreshold {
			b.clicked = true
			b.press()
		} else {
			logger.Debug("click rejected", "button", b.Name(), "d2", d2)
		}
	}
	b.finishPress()
}

// PointerClick handles a click delivered separately from the release. It is
// dropped when the release already clicked or ended the press.
func (b *Button) PointerClick(ctx PointerContext) {
	if ctx.Button != MouseButtonLeft {
		return
	}
	if b.clicked || !b.pressed {
		return
	}
	b.clicked = true
	b.tweenUp()
	b.press()
	b.finishPress()
}

// PointerEnter starts the hover preview for the desktop pointer.
func (b *Button) PointerEnter(ctx PointerContext) {
	if ctx.PointerID != 0 {
		return
	}
	b.inside = true
	if b.down || b.coord.Holding() || !b.hoverAllowed() {
		return
	}
	b.hovered = true
	if b.Style.AllowScale {
		h := b.Style.HoverScale
		b.TweenRectScaleXY(Vec2{h, h}, b.In, b.InEase, true)
		for _, e := range b.extraScales {
			b.start(TweenScale(e.node, e.base.X*h, e.base.Y*h, b.In, b.InEase))
		}
	}
	b.fadeOverlay(b.hoverLayer, 1, b.In)
}

// PointerLeave ends the hover preview.
func (b *Button) PointerLeave(ctx PointerContext) {
	if ctx.PointerID != 0 {
		return
	}
	b.inside = false
	if b.down || b.coord.Holding() || !b.hovered {
		return
	}
	b.hovered = false
	b.tweenRest(b.Out)
}

// globalRelease resolves the button after a release anywhere on screen. No
// click is evaluated.
func (b *Button) globalRelease() {
	if b.down {
		b.tweenUp()
	}
	b.finishPress()
	if b.hovered && !b.inside && !b.down {
		b.hovered = false
		b.tweenRest(b.Out)
	}
}

// press reports a click to every handler unless the button is not
// interactable or still fading.
func (b *Button) press() {
	if !b.IsInteractable() {
		return
	}
	surface := b.node
	if b.image != nil {
		surface = b.image
	}
	if a := surface.InheritedAlpha(); a < MinPressAlpha {
		logger.Debug("click suppressed", "button", b.Name(), "alpha", a)
		return
	}
	logger.Debug("button click", "button", b.Name())
	hs := make([]buttonHandler, len(b.handlers.buttonClick))
	copy(hs, b.handlers.buttonClick)
	for _, h := range hs {
		h.fn()
	}
	b.fire(EventButtonClick)
}

// finishPress ends the press cycle and runs OnRelease once.
func (b *Button) finishPress() {
	if !b.pressed {
		return
	}
	b.pressed = false
	logger.Debug("button release", "button", b.Name())
	if b.OnRelease != nil {
		b.OnRelease()
	}
	b.fire(EventButtonRelease)
}

func (b *Button) fire(t EventType) {
	if b.emit != nil {
		b.emit(t, b)
	}
}

// --- Visual transitions ---

// releaseHold gives up holding if this button owns it.
func (b *Button) releaseHold() {
	if b.coord.Owner() == b {
		b.coord.Release(b)
	}
}

func (b *Button) hoverAllowed() bool {
	return b.coord.Desktop() && b.Style.AllowHover && b.IsInteractable()
}

func (b *Button) grayLevel() float64 {
	if !b.enabled {
		return b.Style.GrayDisabled
	}
	return b.Style.DefaultGray
}

// pressScale returns the per-axis press scale. The width is compensated for
// the aspect ratio so both edges move by the same amount.
func (b *Button) pressScale() Vec2 {
	s := b.Style.Scale
	ratio := b.Style.Ratio
	if ratio <= 0 && b.rect != nil {
		ratio = b.rect.AspectRatio()
	}
	if ratio <= 0 {
		ratio = 1
	}
	return Vec2{1 - (1-s)/ratio, s}
}

func (b *Button) tweenDown() {
	b.down = true
	b.hovered = false
	if b.Style.AllowScale {
		ps := b.pressScale()
		b.TweenRectScaleXY(ps, b.In, b.InEase, true)
		for _, e := range b.extraScales {
			b.start(TweenScale(e.node, e.base.X*ps.X, e.base.Y*ps.Y, b.In, b.InEase))
		}
	}
	if b.Style.AllowGray && b.enabled {
		v := b.Style.Gray * b.Style.DefaultGray
		b.TweenAllGray(v, b.In)
		for _, n := range b.extraDarken {
			b.start(TweenColorRGB(n, Gray(v, 1), b.In, ease.Linear))
		}
	}
	for _, n := range b.extraColors {
		b.start(TweenColor(n, b.Style.ExtraColorPressed, b.In, ease.Linear))
	}
	b.fadeOverlay(b.downOverlay, 1, b.In)
	b.fadeOverlay(b.hoverLayer, 0, b.In)
}

// tweenUp leaves the down state and releases holding. No-op when not down.
func (b *Button) tweenUp() {
	if !b.down {
		return
	}
	b.down = false
	b.coord.Release(b)
	b.hovered = b.inside && b.hoverAllowed()
	b.tweenRest(b.Out)
}

// tweenRest animates toward the hover target when hovered, else the
// baseline.
func (b *Button) tweenRest(d float32) {
	target := 1.0
	if b.hovered {
		target = b.Style.HoverScale
	}
	if b.Style.AllowScale {
		b.TweenRectScaleXY(Vec2{target, target}, d, b.OutEase, true)
		for _, e := range b.extraScales {
			b.start(TweenScale(e.node, e.base.X*target, e.base.Y*target, d, b.OutEase))
		}
	}
	if b.Style.AllowGray || !b.enabled {
		b.TweenAllGray(b.grayLevel(), d)
		for _, n := range b.extraDarken {
			b.start(TweenColorRGB(n, Gray(b.grayLevel(), 1), d, ease.Linear))
		}
	}
	for _, n := range b.extraColors {
		b.start(TweenColor(n, b.Style.ExtraColorNormal, d, ease.Linear))
	}
	b.fadeOverlay(b.downOverlay, 0, d)
	hover := 0.0
	if b.hovered {
		hover = 1
	}
	b.fadeOverlay(b.hoverLayer, hover, d)
}

// setRestImmediate snaps every visual to resting without animating.
func (b *Button) setRestImmediate() {
	b.SetRectScaleXY(Vec2{1, 1}, true)
	for _, e := range b.extraScales {
		b.cancel(e.node, PropScale)
		e.node.SetScale(e.base.X, e.base.Y)
	}
	if b.Style.AllowGray || !b.enabled {
		b.SetAllGray(b.grayLevel())
	}
	for _, n := range b.extraDarken {
		b.cancelColor(n)
		n.Color = Gray(b.grayLevel(), n.Color.A)
	}
	for _, n := range b.extraColors {
		b.cancelColor(n)
		n.Color = b.Style.ExtraColorNormal
	}
	for _, o := range [...]*Node{b.downOverlay, b.hoverLayer} {
		if o != nil {
			b.cancel(o, PropColorAlpha)
			o.Color.A = 0
		}
	}
}

func (b *Button) fadeOverlay(n *Node, alpha float64, d float32) {
	if n == nil {
		return
	}
	b.start(TweenColorAlpha(n, alpha, d, ease.Linear))
}
