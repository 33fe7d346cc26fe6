package sprig

import "github.com/tanema/gween/ease"

// Default transition timings for widgets.
const (
	DefaultIn  float32 = 0.25
	DefaultOut float32 = 0.15
)

// Default transition curves for widgets.
var (
	DefaultInEase  ease.TweenFunc = ease.OutQuad
	DefaultOutEase ease.TweenFunc = ease.InQuad
)

type tweenKey struct {
	node *Node
	prop Property
}

// Widget caches the visual handles of a node subtree and the baseline values
// every reset returns to. Handles are discovered once by CaptureWidget; a
// missing handle turns the operations that need it into no-ops.
type Widget struct {
	In      float32
	Out     float32
	InEase  ease.TweenFunc
	OutEase ease.TweenFunc

	node  *Node
	rect  *Node // nil when node is Static
	image *Node
	label *Node
	group *Group

	images      []*Node
	imageColors []Color
	labels      []*Node
	labelColors []Color
	graphics    []*Node
	graphicBase []float64 // graphic alphas

	imageColor Color
	baseScale  Vec2
	basePos    Vec2
	baseAlpha  float64

	visible bool

	anim    Animator
	handles map[tweenKey]*TweenGroup
}

// CaptureWidget discovers n's visual handles and snapshots their baselines.
// Disposing n stops the widget's animations.
func CaptureWidget(n *Node, anim Animator) *Widget {
	w := &Widget{}
	w.capture(n, anim)
	prev := n.OnDispose
	n.OnDispose = func() {
		if prev != nil {
			prev()
		}
		w.KillTweens()
	}
	return w
}

func (w *Widget) capture(n *Node, anim Animator) {
	w.In, w.Out = DefaultIn, DefaultOut
	w.InEase, w.OutEase = DefaultInEase, DefaultOutEase
	w.node = n
	w.anim = anim
	w.handles = make(map[tweenKey]*TweenGroup)
	w.visible = true

	w.rect = nil
	if !n.Static {
		w.rect = n
	}
	w.group = n.Group

	w.image, w.label = nil, nil
	if n.Type == NodeTypeImage {
		w.image = n
	}
	if n.Type == NodeTypeText {
		w.label = n
	}

	w.images, w.labels, w.graphics = w.images[:0], w.labels[:0], w.graphics[:0]
	walkSubtree(n, func(c *Node) {
		switch c.Type {
		case NodeTypeImage:
			if w.image == nil {
				w.image = c
			}
			w.images = append(w.images, c)
		case NodeTypeText:
			if w.label == nil {
				w.label = c
			}
			w.labels = append(w.labels, c)
		case NodeTypeGraphic:
			w.graphics = append(w.graphics, c)
		}
	})

	w.ResetColors()

	w.baseScale = Vec2{n.ScaleX, n.ScaleY}
	w.basePos = Vec2{n.X, n.Y}
	switch {
	case w.group != nil:
		w.baseAlpha = w.group.Alpha
	case w.image != nil:
		w.baseAlpha = w.image.Color.A
	case w.label != nil:
		w.baseAlpha = w.label.Color.A
	default:
		w.baseAlpha = 1
	}
}

// walkSubtree visits n and every descendant depth-first, parents first.
func walkSubtree(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		walkSubtree(c, fn)
	}
}

// ResetColors re-snapshots the baseline color of every image and label.
func (w *Widget) ResetColors() {
	w.imageColors = w.imageColors[:0]
	for _, img := range w.images {
		w.imageColors = append(w.imageColors, img.Color)
	}
	w.labelColors = w.labelColors[:0]
	for _, l := range w.labels {
		w.labelColors = append(w.labelColors, l.Color)
	}
	w.graphicBase = w.graphicBase[:0]
	for _, g := range w.graphics {
		w.graphicBase = append(w.graphicBase, g.Color.A)
	}
	if w.image != nil {
		w.imageColor = w.image.Color
	}
}

// ResetColor re-snapshots the baseline of one image or label from its
// current color.
func (w *Widget) ResetColor(n *Node) {
	w.SetBaseColor(n, n.Color)
}

// SetBaseColor replaces the baseline color of one image or label.
func (w *Widget) SetBaseColor(n *Node, c Color) {
	for i, img := range w.images {
		if img == n {
			w.imageColors[i] = c
			break
		}
	}
	for i, l := range w.labels {
		if l == n {
			w.labelColors[i] = c
			break
		}
	}
	if n == w.image {
		w.imageColor = c
	}
}

// Node returns the widget's root node.
func (w *Widget) Node() *Node { return w.node }

// Visible reports the widget's visibility flag.
func (w *Widget) Visible() bool { return w.visible }

// BaseScale returns the scale captured at setup.
func (w *Widget) BaseScale() Vec2 { return w.baseScale }

// BaseAlpha returns the alpha captured at setup.
func (w *Widget) BaseAlpha() float64 { return w.baseAlpha }

// --- Show / hide ---

// Show fades the widget in. No-op when already visible.
func (w *Widget) Show() {
	if w.visible {
		return
	}
	w.visible = true
	w.FadeIn(w.In, 0)
}

// Hide fades the widget out and stops it from being hit-tested.
// No-op when already hidden.
func (w *Widget) Hide() {
	if !w.visible {
		return
	}
	w.visible = false
	w.FadeOut(w.Out)
}

// ShowImmediate sets the visibility flag without side effects.
func (w *Widget) ShowImmediate() { w.visible = true }

// HideImmediate clears the visibility flag without side effects.
func (w *Widget) HideImmediate() { w.visible = false }

// --- Handle table ---

// start issues g through the animator after cancelling whatever the widget
// previously started on the same node and property.
func (w *Widget) start(g *TweenGroup) *TweenGroup {
	k := tweenKey{g.Target(), g.Property()}
	if prev := w.handles[k]; prev != nil {
		w.anim.Cancel(prev)
	}
	g = w.anim.Start(g)
	w.handles[k] = g
	return g
}

// cancel stops the widget's animation of prop on n, if any.
func (w *Widget) cancel(n *Node, prop Property) {
	k := tweenKey{n, prop}
	if prev := w.handles[k]; prev != nil {
		w.anim.Cancel(prev)
		delete(w.handles, k)
	}
}

// cancelColor stops every color animation the widget runs on n.
func (w *Widget) cancelColor(n *Node) {
	w.cancel(n, PropColor)
	w.cancel(n, PropColorRGB)
}

// KillTweens cancels every animation the widget started.
func (w *Widget) KillTweens() {
	for k, g := range w.handles {
		w.anim.Cancel(g)
		delete(w.handles, k)
	}
}

// --- Gray ---

// TweenGray animates the primary image toward its baseline darkened by value.
func (w *Widget) TweenGray(value float64, duration float32) {
	if w.image == nil {
		return
	}
	w.start(TweenColorRGB(w.image, w.imageColor.ToGray(value, -1), duration, ease.Linear))
}

// TweenAllGray animates every image, label and graphic toward its baseline
// darkened by value.
func (w *Widget) TweenAllGray(value float64, duration float32) {
	for i, img := range w.images {
		w.start(TweenColorRGB(img, w.imageColors[i].ToGray(value, -1), duration, ease.Linear))
	}
	for i, l := range w.labels {
		w.start(TweenColorRGB(l, w.labelColors[i].ToGray(value, -1), duration, ease.Linear))
	}
	for _, g := range w.graphics {
		w.start(TweenColorRGB(g, Gray(value, 1), duration, ease.Linear))
	}
}

// SetGray sets the primary image to its baseline darkened by value.
func (w *Widget) SetGray(value float64) {
	if w.image == nil {
		return
	}
	w.cancelColor(w.image)
	w.image.Color = w.imageColor.ToGray(value, w.image.Color.A)
}

// SetAllGray sets every image, label and graphic immediately, cancelling
// their color animations first.
func (w *Widget) SetAllGray(value float64) {
	for i, img := range w.images {
		w.cancelColor(img)
		img.Color = w.imageColors[i].ToGray(value, img.Color.A)
	}
	for i, l := range w.labels {
		w.cancelColor(l)
		l.Color = w.labelColors[i].ToGray(value, l.Color.A)
	}
	for _, g := range w.graphics {
		w.cancelColor(g)
		g.Color = Gray(value, g.Color.A)
	}
}

// --- Rect ---

// TweenRectScale animates a uniform scale. When relative, scale multiplies
// the baseline magnitude and baseline mirroring is kept.
func (w *Widget) TweenRectScale(scale float64, duration float32, fn ease.TweenFunc, relative bool) {
	if w.rect == nil {
		return
	}
	sx, sy := w.uniformScale(scale, relative)
	w.start(TweenScale(w.rect, sx, sy, duration, fn))
}

// TweenRectScaleXY animates a per-axis scale, relative to the baseline when
// relative is set.
func (w *Widget) TweenRectScaleXY(scale Vec2, duration float32, fn ease.TweenFunc, relative bool) {
	if w.rect == nil {
		return
	}
	if relative {
		scale = Vec2{w.baseScale.X * scale.X, w.baseScale.Y * scale.Y}
	}
	w.start(TweenScale(w.rect, scale.X, scale.Y, duration, fn))
}

// TweenRectMove animates the local position.
func (w *Widget) TweenRectMove(to Vec2, duration float32, fn ease.TweenFunc) {
	if w.rect == nil {
		return
	}
	w.start(TweenPosition(w.rect, to.X, to.Y, duration, fn))
}

// SetRectScale sets a uniform scale immediately.
func (w *Widget) SetRectScale(scale float64, relative bool) {
	if w.rect == nil {
		return
	}
	w.cancel(w.rect, PropScale)
	w.rect.SetScale(w.uniformScale(scale, relative))
}

// SetRectScaleXY sets a per-axis scale immediately.
func (w *Widget) SetRectScaleXY(scale Vec2, relative bool) {
	if w.rect == nil {
		return
	}
	if relative {
		scale = Vec2{w.baseScale.X * scale.X, w.baseScale.Y * scale.Y}
	}
	w.cancel(w.rect, PropScale)
	w.rect.SetScale(scale.X, scale.Y)
}

func (w *Widget) uniformScale(scale float64, relative bool) (float64, float64) {
	v := scale
	if relative {
		v = abs(w.baseScale.X) * scale
	}
	sx, sy := v, v
	if w.baseScale.X < 0 {
		sx = -v
	}
	if w.baseScale.Y < 0 {
		sy = -v
	}
	return sx, sy
}

// --- Fades ---

// FadeIn animates the widget back to its baseline alpha: the group if there
// is one, else the primary image, else the label.
func (w *Widget) FadeIn(duration, delay float32) {
	var g *TweenGroup
	switch {
	case w.group != nil:
		w.group.Interactable = true
		g = TweenGroupAlpha(w.node, w.baseAlpha, duration, ease.Linear)
	case w.image != nil:
		w.node.Interactable = true
		g = TweenColorAlpha(w.image, w.baseAlpha, duration, ease.Linear)
	case w.label != nil:
		w.node.Interactable = true
		g = TweenColorAlpha(w.label, w.baseAlpha, duration, ease.Linear)
	default:
		w.node.Interactable = true
		return
	}
	g.Delay = delay
	w.start(g)
}

// FadeOut animates the widget to fully transparent and stops hit testing.
func (w *Widget) FadeOut(duration float32) {
	switch {
	case w.group != nil:
		w.group.Interactable = false
		w.start(TweenGroupAlpha(w.node, 0, duration, ease.Linear))
	case w.image != nil:
		w.node.Interactable = false
		w.start(TweenColorAlpha(w.image, 0, duration, ease.Linear))
	case w.label != nil:
		w.node.Interactable = false
		w.start(TweenColorAlpha(w.label, 0, duration, ease.Linear))
	default:
		w.node.Interactable = false
	}
}

// SetAlpha sets the widget's alpha immediately.
func (w *Widget) SetAlpha(alpha float64) {
	switch {
	case w.group != nil:
		w.cancel(w.node, PropGroupAlpha)
		w.group.Alpha = alpha
		w.group.Interactable = alpha > 0
	case w.image != nil:
		w.cancel(w.image, PropColorAlpha)
		w.image.Color.A = alpha
	case w.label != nil:
		w.cancel(w.label, PropColorAlpha)
		w.label.Color.A = alpha
	}
}

// FadeAllIn animates every image, label and graphic back to its captured
// alpha after delay seconds.
func (w *Widget) FadeAllIn(duration, delay float32) {
	w.node.Interactable = true
	w.eachAlpha(func(n *Node, base float64) {
		g := TweenColorAlpha(n, base, duration, ease.Linear)
		g.Delay = delay
		w.start(g)
	})
}

// FadeAllOut animates every image, label and graphic to fully transparent
// and stops hit testing.
func (w *Widget) FadeAllOut(duration float32) {
	w.node.Interactable = false
	w.eachAlpha(func(n *Node, _ float64) {
		w.start(TweenColorAlpha(n, 0, duration, ease.Linear))
	})
}

// SetAllAlpha sets the alpha of every image, label and graphic immediately.
func (w *Widget) SetAllAlpha(alpha float64) {
	w.eachAlpha(func(n *Node, _ float64) {
		w.cancel(n, PropColor)
		w.cancel(n, PropColorAlpha)
		n.Color.A = alpha
	})
}

// eachAlpha calls fn for every image, label and graphic with its captured
// alpha.
func (w *Widget) eachAlpha(fn func(n *Node, base float64)) {
	for i, img := range w.images {
		fn(img, w.imageColors[i].A)
	}
	for i, l := range w.labels {
		fn(l, w.labelColors[i].A)
	}
	for i, g := range w.graphics {
		fn(g, w.graphicBase[i])
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
