package sprig

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names the set of node fields a TweenGroup drives.
type Property uint8

const (
	PropPosition   Property = iota // X, Y
	PropScale                      // ScaleX, ScaleY
	PropColor                      // Color.R, G, B, A
	PropColorRGB                   // Color.R, G, B
	PropColorAlpha                 // Color.A
	PropAlpha                      // Alpha
	PropGroupAlpha                 // Group.Alpha
)

type fieldMask uint16

const (
	fieldX fieldMask = 1 << iota
	fieldY
	fieldScaleX
	fieldScaleY
	fieldR
	fieldG
	fieldB
	fieldA
	fieldAlpha
	fieldGroupAlpha
)

func (p Property) fields() fieldMask {
	switch p {
	case PropPosition:
		return fieldX | fieldY
	case PropScale:
		return fieldScaleX | fieldScaleY
	case PropColor:
		return fieldR | fieldG | fieldB | fieldA
	case PropColorRGB:
		return fieldR | fieldG | fieldB
	case PropColorAlpha:
		return fieldA
	case PropAlpha:
		return fieldAlpha
	case PropGroupAlpha:
		return fieldGroupAlpha
	}
	return 0
}

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, ...) and either call Update(dt) yourself or hand it to an
// Animator. If the target node is disposed, the group stops immediately.
// A TweenGroup is the cancelable handle for the animation it describes.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	to       [4]float64
	count    int
	fields   [4]*float64
	target   *Node
	prop     Property
	duration float32

	// Delay postpones the start by this many seconds.
	Delay float32
	Done  bool

	cancelled bool
}

func newTweenGroup(node *Node, prop Property, duration float32, fn ease.TweenFunc, fields []*float64, to []float64) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(fields), target: node, prop: prop, duration: duration}
	for i, f := range fields {
		g.fields[i] = f
		g.to[i] = to[i]
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
	}
	return g
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	if g.Delay > 0 {
		g.Delay -= dt
		if g.Delay > 0 {
			return
		}
		dt = -g.Delay
		g.Delay = 0
	}

	if g.duration <= 0 {
		g.finish()
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		// gween works in float32; land exactly on the requested values.
		g.finish()
		return
	}

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) finish() {
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.to[i]
	}
	g.Done = true
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Cancel stops the group where it is. Safe on nil, finished or already
// cancelled groups.
func (g *TweenGroup) Cancel() {
	if g == nil || g.Done {
		return
	}
	g.Done = true
	g.cancelled = true
}

// Cancelled reports whether the group was stopped before finishing.
func (g *TweenGroup) Cancelled() bool {
	return g != nil && g.cancelled
}

// Target returns the node the group writes to.
func (g *TweenGroup) Target() *Node { return g.target }

// Property returns which fields the group drives.
func (g *TweenGroup) Property() Property { return g.prop }

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropPosition, duration, fn,
		[]*float64{&node.X, &node.Y}, []float64{toX, toY})
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropScale, duration, fn,
		[]*float64{&node.ScaleX, &node.ScaleY}, []float64{toSX, toSY})
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropColor, duration, fn,
		[]*float64{&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A},
		[]float64{to.R, to.G, to.B, to.A})
}

// TweenColorRGB animates node.Color's R, G and B and leaves alpha alone, so
// it can run alongside a fade.
func TweenColorRGB(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropColorRGB, duration, fn,
		[]*float64{&node.Color.R, &node.Color.G, &node.Color.B},
		[]float64{to.R, to.G, to.B})
}

// TweenColorAlpha animates node.Color.A only.
func TweenColorAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropColorAlpha, duration, fn,
		[]*float64{&node.Color.A}, []float64{to})
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, PropAlpha, duration, fn,
		[]*float64{&node.Alpha}, []float64{to})
}

// TweenGroupAlpha animates the alpha of node.Group. Panics if the node has
// no group.
func TweenGroupAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if node.Group == nil {
		panic("sprig: TweenGroupAlpha on node without a group")
	}
	return newTweenGroup(node, PropGroupAlpha, duration, fn,
		[]*float64{&node.Group.Alpha}, []float64{to})
}

// --- Animator ---

// Animator runs tween groups over time. Start returns the handle to keep;
// Cancel is idempotent and accepts nil.
type Animator interface {
	Start(g *TweenGroup) *TweenGroup
	Cancel(g *TweenGroup)
}

// Tweens is the frame-driven Animator. Starting a group cancels every
// in-flight group on the same node that drives any of the same fields, so a
// target property never has two competing animations.
type Tweens struct {
	active []*TweenGroup
	byNode map[*Node][]*TweenGroup
}

// NewTweens creates an empty animator.
func NewTweens() *Tweens {
	return &Tweens{byNode: make(map[*Node][]*TweenGroup)}
}

// Start registers g and returns it.
func (t *Tweens) Start(g *TweenGroup) *TweenGroup {
	if g == nil {
		return nil
	}
	mask := g.prop.fields()
	live := t.byNode[g.target][:0]
	for _, other := range t.byNode[g.target] {
		if other.Done {
			continue
		}
		if other.prop.fields()&mask != 0 {
			other.Cancel()
			continue
		}
		live = append(live, other)
	}
	t.byNode[g.target] = append(live, g)
	t.active = append(t.active, g)
	return g
}

// Cancel stops g.
func (t *Tweens) Cancel(g *TweenGroup) {
	g.Cancel()
}

// Kill cancels every animation targeting n.
func (t *Tweens) Kill(n *Node) {
	for _, g := range t.byNode[n] {
		g.Cancel()
	}
	delete(t.byNode, n)
}

// KillAll cancels everything.
func (t *Tweens) KillAll() {
	for _, g := range t.active {
		g.Cancel()
	}
	clear(t.active)
	t.active = t.active[:0]
	clear(t.byNode)
}

// Update advances every running group by dt seconds and drops finished ones.
func (t *Tweens) Update(dt float32) {
	n := 0
	for _, g := range t.active {
		g.Update(dt)
		if !g.Done {
			t.active[n] = g
			n++
			continue
		}
		t.forget(g)
	}
	clear(t.active[n:])
	t.active = t.active[:n]
}

func (t *Tweens) forget(g *TweenGroup) {
	list := t.byNode[g.target]
	for i, other := range list {
		if other == g {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.byNode, g.target)
		return
	}
	t.byNode[g.target] = list
}

// Len returns the number of running groups.
func (t *Tweens) Len() int {
	n := 0
	for _, g := range t.active {
		if !g.Done {
			n++
		}
	}
	return n
}

// ActiveOn returns the number of running groups targeting n.
func (t *Tweens) ActiveOn(n *Node) int {
	c := 0
	for _, g := range t.byNode[n] {
		if !g.Done {
			c++
		}
	}
	return c
}

// --- Easing by name ---

var easings = map[string]ease.TweenFunc{
	"Linear":       ease.Linear,
	"InQuad":       ease.InQuad,
	"OutQuad":      ease.OutQuad,
	"InOutQuad":    ease.InOutQuad,
	"InCubic":      ease.InCubic,
	"OutCubic":     ease.OutCubic,
	"InOutCubic":   ease.InOutCubic,
	"InSine":       ease.InSine,
	"OutSine":      ease.OutSine,
	"InOutSine":    ease.InOutSine,
	"InExpo":       ease.InExpo,
	"OutExpo":      ease.OutExpo,
	"InBack":       ease.InBack,
	"OutBack":      ease.OutBack,
	"InOutBack":    ease.InOutBack,
	"OutBounce":    ease.OutBounce,
	"OutElastic":   ease.OutElastic,
	"InOutElastic": ease.InOutElastic,
}

// EaseByName resolves an easing curve such as "OutQuad". An empty name
// resolves to Linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	return fn, nil
}
