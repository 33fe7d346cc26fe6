package sprig

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ReleaseSource reports the pointer releases that happened this frame.
type ReleaseSource interface {
	// MouseReleased reports whether the primary mouse button was released.
	MouseReleased() bool
	// TouchesEnded returns how many touches ended.
	TouchesEnded() int
}

// FrameReleases is a ReleaseSource filled in by hand. The scene records one
// per frame from the pointer events it processed.
type FrameReleases struct {
	Mouse   bool
	Touches int
}

// MouseReleased implements ReleaseSource.
func (f FrameReleases) MouseReleased() bool { return f.Mouse }

// TouchesEnded implements ReleaseSource.
func (f FrameReleases) TouchesEnded() int { return f.Touches }

type ebitenReleases struct {
	touchBuf []ebiten.TouchID
}

// EbitenReleases returns a ReleaseSource that reads Ebitengine's
// just-released mouse and touch state. Only valid inside the game loop.
func EbitenReleases() ReleaseSource {
	return &ebitenReleases{}
}

func (e *ebitenReleases) MouseReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (e *ebitenReleases) TouchesEnded() int {
	e.touchBuf = inpututil.AppendJustReleasedTouchIDs(e.touchBuf[:0])
	return len(e.touchBuf)
}

// DetectDesktop reports whether the current platform has a hovering pointer.
func DetectDesktop() bool {
	switch runtime.GOOS {
	case "android", "ios":
		return false
	}
	return true
}

// CoordinatorConfig configures a Coordinator.
type CoordinatorConfig struct {
	// Desktop enables hover handling and mouse release broadcasts. Ignored
	// unless ForceDesktop is set; otherwise DetectDesktop decides.
	Desktop      bool
	ForceDesktop bool

	// ScreenWidth and ScreenHeight normalize press displacement. Zero
	// extents fall back to 1.
	ScreenWidth  float64
	ScreenHeight float64

	// CameraSource resolves the camera used to map world positions to the
	// screen. It may return nil.
	CameraSource func() *Camera
}

type subscriber struct {
	fn      func()
	dropped func() // run when the scene unloads; may be nil
	removed bool
}

// Subscription is the handle returned by Coordinator.Subscribe.
type Subscription struct {
	sub *subscriber
	c   *Coordinator
}

// Remove unsubscribes. Safe to call more than once and on the zero value.
func (s Subscription) Remove() {
	if s.c == nil {
		return
	}
	s.c.Unsubscribe(s)
}

// Active reports whether the subscription still receives broadcasts.
func (s Subscription) Active() bool {
	return s.sub != nil && !s.sub.removed
}

// Coordinator tracks which button, if any, is held and broadcasts pointer
// releases to every subscribed button once per frame. It is not safe for
// concurrent use; everything runs on the update goroutine.
type Coordinator struct {
	desktop bool
	screenW float64
	screenH float64

	owner *Button
	subs  []*subscriber

	cameraSource   func() *Camera
	camera         *Camera
	cameraResolved bool

	broadcasts int
}

// NewCoordinator creates a coordinator.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	c := &Coordinator{
		desktop:      DetectDesktop(),
		cameraSource: cfg.CameraSource,
	}
	if cfg.ForceDesktop {
		c.desktop = cfg.Desktop
	}
	c.SetScreenSize(cfg.ScreenWidth, cfg.ScreenHeight)
	return c
}

// Desktop reports whether hover and mouse releases are honored.
func (c *Coordinator) Desktop() bool { return c.desktop }

// SetDesktop overrides platform detection.
func (c *Coordinator) SetDesktop(v bool) { c.desktop = v }

// SetScreenSize sets the extents used to normalize press displacement.
func (c *Coordinator) SetScreenSize(w, h float64) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	c.screenW, c.screenH = w, h
}

// ScreenSize returns the normalization extents.
func (c *Coordinator) ScreenSize() (w, h float64) {
	return c.screenW, c.screenH
}

// --- Camera ---

// SetCameraSource replaces the camera resolver and drops the cached camera.
func (c *Coordinator) SetCameraSource(fn func() *Camera) {
	c.cameraSource = fn
	c.camera = nil
	c.cameraResolved = false
}

// Camera returns the cached camera, resolving it on first use.
func (c *Coordinator) Camera() *Camera {
	if !c.cameraResolved {
		c.cameraResolved = true
		if c.cameraSource != nil {
			c.camera = c.cameraSource()
		}
	}
	return c.camera
}

// SceneLoaded re-resolves the camera.
func (c *Coordinator) SceneLoaded() {
	c.camera = nil
	c.cameraResolved = false
}

// toScreen maps a world point to screen space through the camera, if any.
func (c *Coordinator) toScreen(wx, wy float64) (float64, float64) {
	if cam := c.Camera(); cam != nil {
		return cam.WorldToScreen(wx, wy)
	}
	return wx, wy
}

// normalize maps a world point to screen space divided by the screen size.
func (c *Coordinator) normalize(wx, wy float64) Vec2 {
	sx, sy := c.toScreen(wx, wy)
	return Vec2{sx / c.screenW, sy / c.screenH}
}

// --- Holding ---

// Holding reports whether some button is currently down.
func (c *Coordinator) Holding() bool { return c.owner != nil }

// Owner returns the button that is down, or nil.
func (c *Coordinator) Owner() *Button { return c.owner }

// Acquire marks b as the held button. A different button that still holds
// is resolved to resting first, so two buttons are never down at once.
func (c *Coordinator) Acquire(b *Button) {
	if c.owner == b {
		return
	}
	if prev := c.owner; prev != nil {
		c.owner = nil
		logger.Debug("holding stolen", "from", prev.Name(), "to", b.Name())
		prev.globalRelease()
	}
	c.owner = b
}

// Release clears holding if b owns it. Releases from other buttons are
// ignored.
func (c *Coordinator) Release(b *Button) {
	if c.owner == b {
		c.owner = nil
		return
	}
	if c.owner != nil {
		logger.Warn("release from non-owner ignored", "button", b.Name(), "owner", c.owner.Name())
	}
}

// --- Subscribers ---

// Subscribe registers fn to run on every release broadcast.
func (c *Coordinator) Subscribe(fn func()) Subscription {
	return c.subscribe(fn, nil)
}

func (c *Coordinator) subscribe(fn, dropped func()) Subscription {
	s := &subscriber{fn: fn, dropped: dropped}
	c.subs = append(c.subs, s)
	return Subscription{sub: s, c: c}
}

// Unsubscribe removes a subscription. Idempotent.
func (c *Coordinator) Unsubscribe(s Subscription) {
	if s.sub == nil || s.sub.removed {
		return
	}
	s.sub.removed = true
	for i, other := range c.subs {
		if other == s.sub {
			copy(c.subs[i:], c.subs[i+1:])
			c.subs[len(c.subs)-1] = nil
			c.subs = c.subs[:len(c.subs)-1]
			return
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (c *Coordinator) Subscribers() int { return len(c.subs) }

// Broadcast clears holding, resolves the held button and then notifies every
// subscriber registered when the broadcast began. Subscribers removed during
// the broadcast are skipped.
func (c *Coordinator) Broadcast() {
	c.broadcasts++
	owner := c.owner
	c.owner = nil
	if verbose() {
		name := ""
		if owner != nil {
			name = owner.Name()
		}
		logger.Debug("release broadcast", "subscribers", len(c.subs), "owner", name)
	}
	if owner != nil {
		owner.globalRelease()
	}
	snapshot := make([]*subscriber, len(c.subs))
	copy(snapshot, c.subs)
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.fn()
	}
}

// Broadcasts returns how many broadcasts have been sent.
func (c *Coordinator) Broadcasts() int { return c.broadcasts }

// PollFrame broadcasts once if any touch ended this frame or, on desktop,
// the primary mouse button was released. It must run after the frame's
// pointer callbacks. Reports whether it broadcast.
func (c *Coordinator) PollFrame(src ReleaseSource) bool {
	if src == nil {
		return false
	}
	if src.TouchesEnded() > 0 || (c.desktop && src.MouseReleased()) {
		c.Broadcast()
		return true
	}
	return false
}

// SceneUnloaded resolves the held button, then drops every subscriber and
// the cached camera. Dropped buttons are detached and may Attach again.
func (c *Coordinator) SceneUnloaded() {
	if owner := c.owner; owner != nil {
		owner.ClearImmediate()
	}
	c.owner = nil
	subs := make([]*subscriber, len(c.subs))
	copy(subs, c.subs)
	clear(c.subs)
	c.subs = c.subs[:0]
	for _, s := range subs {
		s.removed = true
		if s.dropped != nil {
			s.dropped()
		}
	}
	c.SceneLoaded()
}
