package sprig

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction and button events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	PointerID int
}

const defaultTPS = 60

// SceneConfig configures a Scene.
type SceneConfig struct {
	// Headless scenes read no Ebitengine input; only injected events drive
	// them. Use it in tests and tools.
	Headless bool
	// TPS fixes the update rate used to advance tweens. Zero uses
	// ebiten.TPS(), or 60 when headless.
	TPS int
	// Coordinator configures the scene's coordinator. A nil CameraSource
	// resolves to the scene's first camera.
	Coordinator CoordinatorConfig
	// Debug enables debug checks and Debug-level logging.
	Debug bool
}

// Scene is the composition root: it owns the node tree, cameras, input
// state, the animator and the coordinator shared by every button it creates.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	coord  *Coordinator
	tweens *Tweens

	headless bool
	tps      int

	// Cameras
	cameras []*Camera

	// Input state
	handlers      handlerRegistry
	captured      [maxPointers]*Node
	pointers      [maxPointers]pointerState
	hitBuf        []*Node
	dragDeadZone  float64
	touchMap      [maxPointers]ebiten.TouchID
	touchUsed     [maxPointers]bool
	prevTouchIDs  []ebiten.TouchID
	injectQueue   []syntheticPointerEvent
	testRunner    *TestRunner
	frameReleases FrameReleases
	releases      ReleaseSource
}

// NewScene creates a new scene with a pre-created root container.
func NewScene(cfg SceneConfig) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{
		root:         root,
		tweens:       NewTweens(),
		headless:     cfg.Headless,
		tps:          cfg.TPS,
		dragDeadZone: defaultDragDeadZone,
	}
	cc := cfg.Coordinator
	if cc.CameraSource == nil {
		cc.CameraSource = s.primaryCamera
	}
	s.coord = NewCoordinator(cc)
	if !s.headless {
		s.releases = EbitenReleases()
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Coordinator returns the coordinator shared by the scene's buttons.
func (s *Scene) Coordinator() *Coordinator {
	return s.coord
}

// Tweens returns the scene's animator.
func (s *Scene) Tweens() *Tweens {
	return s.tweens
}

// NewButton turns n into a button wired to the scene's coordinator and
// animator.
func (s *Scene) NewButton(n *Node, style ButtonStyle) *Button {
	b := NewButton(n, s.coord, s.tweens, style)
	b.emit = s.emitButtonEvent
	return b
}

// NewWidget captures n's visual state with the scene's animator.
func (s *Scene) NewWidget(n *Node) *Widget {
	return CaptureWidget(n, s.tweens)
}

func (s *Scene) frameDelta() float32 {
	tps := s.tps
	if tps <= 0 {
		if s.headless {
			tps = defaultTPS
		} else {
			tps = ebiten.TPS()
		}
	}
	return float32(1.0 / float64(tps))
}

// Update runs one frame: world transforms, pointer events, the
// coordinator's release poll, then animations. Pointer callbacks always run
// before the poll.
func (s *Scene) Update() {
	dt := s.frameDelta()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	for _, cam := range s.cameras {
		cam.update(dt)
	}

	// Refresh world transforms first so hit testing sees this frame's layout.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.frameReleases = FrameReleases{}
	s.processInput()

	var src ReleaseSource = s.frameReleases
	if s.releases != nil {
		src = mergedReleases{s.frameReleases, s.releases}
	}
	s.coord.PollFrame(src)

	s.tweens.Update(dt)
}

// LastReleases returns the releases recorded during the last Update.
func (s *Scene) LastReleases() FrameReleases {
	return s.frameReleases
}

type mergedReleases struct {
	a, b ReleaseSource
}

func (m mergedReleases) MouseReleased() bool {
	return m.a.MouseReleased() || m.b.MouseReleased()
}

func (m mergedReleases) TouchesEnded() int {
	return max(m.a.TouchesEnded(), m.b.TouchesEnded())
}

// Unload tears the scene's interaction state down: every release
// subscription is dropped, holding is cleared and all animations stop.
func (s *Scene) Unload() {
	s.coord.SceneUnloaded()
	s.tweens.KillAll()
	for i := range s.pointers {
		s.pointers[i] = pointerState{}
		s.captured[i] = nil
	}
	s.injectQueue = s.injectQueue[:0]
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	s.coord.SceneLoaded()
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			s.coord.SceneLoaded()
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

func (s *Scene) primaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// button traces are logged at Debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	SetVerbose(enabled)
}
