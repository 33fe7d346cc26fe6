package sprig

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ShowFPS    bool
	ClearColor Color
	Debug      bool
}

type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.coord.SetScreenSize(float64(g.cfg.Width), float64(g.cfg.Height))
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene with a minimal game loop. It blocks
// until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	scene.coord.SetScreenSize(float64(cfg.Width), float64(cfg.Height))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(&gameShell{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Draw paints the tree with flat shapes: images and graphics as filled
// boxes, labels as debug text. It is meant for prototypes and demos; real
// games render the nodes themselves.
func (s *Scene) Draw(screen *ebiten.Image) {
	view := identityTransform
	if cam := s.coord.Camera(); cam != nil {
		view = cam.computeViewMatrix()
	}
	s.drawNode(screen, s.root, view)
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, view [6]float64) {
	if !n.Visible {
		return
	}
	alpha := n.worldAlpha * n.Color.A
	if alpha > 0 {
		m := multiplyAffine(view, n.worldTransform)
		switch n.Type {
		case NodeTypeImage, NodeTypeGraphic:
			r := transformedBounds(m, n.Width, n.Height)
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
				n.Color.WithAlpha(alpha).toRGBA(), false)
		case NodeTypeText:
			x, y := transformPoint(m, 0, 0)
			ebitenutil.DebugPrintAt(dst, n.Text, int(x), int(y))
		}
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, c := range children {
		s.drawNode(dst, c, view)
	}
}

// transformedBounds returns the axis-aligned bounds of a w x h box under m.
func transformedBounds(m [6]float64, w, h float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
