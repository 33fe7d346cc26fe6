package sprig

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", cam.Zoom)
	}
	// A fresh camera maps world onto screen one to one.
	sx, sy := cam.WorldToScreen(123, 45)
	if !approxEqual(sx, 123, epsilon) || !approxEqual(sy, 45, epsilon) {
		t.Errorf("WorldToScreen = (%v, %v), want (123, 45)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 100, 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) = (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestCameraZoomAndRotation(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 0, 0
	cam.Zoom = 2
	sx, sy := cam.WorldToScreen(10, 0)
	if !approxEqual(sx, 420, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("zoomed = (%v, %v), want (420, 300)", sx, sy)
	}

	cam.Zoom = 1
	cam.Rotation = math.Pi / 2
	sx, sy = cam.WorldToScreen(10, 0)
	if !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 290, 1e-9) {
		t.Errorf("rotated = (%v, %v), want (400, 290)", sx, sy)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := newCamera(Rect{X: 20, Y: 10, Width: 640, Height: 480})
	cam.X, cam.Y = 37, -12
	cam.Zoom = 1.5
	cam.Rotation = 0.4
	wx, wy := cam.ScreenToWorld(cam.WorldToScreen(250, 75))
	if !approxEqual(wx, 250, 1e-9) || !approxEqual(wy, 75, 1e-9) {
		t.Errorf("round trip = (%v, %v), want (250, 75)", wx, wy)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollTo(1000, 500, 1, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("ScrollTo should start scrolling")
	}
	cam.update(0.5)
	if math.Abs(cam.X-700) > 1 || math.Abs(cam.Y-400) > 1 {
		t.Errorf("midpoint = (%v, %v), want ~(700, 400)", cam.X, cam.Y)
	}
	cam.update(0.5)
	if cam.Scrolling() {
		t.Error("scroll should finish")
	}
	if math.Abs(cam.X-1000) > 0.01 || math.Abs(cam.Y-500) > 0.01 {
		t.Errorf("final = (%v, %v), want (1000, 500)", cam.X, cam.Y)
	}
}

func TestSceneCameraFeedsCoordinator(t *testing.T) {
	s := newTestScene(true)
	if s.Coordinator().Camera() != nil {
		t.Fatal("scene without cameras has no coordinator camera")
	}
	cam := s.NewCamera(Rect{Width: 1000, Height: 1000})
	if s.Coordinator().Camera() != cam {
		t.Error("NewCamera should become the coordinator camera")
	}
	s.RemoveCamera(cam)
	if s.Coordinator().Camera() != nil || len(s.Cameras()) != 0 {
		t.Error("RemoveCamera should drop the coordinator camera")
	}
}

func TestButtonThresholdUsesScreenSpace(t *testing.T) {
	f := newButtonFixture(t)
	cam := f.scene.NewCamera(Rect{Width: 1000, Height: 1000})
	cam.Zoom = 4

	// 5 world units are 20 screen pixels at 4x zoom: 0.02 normalized.
	f.btn.PointerDown(down(150, 120))
	f.btn.PointerUp(down(155, 120))
	if f.clicks != 0 {
		t.Errorf("clicks = %d, want 0 when zoom magnifies the drag", f.clicks)
	}
}
