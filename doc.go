// Package sprig gives retained-mode UI nodes on [Ebitengine] animated
// press and hover feedback, and keeps every button in a scene agreeing on
// which one, if any, is held.
//
// # Quick start
//
//	scene := sprig.NewScene(sprig.SceneConfig{})
//	ok := sprig.NewImage("ok", 120, 40, sprig.Color{R: 0.3, G: 0.6, B: 1, A: 1})
//	ok.X, ok.Y = 100, 100
//	scene.Root().AddChild(ok)
//
//	btn := scene.NewButton(ok, sprig.DefaultButtonStyle())
//	btn.OnClick(func() { fmt.Println("clicked") })
//
//	sprig.Run(scene, sprig.RunConfig{Title: "Buttons", Width: 640, Height: 480})
//
// Games that own their loop call [Scene.Update] once per tick instead of
// [Run].
//
// # Frame order
//
// [Scene.Update] refreshes world transforms, hit-tests pointers and delivers
// their callbacks, then lets the [Coordinator] poll for releases, then
// advances tweens. Because the poll runs last, a release that landed off
// every button still resolves the button that was held.
//
// # Buttons
//
// A [Button] is a state machine over Resting, Hovered, Down and Disabled.
// A release counts as a click only when the pointer moved less than
// [ButtonStyle.ClickThreshold] in normalized screen units. Each press
// cycle fires OnRelease exactly once and click handlers at most once.
// Buttons whose enclosing [Group] is not interactable or not fully opaque
// ignore input.
//
// Visual transitions are issued through an [Animator]; [Tweens] is the
// frame-driven implementation backed by [gween]. Starting a transition on a
// node property cancels whatever was animating it.
//
// # Styles
//
// [ButtonStyle] holds every feedback constant. [LoadTheme] reads named
// styles from TOML, each layered over [DefaultButtonStyle].
//
// # Testing
//
// A scene built with SceneConfig{Headless: true} reads no device input.
// Drive it with [Scene.InjectPress], [Scene.InjectRelease] and friends, or a
// JSON script loaded by [LoadTestScript].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sprig
