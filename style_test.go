package sprig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultButtonStyle(t *testing.T) {
	st := DefaultButtonStyle()
	if st.Scale != 0.90 || st.HoverScale != 1.05 || st.Gray != 0.75 || st.GrayDisabled != 0.5 {
		t.Errorf("feedback defaults = %+v", st)
	}
	if st.In != 0.10 || st.Out != 0.075 || st.ClickThreshold != 1e-4 {
		t.Errorf("timing defaults = %+v", st)
	}
	if err := st.Validate(); err != nil {
		t.Errorf("default style invalid: %v", err)
	}
}

func TestValidateUnknownEase(t *testing.T) {
	st := DefaultButtonStyle()
	st.OutEase = "Wobble"
	err := st.Validate()
	if !errors.Is(err, ErrUnknownEase) || !strings.Contains(err.Error(), "out_ease") {
		t.Errorf("err = %v, want out_ease ErrUnknownEase", err)
	}
}

func TestStyleEasesFallBack(t *testing.T) {
	captureLog(t)
	st := DefaultButtonStyle()
	st.InEase = "Nope"
	in, out := st.eases()
	if in == nil || out == nil {
		t.Error("unknown ease should fall back to a default curve")
	}
}

const sampleTheme = `
[styles.primary]
scale = 0.92
hover_scale = 1.08
in_ease = "OutBack"

[styles.flat]
allow_scale = false
allow_hover = false
extra_color_pressed = { R = 1.0, G = 0.5, B = 0.0, A = 1.0 }
`

func TestLoadThemeLayersOverDefaults(t *testing.T) {
	th, err := LoadTheme([]byte(sampleTheme))
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if got := th.Names(); !reflect.DeepEqual(got, []string{"flat", "primary"}) {
		t.Errorf("Names = %v", got)
	}

	primary := th.Style("primary")
	want := DefaultButtonStyle()
	want.Scale = 0.92
	want.HoverScale = 1.08
	want.InEase = "OutBack"
	if primary != want {
		t.Errorf("primary = %+v\nwant %+v", primary, want)
	}

	flat := th.Style("flat")
	if flat.AllowScale || flat.AllowHover || !flat.AllowGray {
		t.Errorf("flat flags = %+v", flat)
	}
	if flat.ExtraColorPressed != (Color{1, 0.5, 0, 1}) {
		t.Errorf("flat pressed color = %+v", flat.ExtraColorPressed)
	}
}

func TestThemeStyleFallback(t *testing.T) {
	th, err := LoadTheme([]byte(sampleTheme))
	if err != nil {
		t.Fatal(err)
	}
	if th.Style("missing") != DefaultButtonStyle() {
		t.Error("missing style should fall back to defaults")
	}
	var nilTheme *Theme
	if nilTheme.Style("any") != DefaultButtonStyle() {
		t.Error("nil theme should fall back to defaults")
	}
}

func TestLoadThemeErrors(t *testing.T) {
	cases := map[string]struct {
		data string
		want string
	}{
		"syntax":      {"[styles.a\nscale = ", "parse theme"},
		"bad ease":    {"[styles.a]\nin_ease = \"Wobble\"", `theme style "a": in_ease`},
		"unknown key": {"[styles.a]\nsquish = 2", "unknown keys styles.a.squish"},
		"wrong type":  {"[styles.a]\nscale = \"big\"", `parse theme style "a"`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTheme([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadThemeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	if err := os.WriteFile(path, []byte(sampleTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile: %v", err)
	}
	if th.Style("primary").Scale != 0.92 {
		t.Error("file theme not parsed")
	}

	_, err = LoadThemeFile(filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read theme") {
		t.Errorf("err = %v, want read theme error", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[styles.a]\nsquish = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadThemeFile(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("err = %v, want it to name %s", err, bad)
	}
}

func TestThemeEncodeRoundTrip(t *testing.T) {
	th, err := LoadTheme([]byte(sampleTheme))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := th.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := LoadTheme(buf.Bytes())
	if err != nil {
		t.Fatalf("reload encoded theme: %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(again.Styles, th.Styles) {
		t.Errorf("round trip changed styles:\n%s", buf.String())
	}
}

func TestButtonUsesStyleTimings(t *testing.T) {
	th, err := LoadTheme([]byte("[styles.slow]\nin = 0.5\nout = 0.4\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestScene(true)
	n := NewImage("slow", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	btn := s.NewButton(n, th.Style("slow"))
	if btn.In != 0.5 || btn.Out != 0.4 {
		t.Errorf("timings = %v/%v, want 0.5/0.4", btn.In, btn.Out)
	}
}
