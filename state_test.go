package main

import (
	"strings"
	"testing"

	"Scry/pkg/types"
)

func TestFormatElementsEmpty(t *testing.T) {
	got := FormatElements(nil)
	if !strings.Contains(got, "No UI elements found") {
		t.Errorf("empty list should render the placeholder, got %q", got)
	}
	if !strings.HasPrefix(got, "Current Clickable UI elements:") {
		t.Errorf("header missing, got %q", got)
	}
}

func TestFormatElementsOmissionRules(t *testing.T) {
	tests := []struct {
		name string
		el   types.UIElement
		want string
	}{
		{
			"full element",
			types.UIElement{Index: 1, ClassName: "Button", ResourceID: "btn_ok", Text: "OK",
				Bounds: types.Bounds{Left: 0, Top: 0, Right: 100, Bottom: 50}},
			`1. Button: "btn_ok", "OK" - (0,0,100,50)`,
		},
		{
			"text repeating id suppressed",
			types.UIElement{Index: 1, ClassName: "Image", ResourceID: "icon", Text: "icon",
				Bounds: types.Bounds{Left: 0, Top: 0, Right: 48, Bottom: 48}},
			`1. Image: "icon" - (0,0,48,48)`,
		},
		{
			"no id",
			types.UIElement{Index: 1, ClassName: "Text", Text: "hello",
				Bounds: types.Bounds{Left: 10, Top: 20, Right: 110, Bottom: 40}},
			`1. Text: "hello" - (10,20,110,40)`,
		},
		{
			"no details at all",
			types.UIElement{Index: 1, ClassName: "Blank",
				Bounds: types.Bounds{Left: 0, Top: 0, Right: 10, Bottom: 10}},
			`1. Blank: - (0,0,10,10)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(FormatElements([]types.UIElement{tt.el}), "\n")
			got := lines[len(lines)-1]
			if got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestFormatElementsDeterministic(t *testing.T) {
	elements := []types.UIElement{
		{Index: 1, ClassName: "Button", ResourceID: "a", Text: "A",
			Bounds: types.Bounds{Left: 0, Top: 0, Right: 10, Bottom: 10}},
		{Index: 2, ClassName: "Text", Text: "B",
			Bounds: types.Bounds{Left: 0, Top: 10, Right: 10, Bottom: 20}},
	}

	first := FormatElements(elements)
	for i := 0; i < 10; i++ {
		if FormatElements(elements) != first {
			t.Fatal("rendering must be byte-identical across calls")
		}
	}
}

func TestResolveScreenSize(t *testing.T) {
	app := NewApp("", DefaultConfig())
	elements := []types.UIElement{
		{Bounds: types.Bounds{Left: 0, Top: 0, Right: 1200, Bottom: 2000}},
	}

	tests := []struct {
		name         string
		repW, repH   int
		elements     []types.UIElement
		wantW, wantH int
	}{
		{"reported wins", 720, 1600, elements, 720, 1600},
		{"element extents", 0, 0, elements, 1200, 2000},
		{"config fallback", 0, 0, nil, 1080, 2400},
		{"partial report ignored", 720, 0, elements, 1200, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := app.resolveScreenSize(tt.repW, tt.repH, tt.elements)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestAssembleState(t *testing.T) {
	app := NewApp("", DefaultConfig())
	raw := &types.UITreeResult{
		Layout: `{"children":[{"type":"Button","text":"OK","bounds":"0,0,100,50"}]}`,
		PhoneState: map[string]string{
			"currentApp":     "Settings",
			"focusedElement": "Search",
		},
		ScreenWidth:  1080,
		ScreenHeight: 2400,
	}

	state := app.assembleState(raw)
	if len(state.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(state.Elements))
	}
	if state.FocusedText != "Search" {
		t.Errorf("focused text = %q, want Search", state.FocusedText)
	}
	if state.ScreenWidth != 1080 || state.ScreenHeight != 2400 {
		t.Errorf("screen = %dx%d, want 1080x2400", state.ScreenWidth, state.ScreenHeight)
	}
	if !strings.Contains(state.FormattedText, `1. Button: "OK" - (0,0,100,50)`) {
		t.Errorf("unexpected rendering: %q", state.FormattedText)
	}
}

func TestAssembleStateNilPhoneState(t *testing.T) {
	app := NewApp("", DefaultConfig())
	state := app.assembleState(&types.UITreeResult{Layout: "garbage"})

	if state.PhoneState == nil {
		t.Error("phone state must never be nil")
	}
	if state.FocusedText != "" {
		t.Errorf("focused text should be empty, got %q", state.FocusedText)
	}
	if len(state.Elements) != 0 {
		t.Errorf("garbage layout should yield no elements")
	}
	if state.ScreenWidth != 1080 || state.ScreenHeight != 2400 {
		t.Errorf("fallback screen expected, got %dx%d", state.ScreenWidth, state.ScreenHeight)
	}
}
