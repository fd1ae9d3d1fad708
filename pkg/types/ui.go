package types

import "fmt"

// Bounds is an on-screen pixel rectangle. Right > Left and Bottom > Top
// hold for every element that survives layout filtering.
type Bounds struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// String renders the rectangle as "left,top,right,bottom".
func (b Bounds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.Left, b.Top, b.Right, b.Bottom)
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() (int, int) {
	return b.Left + (b.Right-b.Left)/2, b.Top + (b.Bottom-b.Top)/2
}

// Width returns the horizontal extent.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// Valid reports whether the rectangle has positive area.
func (b Bounds) Valid() bool {
	return b.Right > b.Left && b.Bottom > b.Top
}

// UIElement is one normalized on-screen element extracted from a device
// layout dump. Index is 1-based and contiguous within a snapshot.
type UIElement struct {
	Index      int         `json:"index"`
	ResourceID string      `json:"resourceId"`
	ClassName  string      `json:"className"`
	Text       string      `json:"text"`
	Bounds     Bounds      `json:"bounds"`
	Children   []UIElement `json:"children"` // reserved, always empty
}

// UIState is an immutable snapshot of the device screen at one instant.
// A new query always yields a new snapshot; none is updated in place.
type UIState struct {
	Elements      []UIElement       `json:"elements"`
	FormattedText string            `json:"formattedText"`
	FocusedText   string            `json:"focusedText"`
	PhoneState    map[string]string `json:"phoneState"`
	ScreenWidth   int               `json:"screenWidth"`
	ScreenHeight  int               `json:"screenHeight"`
	UseNormalized bool              `json:"useNormalized"`
}
