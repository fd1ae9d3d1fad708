package main

import (
	"fmt"
	"strings"

	"Scry/pkg/types"
)

const formattedSchema = `'index. className: resourceId, text - bounds(x1,y1,x2,y2)'`

// FormatElements renders the element list as the fixed text block consumed
// downstream. The output is byte-for-byte deterministic for a given list:
// it gets diffed between snapshots and fed verbatim to language models.
func FormatElements(elements []types.UIElement) string {
	if len(elements) == 0 {
		return fmt.Sprintf("Current Clickable UI elements:\n%s:\nNo UI elements found", formattedSchema)
	}

	lines := []string{fmt.Sprintf("Current Clickable UI elements:\n%s:", formattedSchema)}
	for _, el := range elements {
		var details []string
		if el.ResourceID != "" {
			details = append(details, fmt.Sprintf("%q", el.ResourceID))
		}
		// Suppress the text group when it merely repeats the resource id.
		if el.Text != "" && el.Text != el.ResourceID {
			details = append(details, fmt.Sprintf("%q", el.Text))
		}

		parts := []string{fmt.Sprintf("%d.", el.Index), fmt.Sprintf("%s:", el.ClassName)}
		if len(details) > 0 {
			parts = append(parts, strings.Join(details, ", "))
		}
		parts = append(parts, fmt.Sprintf("- (%s)", el.Bounds))
		lines = append(lines, strings.Join(parts, " "))
	}

	return strings.Join(lines, "\n")
}

// resolveScreenSize picks the snapshot dimensions: explicitly reported
// positive values win; otherwise the furthest element extents; otherwise
// the configured fallback.
func (a *App) resolveScreenSize(reportedW, reportedH int, elements []types.UIElement) (int, int) {
	if reportedW > 0 && reportedH > 0 {
		return reportedW, reportedH
	}

	maxRight, maxBottom := 0, 0
	for _, el := range elements {
		if el.Bounds.Right > maxRight {
			maxRight = el.Bounds.Right
		}
		if el.Bounds.Bottom > maxBottom {
			maxBottom = el.Bounds.Bottom
		}
	}

	width, height := maxRight, maxBottom
	if width <= 0 {
		width = a.config.FallbackScreenWidth
	}
	if height <= 0 {
		height = a.config.FallbackScreenHeight
	}
	return width, height
}

// GetState performs one full state query: fetch the layout dump, normalize
// it into the element list, resolve screen geometry, and assemble an
// immutable snapshot with its precomputed rendering.
func (a *App) GetState() (*types.UIState, error) {
	raw, err := a.GetUITree()
	if err != nil {
		return nil, err
	}
	return a.assembleState(raw), nil
}

// assembleState combines a raw tree result into a snapshot. Split out from
// GetState so the pure path is testable without a device.
func (a *App) assembleState(raw *types.UITreeResult) *types.UIState {
	layout := ParseLayoutPayload(raw.Layout)
	elements := ParseLayoutElements(layout)
	width, height := a.resolveScreenSize(raw.ScreenWidth, raw.ScreenHeight, elements)

	phoneState := raw.PhoneState
	if phoneState == nil {
		phoneState = map[string]string{}
	}

	state := &types.UIState{
		Elements:      elements,
		FormattedText: FormatElements(elements),
		FocusedText:   phoneState["focusedElement"],
		PhoneState:    phoneState,
		ScreenWidth:   width,
		ScreenHeight:  height,
		UseNormalized: a.config.UseNormalizedCoords,
	}

	AutomationLog().
		Int("elements", len(elements)).
		Int("width", width).
		Int("height", height).
		Msg("assembled UI state")
	return state
}
