package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"Scry/pkg/types"
)

// Layout dumps have no stable schema: field names for bounds, children,
// text, type, and id vary by dump source and OS revision. Each semantic
// attribute is resolved through an ordered alias list so a new dump dialect
// is an additive table entry, not a new code branch.
var (
	layoutChildKeys = []string{"children", "child", "nodes", "elements", "componentTree", "components", "subNodes"}
	layoutTextKeys  = []string{"text", "label", "content", "description", "value", "hint", "title"}
	layoutTypeKeys  = []string{"type", "className", "componentType", "widgetType", "name"}
	layoutIDKeys    = []string{"id", "resourceId", "componentId", "identifier", "key"}

	// string-encoded rectangles: "x1,y1,x2,y2", "[x1,y1][x2,y2]", ...
	layoutBoundsStringKeys = []string{"bounds", "bound", "frame"}
)

var signedIntPattern = regexp.MustCompile(`-?\d+`)

// ParseLayoutPayload turns a raw dump payload into a JSON document. Direct
// parsing is tried first; when command noise surrounds the JSON, the first
// balanced top-level object is extracted instead. Total failure yields an
// empty document, never an error, so one bad dump cannot abort a session.
func ParseLayoutPayload(payload string) gjson.Result {
	text := strings.TrimSpace(payload)
	if text == "" {
		return gjson.Result{}
	}

	if gjson.Valid(text) {
		doc := gjson.Parse(text)
		if doc.IsObject() || doc.IsArray() {
			return doc
		}
	}

	if obj := ExtractJSONObject(text); obj != "" && gjson.Valid(obj) {
		return gjson.Parse(obj)
	}

	LayoutLog().Int("payloadLen", len(payload)).Msg("unparseable layout payload, returning empty document")
	return gjson.Result{}
}

// extractBounds pulls a rectangle out of one layout node, tolerating the
// four encodings seen across uitest/dump tool versions. First match wins;
// no match means the node carries no usable geometry.
func extractBounds(node gjson.Result) (types.Bounds, bool) {
	// Encoding 1: bounds object with left/top/right/bottom.
	if b := node.Get("bounds"); b.IsObject() {
		left, top := b.Get("left"), b.Get("top")
		right, bottom := b.Get("right"), b.Get("bottom")
		if left.Exists() && top.Exists() && right.Exists() && bottom.Exists() {
			return types.Bounds{
				Left:   int(left.Int()),
				Top:    int(top.Int()),
				Right:  int(right.Int()),
				Bottom: int(bottom.Int()),
			}, true
		}
	}

	// Encoding 2: rect object with left/top plus width/height.
	if r := node.Get("rect"); r.IsObject() && r.Get("left").Exists() && r.Get("top").Exists() {
		left := int(r.Get("left").Int())
		top := int(r.Get("top").Int())
		return types.Bounds{
			Left:   left,
			Top:    top,
			Right:  left + int(r.Get("width").Int()),
			Bottom: top + int(r.Get("height").Int()),
		}, true
	}

	// Encoding 3: string-embedded coordinate quartet.
	for _, key := range layoutBoundsStringKeys {
		raw := node.Get(key)
		if raw.Type != gjson.String {
			continue
		}
		nums := signedIntPattern.FindAllString(raw.Str, 4)
		if len(nums) < 4 {
			continue
		}
		x1, _ := strconv.Atoi(nums[0])
		y1, _ := strconv.Atoi(nums[1])
		x2, _ := strconv.Atoi(nums[2])
		y2, _ := strconv.Atoi(nums[3])
		if x2 < x1 || y2 < y1 {
			return types.Bounds{}, false
		}
		return types.Bounds{Left: x1, Top: y1, Right: x2, Bottom: y2}, true
	}

	// Encoding 4: discrete x/y/width/height scalars.
	x, y := node.Get("x"), node.Get("y")
	w, h := node.Get("width"), node.Get("height")
	if x.Exists() && y.Exists() && w.Exists() && h.Exists() {
		left, top := int(x.Int()), int(y.Int())
		return types.Bounds{
			Left:   left,
			Top:    top,
			Right:  left + int(w.Int()),
			Bottom: top + int(h.Int()),
		}, true
	}

	return types.Bounds{}, false
}

// extractFirst resolves one semantic attribute through its alias list:
// first present, non-empty value wins. Numeric and boolean leaves are
// stringified; strings empty after trimming count as absent.
func extractFirst(node gjson.Result, keys []string) string {
	for _, key := range keys {
		value := node.Get(key)
		switch value.Type {
		case gjson.Number, gjson.True, gjson.False:
			return value.String()
		case gjson.String:
			if text := strings.TrimSpace(value.Str); text != "" {
				return text
			}
		}
	}
	return ""
}

// classLeaf reduces a dotted type name to its final segment.
func classLeaf(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// dedupSignature identifies one rendered element: two nodes sharing it are
// the same thing drawn once, regardless of differing resource ids.
type dedupSignature struct {
	bounds    types.Bounds
	className string
	text      string
}

// walkLayout visits every mapping node of the document depth-first,
// pre-order. Child-alias fields are recursed before any other field so
// structural children are discovered ahead of unrelated sibling metadata
// that happens to embed rectangles.
func walkLayout(node gjson.Result, visit func(gjson.Result)) {
	switch {
	case node.IsObject():
		visit(node)
		for _, key := range layoutChildKeys {
			if child := node.Get(key); child.Exists() {
				walkLayout(child, visit)
			}
		}
		node.ForEach(func(key, value gjson.Result) bool {
			if isChildKey(key.String()) {
				return true
			}
			if value.IsObject() || value.IsArray() {
				walkLayout(value, visit)
			}
			return true
		})
	case node.IsArray():
		node.ForEach(func(_, item gjson.Result) bool {
			walkLayout(item, visit)
			return true
		})
	}
}

func isChildKey(key string) bool {
	for _, k := range layoutChildKeys {
		if key == k {
			return true
		}
	}
	return false
}

// ParseLayoutElements reduces a layout document to the canonical ordered
// element list: well-formed rectangles only, noise nodes dropped, first
// occurrence per dedup signature kept, contiguous 1-based indices assigned
// in traversal order.
func ParseLayoutElements(layout gjson.Result) []types.UIElement {
	var elements []types.UIElement
	seen := make(map[dedupSignature]struct{})

	walkLayout(layout, func(node gjson.Result) {
		bounds, ok := extractBounds(node)
		if !ok || !bounds.Valid() {
			return
		}

		className := classLeaf(extractFirst(node, layoutTypeKeys))
		resourceID := extractFirst(node, layoutIDKeys)
		text := extractFirst(node, layoutTextKeys)

		// A node with no name, id, and text is pure noise.
		if className == "" && resourceID == "" && text == "" {
			return
		}

		sig := dedupSignature{bounds: bounds, className: className, text: text}
		if _, dup := seen[sig]; dup {
			return
		}
		seen[sig] = struct{}{}

		display := text
		if display == "" {
			display = resourceID
		}
		if display == "" {
			display = className
		}

		elements = append(elements, types.UIElement{
			Index:      len(elements) + 1,
			ResourceID: resourceID,
			ClassName:  className,
			Text:       display,
			Bounds:     bounds,
			Children:   []types.UIElement{},
		})
	})

	return elements
}

// InferScreenSize scans a raw layout document for the furthest right/bottom
// extents. Zero results mean nothing could be derived.
func InferScreenSize(layout gjson.Result) (int, int) {
	maxRight, maxBottom := 0, 0
	walkLayout(layout, func(node gjson.Result) {
		bounds, ok := extractBounds(node)
		if !ok {
			return
		}
		if bounds.Right > maxRight {
			maxRight = bounds.Right
		}
		if bounds.Bottom > maxBottom {
			maxBottom = bounds.Bottom
		}
	})
	return maxRight, maxBottom
}
