package types

// Target identifies one connected HarmonyOS device as reported by
// "hdc list targets".
type Target struct {
	Serial string `json:"serial"`
}

// AppInfo describes an installed bundle.
type AppInfo struct {
	Package string `json:"package"`
	Label   string `json:"label"`
}

// UITreeResult is the raw payload of one layout dump round trip, before
// state assembly.
type UITreeResult struct {
	Layout       string            `json:"layout"` // raw JSON document
	PhoneState   map[string]string `json:"phoneState"`
	ScreenWidth  int               `json:"screenWidth"`
	ScreenHeight int               `json:"screenHeight"`
}
