package main

import (
	"time"

	"Scry/pkg/types"
)

// Driver is the capability surface a device backend exposes to automation
// layers. Backends for other platforms share this gesture vocabulary but
// diverge in transport, so each declares its supported operation set
// explicitly instead of partially overriding a base implementation.
type Driver interface {
	Connect() error
	Serial() string

	Tap(x, y int) error
	Swipe(x1, y1, x2, y2 int, duration time.Duration) error
	Drag(x1, y1, x2, y2 int, duration time.Duration) error
	InputText(text string, clear bool) bool
	PressKey(keycode int) error
	StartApp(pkg, ability string) string

	Screenshot() ([]byte, error)
	GetUITree() (*types.UITreeResult, error)
	GetState() (*types.UIState, error)

	ListPackages(includeSystem bool) ([]string, error)
	GetApps(includeSystem bool) ([]types.AppInfo, error)
	InstallApp(path string, reinstall bool) string
	GetDate() (string, error)

	Supports(op string) bool
}

// hdcSupportedOps is the operation set the hdc backend implements.
var hdcSupportedOps = map[string]bool{
	"tap":           true,
	"swipe":         true,
	"drag":          true,
	"input_text":    true,
	"press_key":     true,
	"start_app":     true,
	"screenshot":    true,
	"get_ui_tree":   true,
	"get_state":     true,
	"get_apps":      true,
	"list_packages": true,
	"install_app":   true,
	"get_date":      true,
}

// Supports reports whether the hdc backend implements the named operation.
func (a *App) Supports(op string) bool {
	return hdcSupportedOps[op]
}

var _ Driver = (*App)(nil)
