package mcp

import (
	"errors"
	"sync"
	"time"
)

// Common errors for tests.
var (
	ErrDeviceOffline = errors.New("device offline")
	ErrShellFailed   = errors.New("shell command failed")
)

// MockCall records a method call for verification.
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockScryApp is a mock implementation of ScryApp for testing.
type MockScryApp struct {
	mu    sync.Mutex
	Calls []MockCall

	ListTargetsResult []Target
	ListTargetsError  error
	ShellResult       string
	ShellError        error

	GetStateResult      *UIState
	GetStateError       error
	ScreenshotResult    []byte
	ScreenshotError     error
	SaveScreenshotError error

	TapError         error
	SwipeError       error
	DragError        error
	InputTextResult  bool
	PressKeyError    error
	StartAppResult   string
	GetAppsResult    []AppInfo
	GetAppsError     error
	InstallAppResult string
	GetDateResult    string
	GetDateError     error
}

// NewMockScryApp creates a mock with sensible defaults.
func NewMockScryApp() *MockScryApp {
	return &MockScryApp{
		Calls:             make([]MockCall, 0),
		ListTargetsResult: []Target{},
		GetStateResult: &UIState{
			FormattedText: "Current Clickable UI elements:\nNo UI elements found",
			ScreenWidth:   1080,
			ScreenHeight:  2400,
		},
		ScreenshotResult: []byte{0x89, 0x50, 0x4e, 0x47},
		InputTextResult:  true,
		StartAppResult:   "start ability successfully",
		GetAppsResult:    []AppInfo{},
		InstallAppResult: "install bundle successfully",
		GetDateResult:    "Fri Aug 29 12:00:00 CST 2025",
	}
}

// SetupWithTargets seeds the target list.
func (m *MockScryApp) SetupWithTargets(serials ...string) {
	m.ListTargetsResult = make([]Target, 0, len(serials))
	for _, s := range serials {
		m.ListTargetsResult = append(m.ListTargetsResult, Target{Serial: s})
	}
}

// SetupWithError sets the error field for the named method.
func (m *MockScryApp) SetupWithError(method string, err error) {
	switch method {
	case "ListTargets":
		m.ListTargetsError = err
	case "Shell":
		m.ShellError = err
	case "GetState":
		m.GetStateError = err
	case "Screenshot":
		m.ScreenshotError = err
	case "SaveScreenshot":
		m.SaveScreenshotError = err
	case "Tap":
		m.TapError = err
	case "Swipe":
		m.SwipeError = err
	case "Drag":
		m.DragError = err
	case "PressKey":
		m.PressKeyError = err
	case "GetApps":
		m.GetAppsError = err
	case "GetDate":
		m.GetDateError = err
	}
}

func (m *MockScryApp) recordCall(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// WasMethodCalled reports whether the named method was invoked.
func (m *MockScryApp) WasMethodCalled(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c.Method == method {
			return true
		}
	}
	return false
}

// GetLastCall returns the most recent recorded call.
func (m *MockScryApp) GetLastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// ScryApp implementation

func (m *MockScryApp) Version() string { return "0.0.0-test" }

func (m *MockScryApp) ListTargets() ([]Target, error) {
	m.recordCall("ListTargets")
	return m.ListTargetsResult, m.ListTargetsError
}

func (m *MockScryApp) Shell(cmd string) (string, error) {
	m.recordCall("Shell", cmd)
	return m.ShellResult, m.ShellError
}

func (m *MockScryApp) GetState() (*UIState, error) {
	m.recordCall("GetState")
	return m.GetStateResult, m.GetStateError
}

func (m *MockScryApp) Screenshot() ([]byte, error) {
	m.recordCall("Screenshot")
	return m.ScreenshotResult, m.ScreenshotError
}

func (m *MockScryApp) SaveScreenshot(path string) error {
	m.recordCall("SaveScreenshot", path)
	return m.SaveScreenshotError
}

func (m *MockScryApp) Tap(x, y int) error {
	m.recordCall("Tap", x, y)
	return m.TapError
}

func (m *MockScryApp) Swipe(x1, y1, x2, y2 int, duration time.Duration) error {
	m.recordCall("Swipe", x1, y1, x2, y2, duration)
	return m.SwipeError
}

func (m *MockScryApp) Drag(x1, y1, x2, y2 int, duration time.Duration) error {
	m.recordCall("Drag", x1, y1, x2, y2, duration)
	return m.DragError
}

func (m *MockScryApp) InputText(text string, clear bool) bool {
	m.recordCall("InputText", text, clear)
	return m.InputTextResult
}

func (m *MockScryApp) PressKey(keycode int) error {
	m.recordCall("PressKey", keycode)
	return m.PressKeyError
}

func (m *MockScryApp) StartApp(pkg, ability string) string {
	m.recordCall("StartApp", pkg, ability)
	return m.StartAppResult
}

func (m *MockScryApp) GetApps(includeSystem bool) ([]AppInfo, error) {
	m.recordCall("GetApps", includeSystem)
	return m.GetAppsResult, m.GetAppsError
}

func (m *MockScryApp) InstallApp(path string, reinstall bool) string {
	m.recordCall("InstallApp", path, reinstall)
	return m.InstallAppResult
}

func (m *MockScryApp) GetDate() (string, error) {
	m.recordCall("GetDate")
	return m.GetDateResult, m.GetDateError
}

var _ ScryApp = (*MockScryApp)(nil)
