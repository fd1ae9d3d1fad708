package main

import (
	"fmt"
	"os/exec"
	"time"
)

const appVersion = "0.3.0"

// Config carries the tunables whose correct values are device-specific.
// The defaults come from observed HarmonyOS behavior and are overridable
// from the CLI; none of them is baked into gesture or layout logic.
type Config struct {
	HdcPath              string        // hdc binary; resolved from PATH when empty
	CommandTimeout       time.Duration // per-command default
	TransferTimeout      time.Duration // file send/recv
	InstallTimeout       time.Duration // bundle install incl. transfer
	MinSwipeVelocity     int           // px/s, lower clamp accepted by uiInput
	MaxSwipeVelocity     int           // px/s, upper clamp accepted by uiInput
	DefaultSwipeVelocity int           // used when duration is non-positive
	MinLongPressDwell    time.Duration // floor for zero-length swipes
	MinSwipeSettle       time.Duration // floor for post-swipe settle wait
	FallbackScreenWidth  int           // when no bound or size can be derived
	FallbackScreenHeight int
	UseNormalizedCoords  bool // carried onto snapshots, no conversion here
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		HdcPath:              "hdc",
		CommandTimeout:       60 * time.Second,
		TransferTimeout:      120 * time.Second,
		InstallTimeout:       180 * time.Second,
		MinSwipeVelocity:     200,
		MaxSwipeVelocity:     40000,
		DefaultSwipeVelocity: 600,
		MinLongPressDwell:    300 * time.Millisecond,
		MinSwipeSettle:       100 * time.Millisecond,
		FallbackScreenWidth:  1080,
		FallbackScreenHeight: 2400,
	}
}

// App drives one HarmonyOS device through hdc. The serial is immutable once
// bound at connect time. Callers must not issue overlapping device-mutating
// commands on the same App; each command is an independent process and the
// device serializes at that level.
type App struct {
	config    Config
	serial    string
	connected bool
}

// NewApp creates an unconnected App. An empty serial is resolved to the
// first listed target during Connect.
func NewApp(serial string, config Config) *App {
	return &App{
		config: config,
		serial: serial,
	}
}

// Serial returns the bound device serial, empty before Connect resolves one.
func (a *App) Serial() string {
	return a.serial
}

// Version returns the application version string.
func (a *App) Version() string {
	return appVersion
}

// Connect binds the App to a device. It verifies hdc is reachable, resolves
// the serial if absent, probes the shell channel, and starts the uitest
// daemon best-effort.
func (a *App) Connect() error {
	if a.connected {
		return nil
	}

	if _, err := exec.LookPath(a.config.HdcPath); err != nil {
		return fmt.Errorf("hdc not found in PATH: %w", err)
	}

	if a.serial == "" {
		targets, err := a.ListTargets()
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return fmt.Errorf("no connected HarmonyOS devices found via hdc")
		}
		a.serial = targets[0].Serial
	}

	if _, err := a.Shell("echo hdc_ok"); err != nil {
		return fmt.Errorf("device %s not responding: %w", a.serial, err)
	}
	a.safeShell("uitest start-daemon")

	a.connected = true
	DeviceLog().Str("serial", a.serial).Msg("connected")
	return nil
}

// ensureConnected connects lazily on first use.
func (a *App) ensureConnected() error {
	if a.connected {
		return nil
	}
	return a.Connect()
}
