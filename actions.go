package main

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// harmonyKeyMap translates the cross-platform key codes used by callers
// (Android numbering) to their uiInput equivalents. Unmapped codes pass
// through unchanged.
var harmonyKeyMap = map[int]string{
	3:  "Home",
	4:  "Back",
	66: "2054", // KEYCODE_ENTER
}

// aa start reports success with one of two literal phrases depending on the
// OS revision.
var aaStartSuccessPhrases = []string{
	"start ability successfully",
	"start ability for result ok",
}

// Tap issues a single click at integer-rounded coordinates.
func (a *App) Tap(x, y int) error {
	if err := a.ensureConnected(); err != nil {
		return err
	}
	_, err := a.Shell(fmt.Sprintf("uitest uiInput click %d %d", x, y))
	return err
}

// Swipe moves between two points over the given duration. Equal endpoints
// degrade to a long press rather than a zero-length swipe, which uiInput
// rejects. After a real swipe the call waits out the gesture so the screen
// has settled before the next command.
func (a *App) Swipe(x1, y1, x2, y2 int, duration time.Duration) error {
	if err := a.ensureConnected(); err != nil {
		return err
	}

	if x1 == x2 && y1 == y2 {
		if _, err := a.Shell(fmt.Sprintf("uitest uiInput longClick %d %d", x1, y1)); err != nil {
			return err
		}
		time.Sleep(maxDuration(duration, a.config.MinLongPressDwell))
		return nil
	}

	velocity := a.durationToVelocity(x1, y1, x2, y2, duration)
	if _, err := a.Shell(fmt.Sprintf("uitest uiInput swipe %d %d %d %d %d", x1, y1, x2, y2, velocity)); err != nil {
		return err
	}
	time.Sleep(maxDuration(duration, a.config.MinSwipeSettle))
	return nil
}

// Drag uses the same velocity math as Swipe but waits the full requested
// duration; drags are typically slower and the drop point matters.
func (a *App) Drag(x1, y1, x2, y2 int, duration time.Duration) error {
	if err := a.ensureConnected(); err != nil {
		return err
	}

	velocity := a.durationToVelocity(x1, y1, x2, y2, duration)
	if _, err := a.Shell(fmt.Sprintf("uitest uiInput drag %d %d %d %d %d", x1, y1, x2, y2, velocity)); err != nil {
		return err
	}
	time.Sleep(maxDuration(duration, 200*time.Millisecond))
	return nil
}

// InputText injects text into the focused field, optionally clearing it
// first (select-all then delete). Text entry is best-effort UI interaction:
// any underlying failure degrades to false instead of propagating, since a
// non-focusable field is an expected condition, not transport breakage.
func (a *App) InputText(text string, clear bool) bool {
	if err := a.ensureConnected(); err != nil {
		AutomationLog().Err(err).Msg("input text: connect failed")
		return false
	}

	if clear {
		if _, err := a.Shell("uitest uiInput keyEvent 2072 2017"); err != nil {
			AutomationLog().Err(err).Msg("input text: select-all failed")
			return false
		}
		if _, err := a.Shell("uitest uiInput keyEvent 2055"); err != nil {
			AutomationLog().Err(err).Msg("input text: delete failed")
			return false
		}
	}

	if _, err := a.Shell("uitest uiInput text " + quoteShellArg(text)); err != nil {
		AutomationLog().Err(err).Str("text", text).Msg("input text failed")
		return false
	}
	return true
}

// PressKey sends one key event, translating cross-platform codes where a
// HarmonyOS equivalent exists.
func (a *App) PressKey(keycode int) error {
	if err := a.ensureConnected(); err != nil {
		return err
	}
	key, ok := harmonyKeyMap[keycode]
	if !ok {
		key = fmt.Sprintf("%d", keycode)
	}
	_, err := a.Shell("uitest uiInput keyEvent " + key)
	return err
}

// StartApp launches a bundle. An explicit ability is used verbatim;
// otherwise an implicit launch is tried first and, when its output does not
// look successful, the launch ability is resolved from bundle metadata and
// retried. Launch failure is reported as the returned message, never as an
// error: the app may already be running, or the output phrasing may simply
// be unknown.
func (a *App) StartApp(pkg string, ability string) string {
	if err := a.ensureConnected(); err != nil {
		return fmt.Sprintf("Failed to start app %s: %v", pkg, err)
	}

	if ability != "" {
		out, err := a.Shell(fmt.Sprintf("aa start -a %s -b %s", quoteShellArg(ability), quoteShellArg(pkg)))
		if err != nil {
			return fmt.Sprintf("Failed to start app %s: %v", pkg, err)
		}
		if s := strings.TrimSpace(out); s != "" {
			return s
		}
		return fmt.Sprintf("App started: %s/%s", pkg, ability)
	}

	out, err := a.Shell("aa start -b " + quoteShellArg(pkg))
	if err != nil {
		return fmt.Sprintf("Failed to start app %s: %v", pkg, err)
	}
	if looksLikeAaStartSuccess(out) {
		if s := strings.TrimSpace(out); s != "" {
			return s
		}
		return "App started: " + pkg
	}

	// Implicit launch refused; look up the explicit entry ability.
	moduleName, abilityName := a.resolveLaunchAbility(pkg)
	if abilityName != "" {
		cmd := fmt.Sprintf("aa start -a %s -b %s", quoteShellArg(abilityName), quoteShellArg(pkg))
		if moduleName != "" {
			cmd += " -m " + quoteShellArg(moduleName)
		}
		out2, err2 := a.Shell(cmd)
		if err2 == nil && looksLikeAaStartSuccess(out2) {
			if s := strings.TrimSpace(out2); s != "" {
				return s
			}
			return fmt.Sprintf("App started: %s/%s", pkg, abilityName)
		}
	}

	if s := strings.TrimSpace(out); s != "" {
		return s
	}
	return "Failed to start app " + pkg
}

// GetDate returns the device's current date string.
func (a *App) GetDate() (string, error) {
	if err := a.ensureConnected(); err != nil {
		return "", err
	}
	out, err := a.Shell("date")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func looksLikeAaStartSuccess(output string) bool {
	text := strings.ToLower(output)
	for _, phrase := range aaStartSuccessPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// durationToVelocity converts a requested gesture duration into the px/s
// velocity uiInput expects, clamped to the device-accepted range.
func (a *App) durationToVelocity(x1, y1, x2, y2 int, duration time.Duration) int {
	if duration <= 0 {
		return a.config.DefaultSwipeVelocity
	}
	distance := math.Hypot(float64(x2-x1), float64(y2-y1))
	if distance < 1 {
		distance = 1
	}
	velocity := int(distance / duration.Seconds())
	if velocity < a.config.MinSwipeVelocity {
		return a.config.MinSwipeVelocity
	}
	if velocity > a.config.MaxSwipeVelocity {
		return a.config.MaxSwipeVelocity
	}
	return velocity
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// Ability resolution patterns over "bm dump -n" output. The dump is JSON
// wrapped in command noise, so quoted-field scraping is more robust than a
// full parse across tool versions.
var (
	mainEntryPattern        = regexp.MustCompile(`"mainEntry"\s*:\s*"([^"]+)"`)
	mainAbilityPattern      = regexp.MustCompile(`"mainAbility"\s*:\s*"([^"]+)"`)
	mainElementPattern      = regexp.MustCompile(`"mainElementName"\s*:\s*"([^"]+)"`)
	firstAbilityNamePattern = regexp.MustCompile(`"abilityInfos"\s*:\s*\[\s*\{[\s\S]*?"name"\s*:\s*"([^"]+)"`)
)

// resolveLaunchAbility extracts the module and launch ability names from
// bundle metadata. Best-effort: empty strings mean nothing resolvable.
func (a *App) resolveLaunchAbility(pkg string) (moduleName, abilityName string) {
	dump, err := a.Shell("bm dump -n " + quoteShellArg(pkg))
	if err != nil {
		AutomationLog().Err(err).Str("package", pkg).Msg("bm dump failed during ability resolution")
		return "", ""
	}
	return parseLaunchAbility(dump)
}

func parseLaunchAbility(dump string) (moduleName, abilityName string) {
	if m := mainEntryPattern.FindStringSubmatch(dump); m != nil {
		moduleName = strings.TrimSpace(m[1])
	}
	if m := mainAbilityPattern.FindStringSubmatch(dump); m != nil {
		abilityName = strings.TrimSpace(m[1])
	}
	if abilityName == "" {
		if m := mainElementPattern.FindStringSubmatch(dump); m != nil {
			abilityName = strings.TrimSpace(m[1])
		}
	}
	if abilityName == "" {
		if m := firstAbilityNamePattern.FindStringSubmatch(dump); m != nil {
			abilityName = strings.TrimSpace(m[1])
		}
	}
	return moduleName, abilityName
}
