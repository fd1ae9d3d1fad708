package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"Scry/pkg/types"
)

// targetIDPattern validates serials before they are spliced into a command
// line. Covers USB serials and IP:port targets.
var targetIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._:\-]+$`)

// ValidateTargetID rejects serials that could not have come from
// "hdc list targets".
func ValidateTargetID(serial string) error {
	if serial == "" {
		return fmt.Errorf("target serial cannot be empty")
	}
	if len(serial) > 256 {
		return fmt.Errorf("target serial too long (max 256 characters)")
	}
	if !targetIDPattern.MatchString(serial) {
		return fmt.Errorf("invalid target serial format: %q", serial)
	}
	return nil
}

// CommandError is a transport-level failure: non-zero exit or timeout from
// one hdc invocation. It carries the exact command line and a diagnostic
// excerpt so failures are actionable without re-running anything.
type CommandError struct {
	Cmd      string
	Output   string
	Timeout  bool
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("command timed out: %s", e.Cmd)
	}
	detail := strings.TrimSpace(e.Output)
	if detail == "" {
		detail = fmt.Sprintf("exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s", e.Cmd, detail)
}

func (e *CommandError) Unwrap() error { return e.Err }

// hdcCmd assembles the full argument vector for one invocation.
func (a *App) hdcCmd(args []string, withTarget bool) []string {
	cmd := []string{a.config.HdcPath}
	if withTarget && a.serial != "" {
		cmd = append(cmd, "-t", a.serial)
	}
	return append(cmd, args...)
}

// runHdc executes one hdc command under a deadline. On timeout the process
// is killed by the context and a timeout CommandError returned; output from
// a timed-out process is discarded.
func (a *App) runHdc(args []string, timeout time.Duration, withTarget bool) (string, string, error) {
	if withTarget && a.serial != "" {
		if err := ValidateTargetID(a.serial); err != nil {
			return "", "", err
		}
	}

	full := a.hdcCmd(args, withTarget)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, full[0], full[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	TransportLog().Str("cmd", strings.Join(full, " ")).Msg("exec")
	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return "", "", &CommandError{
			Cmd:     strings.Join(full, " "),
			Timeout: true,
			Err:     ctx.Err(),
		}
	}
	if err != nil {
		exitCode := -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		detail := stderr.String()
		if strings.TrimSpace(detail) == "" {
			detail = stdout.String()
		}
		return stdout.String(), stderr.String(), &CommandError{
			Cmd:      strings.Join(full, " "),
			Output:   detail,
			ExitCode: exitCode,
			Err:      err,
		}
	}

	return stdout.String(), stderr.String(), nil
}

// runChecked runs one command and returns stdout, or the transport error.
func (a *App) runChecked(args []string, timeout time.Duration, withTarget bool) (string, error) {
	out, _, err := a.runHdc(args, timeout, withTarget)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Shell runs a device shell command with the default timeout.
func (a *App) Shell(cmd string) (string, error) {
	return a.ShellTimeout(cmd, a.config.CommandTimeout)
}

// ShellTimeout runs a device shell command with an explicit timeout.
func (a *App) ShellTimeout(cmd string, timeout time.Duration) (string, error) {
	return a.runChecked([]string{"shell", cmd}, timeout, true)
}

// safeShell runs a shell command best-effort. Used only on cleanup paths
// where a failure must never surface over the primary result.
func (a *App) safeShell(cmd string) {
	if _, err := a.ShellTimeout(cmd, 15*time.Second); err != nil {
		TransportLog().Err(err).Str("cmd", cmd).Msg("best-effort shell command failed")
	}
}

// ListTargets enumerates candidate devices from "hdc list targets". The raw
// output mixes identifiers with status noise; empty lines, bracketed status
// lines, "empty" markers, and usb-channel chatter are discarded.
func (a *App) ListTargets() ([]types.Target, error) {
	out, _, err := a.runHdc([]string{"list", "targets"}, a.config.CommandTimeout, false)
	if err != nil {
		return nil, fmt.Errorf("hdc list targets failed: %w", err)
	}

	return parseTargetLines(out), nil
}

func parseTargetLines(out string) []types.Target {
	var targets []types.Target
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" ||
			strings.HasPrefix(strings.ToLower(line), "empty") ||
			strings.HasPrefix(line, "[") ||
			strings.Contains(strings.ToLower(line), "usb:") {
			continue
		}
		targets = append(targets, types.Target{Serial: line})
	}
	return targets
}

// ExtractJSONObject locates the first balanced top-level {...} object inside
// noisy command output. It is string-literal aware, so braces embedded in
// values do not break the balance count. Returns "" when no complete object
// exists.
func ExtractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// quoteShellArg wraps an argument in single quotes for the device shell,
// escaping embedded single quotes.
func quoteShellArg(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
