package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"Scry/pkg/types"
)

// remoteTempPath returns a collision-free scratch path on the device.
func remoteTempPath(suffix string) string {
	return fmt.Sprintf("/data/local/tmp/scry_%s%s", uuid.New().String(), suffix)
}

// localTempPath returns a collision-free scratch path on the host.
func localTempPath(suffix string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("scry_%s%s", uuid.New().String(), suffix))
}

// SendFile pushes a local file to the device.
func (a *App) SendFile(localPath, remotePath string) error {
	_, err := a.runChecked([]string{"file", "send", localPath, remotePath}, a.config.TransferTimeout, true)
	return err
}

// RecvFile pulls a device file to the host.
func (a *App) RecvFile(remotePath, localPath string) error {
	_, err := a.runChecked([]string{"file", "recv", remotePath, localPath}, a.config.TransferTimeout, true)
	return err
}

// Screenshot captures the screen as PNG bytes. The capture goes through a
// uniquely named temp file on each side; both are deleted on every exit
// path, and cleanup failures never mask the primary result.
func (a *App) Screenshot() ([]byte, error) {
	if err := a.ensureConnected(); err != nil {
		return nil, err
	}

	remote := remoteTempPath(".png")
	local := localTempPath(".png")
	defer func() {
		_ = os.Remove(local)
		a.safeShell("rm -f " + quoteShellArg(remote))
	}()

	if _, err := a.Shell("uitest screenCap -p " + remote); err != nil {
		return nil, err
	}
	if err := a.RecvFile(remote, local); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty screenshot data")
	}
	return data, nil
}

// SaveScreenshot captures the screen and writes it to path.
func (a *App) SaveScreenshot(path string) error {
	data, err := a.Screenshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetUITree fetches one raw layout dump. The payload is returned verbatim
// (parsing happens during state assembly) together with screen extents
// inferred from the raw tree and a phone-state placeholder; uitest dumps
// carry no focus or foreground-app metadata.
func (a *App) GetUITree() (*types.UITreeResult, error) {
	if err := a.ensureConnected(); err != nil {
		return nil, err
	}

	remote := remoteTempPath(".json")
	local := localTempPath(".json")
	defer func() {
		_ = os.Remove(local)
		a.safeShell("rm -f " + quoteShellArg(remote))
	}()

	if _, err := a.Shell("uitest dumpLayout -p " + remote); err != nil {
		return nil, err
	}
	if err := a.RecvFile(remote, local); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout dump: %w", err)
	}

	layout := ParseLayoutPayload(string(payload))
	width, height := InferScreenSize(layout)
	if width <= 0 {
		width = a.config.FallbackScreenWidth
	}
	if height <= 0 {
		height = a.config.FallbackScreenHeight
	}

	return &types.UITreeResult{
		Layout: strings.TrimSpace(string(payload)),
		PhoneState: map[string]string{
			"currentApp":  "Unknown",
			"packageName": "Unknown",
		},
		ScreenWidth:  width,
		ScreenHeight: height,
	}, nil
}
