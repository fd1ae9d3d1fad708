package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"Scry/pkg/types"
)

// systemBundlePrefixes identify preinstalled HarmonyOS bundles.
var systemBundlePrefixes = []string{"com.ohos.", "ohos.", "com.huawei."}

// bm dump output is JSON-ish text wrapped in per-bundle headers; quoted
// field scraping survives format drift better than a strict parse.
var (
	bundleNamePattern  = regexp.MustCompile(`(?i)"(?:bundleName|name)"\s*:\s*"([A-Za-z0-9_.]+)"`)
	bundleLabelPattern = regexp.MustCompile(`(?i)"label"\s*:\s*"([^"]*)"`)
	dottedIdentPattern = regexp.MustCompile(`\b[A-Za-z0-9_]+(?:\.[A-Za-z0-9_]+){2,}\b`)
)

// ListPackages returns installed bundle names. System bundles are filtered
// out unless includeSystem is set.
func (a *App) ListPackages(includeSystem bool) ([]string, error) {
	if err := a.ensureConnected(); err != nil {
		return nil, err
	}
	out, err := a.Shell("bm dump -a")
	if err != nil {
		return nil, err
	}
	packages := parseBundleNames(out)
	if includeSystem {
		return packages, nil
	}
	return filterSystemBundles(packages), nil
}

// GetApps returns installed bundles with display labels. When the labeled
// dump yields nothing, the plain package list is used with packages as
// their own labels.
func (a *App) GetApps(includeSystem bool) ([]types.AppInfo, error) {
	if err := a.ensureConnected(); err != nil {
		return nil, err
	}
	out, err := a.Shell("bm dump -a -l")
	if err != nil {
		return nil, err
	}

	apps := parseApps(out)
	if len(apps) == 0 {
		packages, err := a.ListPackages(includeSystem)
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			apps = append(apps, types.AppInfo{Package: pkg, Label: pkg})
		}
		return apps, nil
	}

	if includeSystem {
		return apps, nil
	}
	var filtered []types.AppInfo
	for _, app := range apps {
		if !isSystemBundle(app.Package) {
			filtered = append(filtered, app)
		}
	}
	return filtered, nil
}

// InstallApp pushes a .hap to a unique remote temp path and installs it.
// The remote artifact is removed best-effort whether or not the install
// succeeds. Install failure is reported as the returned message.
func (a *App) InstallApp(path string, reinstall bool) string {
	if err := a.ensureConnected(); err != nil {
		return fmt.Sprintf("Failed to install app: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("Failed to install app: file not found at %s", path)
	}

	remote := fmt.Sprintf("/data/local/tmp/%s_%s", uuid.New().String(), filepath.Base(path))
	defer a.safeShell("rm -f " + quoteShellArg(remote))

	if err := a.SendFile(path, remote); err != nil {
		return fmt.Sprintf("Failed to install app %s: %v", path, err)
	}

	cmd := "bm install -p " + quoteShellArg(remote)
	if reinstall {
		cmd += " -r"
	}
	out, err := a.ShellTimeout(cmd, a.config.InstallTimeout)
	if err != nil {
		return fmt.Sprintf("Failed to install app %s: %v", path, err)
	}
	return strings.TrimSpace(out)
}

// parseBundleNames extracts bundle identifiers from dump text, in order,
// deduplicated. Falls back to loose dotted-identifier tokens when no quoted
// bundle fields are present.
func parseBundleNames(output string) []string {
	var names []string
	for _, m := range bundleNamePattern.FindAllStringSubmatch(output, -1) {
		names = append(names, m[1])
	}
	if len(names) == 0 {
		names = dottedIdentPattern.FindAllString(output, -1)
	}

	seen := make(map[string]struct{}, len(names))
	var dedup []string
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		dedup = append(dedup, name)
	}
	return dedup
}

// parseApps pairs bundle names with label fields by position; missing or
// empty labels fall back to the package name.
func parseApps(output string) []types.AppInfo {
	packages := parseBundleNames(output)
	if len(packages) == 0 {
		return nil
	}

	var labels []string
	for _, m := range bundleLabelPattern.FindAllStringSubmatch(output, -1) {
		labels = append(labels, m[1])
	}

	apps := make([]types.AppInfo, 0, len(packages))
	for i, pkg := range packages {
		label := pkg
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		apps = append(apps, types.AppInfo{Package: pkg, Label: label})
	}
	return apps
}

func isSystemBundle(pkg string) bool {
	for _, prefix := range systemBundlePrefixes {
		if strings.HasPrefix(pkg, prefix) {
			return true
		}
	}
	return false
}

func filterSystemBundles(packages []string) []string {
	var out []string
	for _, pkg := range packages {
		if !isSystemBundle(pkg) {
			out = append(out, pkg)
		}
	}
	return out
}
