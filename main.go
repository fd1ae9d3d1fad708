package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"Scry/mcp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scry", flag.ContinueOnError)
	fs.SetOutput(stderr)

	serial := fs.String("t", "", "device serial (default: first listed target)")
	hdcPath := fs.String("hdc", "", "path to the hdc binary (default: from PATH)")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := fs.String("log-file", "", "also write logs to this file")
	minVelocity := fs.Int("min-velocity", 0, "override minimum swipe velocity (px/s)")
	maxVelocity := fs.Int("max-velocity", 0, "override maximum swipe velocity (px/s)")
	fallbackW := fs.Int("fallback-width", 0, "override fallback screen width")
	fallbackH := fs.Int("fallback-height", 0, "override fallback screen height")
	normalized := fs.Bool("normalized", false, "mark snapshot coordinates as normalized")
	asJSON := fs.Bool("json", false, "emit structured JSON instead of text")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: scry [flags] <command> [args]")
		fmt.Fprintln(stderr, "Commands:")
		fmt.Fprintln(stderr, "  mcp                          run as an MCP stdio server")
		fmt.Fprintln(stderr, "  devices                      list connected targets")
		fmt.Fprintln(stderr, "  state                        dump the normalized UI state")
		fmt.Fprintln(stderr, "  tap <x> <y>                  tap at coordinates")
		fmt.Fprintln(stderr, "  swipe <x1> <y1> <x2> <y2> [ms]")
		fmt.Fprintln(stderr, "  drag <x1> <y1> <x2> <y2> [ms]")
		fmt.Fprintln(stderr, "  text <text>                  type into the focused field")
		fmt.Fprintln(stderr, "  key <code>                   press a key (3=home 4=back 66=enter)")
		fmt.Fprintln(stderr, "  start <package> [ability]    launch an app")
		fmt.Fprintln(stderr, "  apps                         list installed bundles")
		fmt.Fprintln(stderr, "  install <path.hap>           install a bundle")
		fmt.Fprintln(stderr, "  screenshot <out.png>         capture the screen")
		fmt.Fprintln(stderr, "  date                         print the device date")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	if err := InitLogger(LogConfig{
		Level:     ParseLogLevel(*logLevel),
		Console:   true,
		FilePath:  *logFile,
		MaxSizeMB: 10,
	}); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging:", err)
		return 1
	}
	defer CloseLogger()

	config := DefaultConfig()
	if *hdcPath != "" {
		config.HdcPath = *hdcPath
	}
	if *minVelocity > 0 {
		config.MinSwipeVelocity = *minVelocity
	}
	if *maxVelocity > 0 {
		config.MaxSwipeVelocity = *maxVelocity
	}
	if *fallbackW > 0 {
		config.FallbackScreenWidth = *fallbackW
	}
	if *fallbackH > 0 {
		config.FallbackScreenHeight = *fallbackH
	}
	config.UseNormalizedCoords = *normalized

	app := NewApp(*serial, config)

	if err := dispatch(app, rest, *asJSON, stdout); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func dispatch(app *App, args []string, asJSON bool, stdout io.Writer) error {
	verb, rest := args[0], args[1:]

	switch verb {
	case "mcp":
		return mcp.NewServer(app).Start()

	case "devices":
		targets, err := app.ListTargets()
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, targets)
		}
		if len(targets) == 0 {
			fmt.Fprintln(stdout, "no devices found")
			return nil
		}
		for _, t := range targets {
			fmt.Fprintln(stdout, t.Serial)
		}
		return nil

	case "state":
		state, err := app.GetState()
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, state)
		}
		fmt.Fprintln(stdout, state.FormattedText)
		fmt.Fprintf(stdout, "\nscreen: %dx%d\n", state.ScreenWidth, state.ScreenHeight)
		return nil

	case "tap":
		x, y, err := parsePoint(rest)
		if err != nil {
			return err
		}
		return app.Tap(x, y)

	case "swipe", "drag":
		if len(rest) < 4 {
			return fmt.Errorf("%s requires x1 y1 x2 y2", verb)
		}
		coords, err := parseInts(rest[:4])
		if err != nil {
			return err
		}
		duration := time.Second
		if verb == "drag" {
			duration = 3 * time.Second
		}
		if len(rest) > 4 {
			ms, err := strconv.Atoi(rest[4])
			if err != nil {
				return fmt.Errorf("invalid duration %q", rest[4])
			}
			duration = time.Duration(ms) * time.Millisecond
		}
		if verb == "drag" {
			return app.Drag(coords[0], coords[1], coords[2], coords[3], duration)
		}
		return app.Swipe(coords[0], coords[1], coords[2], coords[3], duration)

	case "text":
		if len(rest) < 1 {
			return fmt.Errorf("text requires a string argument")
		}
		if !app.InputText(rest[0], false) {
			return fmt.Errorf("text input failed")
		}
		return nil

	case "key":
		if len(rest) < 1 {
			return fmt.Errorf("key requires a key code")
		}
		code, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid key code %q", rest[0])
		}
		return app.PressKey(code)

	case "start":
		if len(rest) < 1 {
			return fmt.Errorf("start requires a package name")
		}
		ability := ""
		if len(rest) > 1 {
			ability = rest[1]
		}
		fmt.Fprintln(stdout, app.StartApp(rest[0], ability))
		return nil

	case "apps":
		apps, err := app.GetApps(false)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(stdout, apps)
		}
		for _, info := range apps {
			fmt.Fprintf(stdout, "%s\t%s\n", info.Package, info.Label)
		}
		return nil

	case "install":
		if len(rest) < 1 {
			return fmt.Errorf("install requires a .hap path")
		}
		fmt.Fprintln(stdout, app.InstallApp(rest[0], true))
		return nil

	case "screenshot":
		if len(rest) < 1 {
			return fmt.Errorf("screenshot requires an output path")
		}
		if err := app.SaveScreenshot(rest[0]); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "saved", rest[0])
		return nil

	case "date":
		date, err := app.GetDate()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, date)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", verb)
	}
}

func parsePoint(args []string) (int, int, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("expected x y coordinates")
	}
	coords, err := parseInts(args[:2])
	if err != nil {
		return 0, 0, err
	}
	return coords[0], coords[1], nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		out[i] = n
	}
	return out, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
