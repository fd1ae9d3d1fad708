// Package mcp exposes the device driver over the Model Context Protocol so
// agent clients can observe and act on a connected HarmonyOS device.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"Scry/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Type aliases from the shared types package.
type (
	Target  = types.Target
	AppInfo = types.AppInfo
	UIState = types.UIState
)

// ScryApp is the slice of the driver the MCP server needs. Keeping it an
// interface lets tests substitute a mock without a device attached.
type ScryApp interface {
	Version() string

	ListTargets() ([]Target, error)
	Shell(cmd string) (string, error)

	GetState() (*UIState, error)
	Screenshot() ([]byte, error)
	SaveScreenshot(path string) error

	Tap(x, y int) error
	Swipe(x1, y1, x2, y2 int, duration time.Duration) error
	Drag(x1, y1, x2, y2 int, duration time.Duration) error
	InputText(text string, clear bool) bool
	PressKey(keycode int) error

	StartApp(pkg, ability string) string
	GetApps(includeSystem bool) ([]AppInfo, error)
	InstallApp(path string, reinstall bool) string
	GetDate() (string, error)
}

// Server wraps an MCP stdio server around a ScryApp.
type Server struct {
	app       ScryApp
	server    *server.MCPServer
	stdio     *server.StdioServer
	mu        sync.Mutex
	isRunning bool
}

// NewServer creates an MCP server with every tool registered.
func NewServer(app ScryApp) *Server {
	mcpServer := server.NewMCPServer(
		"scry-harmony-bridge",
		app.Version(),
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	s := &Server{
		app:    app,
		server: mcpServer,
	}
	s.registerDeviceTools()
	s.registerUITools()
	s.registerAppTools()
	return s
}

// Start runs the server over stdio and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	return s.run()
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	go s.run()
	return nil
}

func (s *Server) run() error {
	s.stdio = server.NewStdioServer(s.server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "[MCP] Scry MCP server started")
	err := s.stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[MCP] server error: %v\n", err)
	}

	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	return err
}

// IsRunning reports whether the stdio loop is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// stringArg extracts a required non-empty string argument.
func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// intArg extracts a required numeric argument. JSON numbers arrive as
// float64 regardless of the schema type.
func intArg(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return int(v), nil
}

// optionalIntArg extracts a numeric argument, returning def when absent.
func optionalIntArg(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func textResult(format string, a ...interface{}) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf(format, a...)),
		},
	}
}
