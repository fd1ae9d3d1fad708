package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerDeviceTools registers device discovery and utility tools.
func (s *Server) registerDeviceTools() {
	s.server.AddTool(
		mcp.NewTool("device_list",
			mcp.WithDescription("List connected HarmonyOS devices"),
		),
		s.handleDeviceList,
	)

	s.server.AddTool(
		mcp.NewTool("device_date",
			mcp.WithDescription("Get the device's current date and time"),
		),
		s.handleDeviceDate,
	)

	s.server.AddTool(
		mcp.NewTool("shell",
			mcp.WithDescription("Run a raw shell command on the device and return its output"),
			mcp.WithString("command",
				mcp.Required(),
				mcp.Description("Shell command line to execute"),
			),
		),
		s.handleShell,
	)

	s.server.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the device screen to a PNG file on the host"),
			mcp.WithString("save_path",
				mcp.Required(),
				mcp.Description("Host path to write the PNG to"),
			),
		),
		s.handleScreenshot,
	)
}

func (s *Server) handleDeviceList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targets, err := s.app.ListTargets()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if len(targets) == 0 {
		return textResult("No devices connected"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d device(s):\n", len(targets))
	for i, t := range targets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Serial)
	}
	return textResult("%s", b.String()), nil
}

func (s *Server) handleDeviceDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := s.app.GetDate()
	if err != nil {
		return nil, fmt.Errorf("failed to get device date: %w", err)
	}
	return textResult("Device date: %s", date), nil
}

func (s *Server) handleShell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	command, err := stringArg(args, "command")
	if err != nil {
		return nil, err
	}

	out, err := s.app.Shell(command)
	if err != nil {
		return nil, fmt.Errorf("shell command failed: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		out = "(no output)"
	}
	return textResult("%s", out), nil
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	savePath, err := stringArg(args, "save_path")
	if err != nil {
		return nil, err
	}

	if err := s.app.SaveScreenshot(savePath); err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return textResult("Screenshot saved to %s", savePath), nil
}
