package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerAppTools registers app lifecycle tools.
func (s *Server) registerAppTools() {
	s.server.AddTool(
		mcp.NewTool("app_start",
			mcp.WithDescription("Launch an app by bundle name, optionally naming the ability"),
			mcp.WithString("package",
				mcp.Required(),
				mcp.Description("Bundle name, e.g. com.example.app"),
			),
			mcp.WithString("ability",
				mcp.Description("Ability name; resolved from bundle metadata when omitted"),
			),
		),
		s.handleAppStart,
	)

	s.server.AddTool(
		mcp.NewTool("app_list",
			mcp.WithDescription("List installed apps with display labels"),
			mcp.WithBoolean("include_system",
				mcp.Description("Include preinstalled system bundles (default false)"),
			),
		),
		s.handleAppList,
	)

	s.server.AddTool(
		mcp.NewTool("app_install",
			mcp.WithDescription("Install a .hap bundle from a host path"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Host path to the .hap file"),
			),
		),
		s.handleAppInstall,
	)
}

func (s *Server) handleAppStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	pkg, err := stringArg(args, "package")
	if err != nil {
		return nil, err
	}
	ability, _ := args["ability"].(string)

	return textResult("%s", s.app.StartApp(pkg, ability)), nil
}

func (s *Server) handleAppList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	includeSystem, _ := args["include_system"].(bool)

	apps, err := s.app.GetApps(includeSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	if len(apps) == 0 {
		return textResult("No apps found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d app(s):\n", len(apps))
	for i, info := range apps {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, info.Label, info.Package)
	}
	return textResult("%s", b.String()), nil
}

func (s *Server) handleAppInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}

	return textResult("%s", s.app.InstallApp(path, true)), nil
}
