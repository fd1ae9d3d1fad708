package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerUITools registers UI observation and gesture tools.
func (s *Server) registerUITools() {
	s.server.AddTool(
		mcp.NewTool("ui_state",
			mcp.WithDescription("Get the current screen as a numbered list of interactable UI elements"),
		),
		s.handleUIState,
	)

	s.server.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap the screen at pixel coordinates"),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate")),
		),
		s.handleTap,
	)

	s.server.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two points; identical points become a long press"),
			mcp.WithNumber("x1", mcp.Required(), mcp.Description("Start X")),
			mcp.WithNumber("y1", mcp.Required(), mcp.Description("Start Y")),
			mcp.WithNumber("x2", mcp.Required(), mcp.Description("End X")),
			mcp.WithNumber("y2", mcp.Required(), mcp.Description("End Y")),
			mcp.WithNumber("duration_ms",
				mcp.Description("Gesture duration in milliseconds (default 1000)"),
			),
		),
		s.handleSwipe,
	)

	s.server.AddTool(
		mcp.NewTool("drag",
			mcp.WithDescription("Drag from one point to another, holding until released"),
			mcp.WithNumber("x1", mcp.Required(), mcp.Description("Start X")),
			mcp.WithNumber("y1", mcp.Required(), mcp.Description("Start Y")),
			mcp.WithNumber("x2", mcp.Required(), mcp.Description("End X")),
			mcp.WithNumber("y2", mcp.Required(), mcp.Description("End Y")),
			mcp.WithNumber("duration_ms",
				mcp.Description("Gesture duration in milliseconds (default 3000)"),
			),
		),
		s.handleDrag,
	)

	s.server.AddTool(
		mcp.NewTool("input_text",
			mcp.WithDescription("Type text into the focused input field"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
			mcp.WithBoolean("clear",
				mcp.Description("Clear the field before typing (default false)"),
			),
		),
		s.handleInputText,
	)

	s.server.AddTool(
		mcp.NewTool("press_key",
			mcp.WithDescription("Press a key by code (3=home, 4=back, 66=enter)"),
			mcp.WithNumber("keycode", mcp.Required(), mcp.Description("Key code")),
		),
		s.handlePressKey,
	)
}

func (s *Server) handleUIState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.app.GetState()
	if err != nil {
		return nil, fmt.Errorf("failed to get UI state: %w", err)
	}

	text := state.FormattedText
	if state.FocusedText != "" {
		text += fmt.Sprintf("\n\nFocused element: %s", state.FocusedText)
	}
	text += fmt.Sprintf("\n\nScreen: %dx%d", state.ScreenWidth, state.ScreenHeight)
	return textResult("%s", text), nil
}

func (s *Server) handleTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	x, err := intArg(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := intArg(args, "y")
	if err != nil {
		return nil, err
	}

	if err := s.app.Tap(x, y); err != nil {
		return nil, fmt.Errorf("failed to tap: %w", err)
	}
	return textResult("Tapped at (%d, %d)", x, y), nil
}

func (s *Server) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coords, duration, err := gestureArgs(request, 1000)
	if err != nil {
		return nil, err
	}

	if err := s.app.Swipe(coords[0], coords[1], coords[2], coords[3], duration); err != nil {
		return nil, fmt.Errorf("failed to swipe: %w", err)
	}
	return textResult("Swiped (%d, %d) -> (%d, %d)", coords[0], coords[1], coords[2], coords[3]), nil
}

func (s *Server) handleDrag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coords, duration, err := gestureArgs(request, 3000)
	if err != nil {
		return nil, err
	}

	if err := s.app.Drag(coords[0], coords[1], coords[2], coords[3], duration); err != nil {
		return nil, fmt.Errorf("failed to drag: %w", err)
	}
	return textResult("Dragged (%d, %d) -> (%d, %d)", coords[0], coords[1], coords[2], coords[3]), nil
}

func (s *Server) handleInputText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	text, err := stringArg(args, "text")
	if err != nil {
		return nil, err
	}
	clear, _ := args["clear"].(bool)

	if !s.app.InputText(text, clear) {
		return nil, fmt.Errorf("text input failed; is an input field focused?")
	}
	return textResult("Typed %q", text), nil
}

func (s *Server) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	keycode, err := intArg(args, "keycode")
	if err != nil {
		return nil, err
	}

	if err := s.app.PressKey(keycode); err != nil {
		return nil, fmt.Errorf("failed to press key: %w", err)
	}
	return textResult("Pressed key %d", keycode), nil
}

// gestureArgs extracts the shared x1/y1/x2/y2/duration_ms argument set.
func gestureArgs(request mcp.CallToolRequest, defaultMs int) ([4]int, time.Duration, error) {
	args := request.GetArguments()
	var coords [4]int
	for i, key := range []string{"x1", "y1", "x2", "y2"} {
		v, err := intArg(args, key)
		if err != nil {
			return coords, 0, err
		}
		coords[i] = v
	}
	ms := optionalIntArg(args, "duration_ms", defaultMs)
	return coords, time.Duration(ms) * time.Millisecond, nil
}
