package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// Helper to create a CallToolRequest with arguments.
func makeToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// Helper to get text content from a result.
func getTextContent(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestNewServer(t *testing.T) {
	server := NewServer(NewMockScryApp())
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
	if server.IsRunning() {
		t.Error("Server should not be running before Start")
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{"name": "value", "empty": ""}

	if v, err := stringArg(args, "name"); err != nil || v != "value" {
		t.Errorf("stringArg(name) = %q, %v", v, err)
	}
	if _, err := stringArg(args, "empty"); err == nil {
		t.Error("Expected error for empty string argument")
	}
	if _, err := stringArg(args, "missing"); err == nil {
		t.Error("Expected error for missing argument")
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{"x": float64(42), "s": "nope"}

	if v, err := intArg(args, "x"); err != nil || v != 42 {
		t.Errorf("intArg(x) = %d, %v", v, err)
	}
	if _, err := intArg(args, "s"); err == nil {
		t.Error("Expected error for non-numeric argument")
	}
	if _, err := intArg(args, "missing"); err == nil {
		t.Error("Expected error for missing argument")
	}
}

func TestOptionalIntArg(t *testing.T) {
	args := map[string]interface{}{"ms": float64(250)}

	if v := optionalIntArg(args, "ms", 1000); v != 250 {
		t.Errorf("optionalIntArg(ms) = %d, want 250", v)
	}
	if v := optionalIntArg(args, "missing", 1000); v != 1000 {
		t.Errorf("optionalIntArg default = %d, want 1000", v)
	}
}
