package mcp

import (
	"context"
	"strings"
	"testing"
	"time"
)

// ==================== ui_state ====================

func TestHandleUIState_Success(t *testing.T) {
	mock := NewMockScryApp()
	mock.GetStateResult = &UIState{
		FormattedText: "Current Clickable UI elements:\n1. Button: \"OK\" - (0,0,100,50)",
		FocusedText:   "Search",
		ScreenWidth:   1080,
		ScreenHeight:  2400,
	}
	server := NewServer(mock)

	result, err := server.handleUIState(context.Background(), makeToolRequest(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := getTextContent(result)
	if !strings.Contains(text, "1. Button") {
		t.Error("Result should contain the formatted element list")
	}
	if !strings.Contains(text, "Focused element: Search") {
		t.Error("Result should report the focused element")
	}
	if !strings.Contains(text, "1080x2400") {
		t.Error("Result should report the screen size")
	}
}

func TestHandleUIState_NoFocus(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	result, err := server.handleUIState(context.Background(), makeToolRequest(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if strings.Contains(getTextContent(result), "Focused element") {
		t.Error("Result should omit the focus line when nothing is focused")
	}
}

func TestHandleUIState_Error(t *testing.T) {
	mock := NewMockScryApp()
	mock.SetupWithError("GetState", ErrDeviceOffline)
	server := NewServer(mock)

	_, err := server.handleUIState(context.Background(), makeToolRequest(nil))
	if err == nil {
		t.Error("Expected error, got nil")
	}
}

// ==================== tap ====================

func TestHandleTap_Success(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	result, err := server.handleTap(context.Background(), makeToolRequest(map[string]interface{}{
		"x": float64(540),
		"y": float64(1200),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(getTextContent(result), "(540, 1200)") {
		t.Error("Result should echo the tap coordinates")
	}
	lastCall := mock.GetLastCall()
	if lastCall.Method != "Tap" || lastCall.Args[0] != 540 || lastCall.Args[1] != 1200 {
		t.Errorf("Unexpected call: %+v", lastCall)
	}
}

func TestHandleTap_MissingCoordinate(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handleTap(context.Background(), makeToolRequest(map[string]interface{}{
		"x": float64(540),
	}))
	if err == nil {
		t.Error("Expected error for missing y")
	}
}

// ==================== swipe / drag ====================

func TestHandleSwipe_DefaultDuration(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handleSwipe(context.Background(), makeToolRequest(map[string]interface{}{
		"x1": float64(500), "y1": float64(1500),
		"x2": float64(500), "y2": float64(300),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lastCall := mock.GetLastCall()
	if lastCall.Method != "Swipe" {
		t.Fatalf("Expected Swipe call, got %s", lastCall.Method)
	}
	if lastCall.Args[4] != time.Second {
		t.Errorf("Expected default 1s duration, got %v", lastCall.Args[4])
	}
}

func TestHandleSwipe_ExplicitDuration(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handleSwipe(context.Background(), makeToolRequest(map[string]interface{}{
		"x1": float64(0), "y1": float64(0),
		"x2": float64(100), "y2": float64(0),
		"duration_ms": float64(250),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lastCall := mock.GetLastCall()
	if lastCall.Args[4] != 250*time.Millisecond {
		t.Errorf("Expected 250ms duration, got %v", lastCall.Args[4])
	}
}

func TestHandleDrag_DefaultDuration(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handleDrag(context.Background(), makeToolRequest(map[string]interface{}{
		"x1": float64(100), "y1": float64(200),
		"x2": float64(300), "y2": float64(400),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lastCall := mock.GetLastCall()
	if lastCall.Method != "Drag" {
		t.Fatalf("Expected Drag call, got %s", lastCall.Method)
	}
	if lastCall.Args[4] != 3*time.Second {
		t.Errorf("Expected default 3s duration, got %v", lastCall.Args[4])
	}
}

func TestHandleDrag_Error(t *testing.T) {
	mock := NewMockScryApp()
	mock.SetupWithError("Drag", ErrShellFailed)
	server := NewServer(mock)

	_, err := server.handleDrag(context.Background(), makeToolRequest(map[string]interface{}{
		"x1": float64(0), "y1": float64(0),
		"x2": float64(1), "y2": float64(1),
	}))
	if err == nil {
		t.Error("Expected error, got nil")
	}
}

// ==================== input_text ====================

func TestHandleInputText_Success(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	result, err := server.handleInputText(context.Background(), makeToolRequest(map[string]interface{}{
		"text":  "hello",
		"clear": true,
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(getTextContent(result), "hello") {
		t.Error("Result should echo the typed text")
	}
	lastCall := mock.GetLastCall()
	if lastCall.Args[0] != "hello" || lastCall.Args[1] != true {
		t.Errorf("Unexpected call args: %+v", lastCall.Args)
	}
}

func TestHandleInputText_Failure(t *testing.T) {
	mock := NewMockScryApp()
	mock.InputTextResult = false
	server := NewServer(mock)

	_, err := server.handleInputText(context.Background(), makeToolRequest(map[string]interface{}{
		"text": "hello",
	}))
	if err == nil {
		t.Error("Expected error when input fails")
	}
}

// ==================== press_key ====================

func TestHandlePressKey_Success(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handlePressKey(context.Background(), makeToolRequest(map[string]interface{}{
		"keycode": float64(4),
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lastCall := mock.GetLastCall()
	if lastCall.Method != "PressKey" || lastCall.Args[0] != 4 {
		t.Errorf("Unexpected call: %+v", lastCall)
	}
}

func TestHandlePressKey_MissingCode(t *testing.T) {
	mock := NewMockScryApp()
	server := NewServer(mock)

	_, err := server.handlePressKey(context.Background(), makeToolRequest(nil))
	if err == nil {
		t.Error("Expected error for missing keycode")
	}
}
