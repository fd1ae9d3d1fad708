package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global structured logger. InitLogger must run before use;
// the zero value discards nothing but writes nowhere useful.
var Logger = zerolog.Nop()

var logFile *rotatingFile

// LogLevel selects the minimum severity that gets emitted.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// ParseLogLevel maps a CLI level name to a LogLevel, defaulting to info.
func ParseLogLevel(name string) LogLevel {
	switch name {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// LogConfig controls logger output destinations.
type LogConfig struct {
	Level     LogLevel
	Console   bool
	FilePath  string // empty disables file output
	MaxSizeMB int    // rotate threshold for the file writer
}

// DefaultLogConfig returns console-only logging at info level.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:     LogLevelInfo,
		Console:   true,
		MaxSizeMB: 10,
	}
}

// rotatingFile is a size-capped log file writer. When the cap is hit the
// current file is renamed with a timestamp suffix and a fresh one opened.
type rotatingFile struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	file    *os.File
	size    int64
}

func newRotatingFile(path string, maxSizeMB int) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	rf := &rotatingFile{path: path, maxSize: int64(maxSizeMB) * 1024 * 1024}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) open() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	rf.file = f
	rf.size = info.Size()
	return nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.maxSize > 0 && rf.size+int64(len(p)) > rf.maxSize {
		rf.file.Close()
		stamp := time.Now().Format("2006-01-02_15-04-05")
		rotated := fmt.Sprintf("%s.%s", rf.path, stamp)
		_ = os.Rename(rf.path, rotated)
		if err := rf.open(); err != nil {
			return 0, err
		}
	}

	n, err := rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

func (rf *rotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.file != nil {
		return rf.file.Close()
	}
	return nil
}

// InitLogger wires the global Logger according to config.
func InitLogger(config LogConfig) error {
	var writers []io.Writer

	if config.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	if config.FilePath != "" {
		rf, err := newRotatingFile(config.FilePath, config.MaxSizeMB)
		if err != nil {
			return err
		}
		logFile = rf
		writers = append(writers, rf)
	}

	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	var level zerolog.Level
	switch config.Level {
	case LogLevelDebug:
		level = zerolog.DebugLevel
	case LogLevelWarn:
		level = zerolog.WarnLevel
	case LogLevelError:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseLogger releases the file writer, if any.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}

// Module-tagged event helpers.

// TransportLog logs hdc transport activity.
func TransportLog() *zerolog.Event {
	return Logger.Debug().Str("module", "transport")
}

// DeviceLog logs device lifecycle activity.
func DeviceLog() *zerolog.Event {
	return Logger.Info().Str("module", "device")
}

// AutomationLog logs gesture and UI-state activity.
func AutomationLog() *zerolog.Event {
	return Logger.Info().Str("module", "automation")
}

// LayoutLog logs layout parsing diagnostics.
func LayoutLog() *zerolog.Event {
	return Logger.Debug().Str("module", "layout")
}
