package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	err := Init(Config{
		Debug: false,
		Dir:   logDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if _, err := os.Stat(filepath.Join(logDir, "planme.log")); err != nil {
		t.Errorf("Log file was not written: %v", err)
	}
}

func TestInitWithoutDir(t *testing.T) {
	if err := Init(Config{Prefix: "planner"}); err != nil {
		t.Fatalf("Failed to initialize logger without directory: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetPrefix() != "planner" {
		t.Errorf("Logger prefix = %q, want %q", Logger.GetPrefix(), "planner")
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{
		Debug: true,
		Dir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if With("key", "value") != nil {
		t.Error("With() should return nil when Logger is nil")
	}
}
