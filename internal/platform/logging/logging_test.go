package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewUsesLevel(t *testing.T) {
	logger, err := New("warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info to be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected error to be enabled at warn level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected nop logger")
	}
	logger, err := New("info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if OrNop(logger) != logger {
		t.Fatal("expected logger passthrough")
	}
}
