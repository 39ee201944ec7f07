package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer level.SetLevel(zapcore.InfoLevel)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug) returned error: %v", err)
	}
	if level.Level() != zapcore.DebugLevel {
		t.Errorf("Expected debug level, got %v", level.Level())
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel should reject unknown level names")
	}
}

func TestLogUsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("logging before Init must not panic")
}
