package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It is a no-op logger until Init is called
// so packages can log from tests without any setup.
var Log = zap.NewNop()

var (
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	initOnce sync.Once
)

// Init builds the console logger used by the engine. Calling it more than
// once is harmless.
func Init() {
	initOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = level
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

		l, err := cfg.Build()
		if err != nil {
			fmt.Printf("logger: falling back to no-op logger: %v\n", err)
			return
		}
		Log = l
	})
}

// SetLevel changes the minimum enabled level ("debug", "info", "warn", "error").
func SetLevel(name string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("logger: unknown level %q: %w", name, err)
	}
	level.SetLevel(lvl)
	return nil
}

// Sync flushes buffered log entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
