package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Initialize runs, so packages can log from tests
// without any setup.
var Logger = zap.NewNop().Sugar()

// RawLogger is the unsugared logger behind Logger, used where typed
// zap.Field values are needed (AuditLog). Also a no-op until Initialize.
var RawLogger = zap.NewNop()

// Initialize builds the process logger. Output goes to stderr: stdout is
// reserved for the single success line of a bootstrap run.
func Initialize(isDev bool) {
	var config zapcore.EncoderConfig
	var defaultLogLevel zapcore.Level

	if isDev {
		config = zap.NewDevelopmentEncoderConfig()
		defaultLogLevel = zapcore.DebugLevel
	} else {
		config = zap.NewProductionEncoderConfig()
		defaultLogLevel = zapcore.InfoLevel
	}
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(config)
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), defaultLogLevel),
	)
	RawLogger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	Logger = RawLogger.Sugar()
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = RawLogger.Sync()
}
