// Package logger builds the service's structured zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger writing to stdout. Level is one of debug, info,
// warn, error; format is json or console. Unknown values fall back to info
// and json.
func New(level, format string) *zap.Logger {
	atomic := zap.NewAtomicLevel()
	switch level {
	case "debug":
		atomic.SetLevel(zapcore.DebugLevel)
	case "warn":
		atomic.SetLevel(zapcore.WarnLevel)
	case "error":
		atomic.SetLevel(zapcore.ErrorLevel)
	default:
		atomic.SetLevel(zapcore.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), atomic)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}
