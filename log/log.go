package log

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger installs the process logger. The default discards everything so
// library use stays silent.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}
