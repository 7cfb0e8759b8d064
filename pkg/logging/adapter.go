package logging

import "go.uber.org/zap"

// KeyedLogger adapts a zap.Logger to the key-value style logging interfaces
// declared at the service and transport layer boundaries.
type KeyedLogger struct {
	logger *zap.Logger
}

// NewKeyedLogger wraps the given zap logger.
func NewKeyedLogger(logger *zap.Logger) *KeyedLogger {
	return &KeyedLogger{logger: logger}
}

// Info logs at info level.
func (l *KeyedLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toZapFields(keysAndValues...)...)
}

// Warn logs at warn level.
func (l *KeyedLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toZapFields(keysAndValues...)...)
}

// Error logs at error level.
func (l *KeyedLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toZapFields(keysAndValues...)...)
}

// toZapFields converts key-value pairs to zap fields. Keys that are not
// strings are skipped along with their value.
func toZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
