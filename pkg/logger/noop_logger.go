package logger

import "context"

// NoopLogger discards all log output. Intended for tests.
type NoopLogger struct{}

// NewNoopLogger creates a logger that does nothing.
func NewNoopLogger() Logger {
	return &NoopLogger{}
}

func (n *NoopLogger) Debug(ctx context.Context, message string, fields ...Field) {}

func (n *NoopLogger) Info(ctx context.Context, message string, fields ...Field) {}

func (n *NoopLogger) Warn(ctx context.Context, message string, fields ...Field) {}

func (n *NoopLogger) Error(ctx context.Context, message string, err error, fields ...Field) {}

func (n *NoopLogger) Fatal(ctx context.Context, message string, err error, fields ...Field) {}

func (n *NoopLogger) WithComponent(component string) Logger { return n }
