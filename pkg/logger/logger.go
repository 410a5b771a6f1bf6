// Package logger provides structured logging for the cdnflush service.
// It exposes a small context-aware interface backed by zap, with trace
// identifiers pulled from OpenTelemetry span context when present.
package logger

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(ctx context.Context, message string, fields ...Field)
	Info(ctx context.Context, message string, fields ...Field)
	Warn(ctx context.Context, message string, fields ...Field)
	Error(ctx context.Context, message string, err error, fields ...Field)
	Fatal(ctx context.Context, message string, err error, fields ...Field)

	// WithComponent creates a new logger scoped to a component name.
	WithComponent(component string) Logger
}

// Field represents a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Time creates a time field in RFC3339.
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value.Format(time.RFC3339)}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type zapLogger struct {
	l *zap.Logger
}

// NewLogger creates a zap-backed Logger at the given level. Unknown level
// strings fall back to info.
func NewLogger(level string) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)

	return &zapLogger{l: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

func (z *zapLogger) Debug(ctx context.Context, message string, fields ...Field) {
	z.l.Debug(message, convertFields(ctx, fields)...)
}

func (z *zapLogger) Info(ctx context.Context, message string, fields ...Field) {
	z.l.Info(message, convertFields(ctx, fields)...)
}

func (z *zapLogger) Warn(ctx context.Context, message string, fields ...Field) {
	z.l.Warn(message, convertFields(ctx, fields)...)
}

func (z *zapLogger) Error(ctx context.Context, message string, err error, fields ...Field) {
	zapFields := convertFields(ctx, fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.l.Error(message, zapFields...)
}

func (z *zapLogger) Fatal(ctx context.Context, message string, err error, fields ...Field) {
	zapFields := convertFields(ctx, fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.l.Fatal(message, zapFields...)
}

func (z *zapLogger) WithComponent(component string) Logger {
	return &zapLogger{l: z.l.With(zap.String("component", component))}
}

func convertFields(ctx context.Context, fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)+2)

	if ctx != nil {
		span := trace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			zapFields = append(zapFields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}
	}

	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}
