package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a single structured key/value attached to a log entry.
type Field = zap.Field

// Logger is the small logging surface used throughout the module. The
// generator logs once per path, so four levels are plenty.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// zapLogger implements Logger using a SugaredLogger internally.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.sugar.Debugw(msg, zapFieldsToMap(fields)...)
}
func (l *zapLogger) Info(msg string, fields ...Field) {
	l.sugar.Infow(msg, zapFieldsToMap(fields)...)
}
func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.sugar.Warnw(msg, zapFieldsToMap(fields)...)
}
func (l *zapLogger) Error(msg string, fields ...Field) {
	l.sugar.Errorw(msg, zapFieldsToMap(fields)...)
}

// NewZapLogger builds a JSON logger at level writing to outputPaths, or to
// stderr when none are given. Sampling is off.
func NewZapLogger(level zapcore.Level, outputPaths ...string) (Logger, error) {
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.OutputPaths = outputPaths
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &zapLogger{sugar: z.Sugar()}, nil
}

// FromZap wraps an existing zap logger, e.g. one owned by the host.
func FromZap(z *zap.Logger) Logger {
	return &zapLogger{sugar: z.Sugar()}
}

// NewNop returns a logger that discards everything. It is the default for
// paths built without WithLogger.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func String(key, val string) Field { return zap.String(key, val) }
func Int(key string, val int) Field { return zap.Int(key, val) }
func Int64(key string, val int64) Field { return zap.Int64(key, val) }
func Float64(key string, val float64) Field { return zap.Float64(key, val) }
func Bool(key string, val bool) Field { return zap.Bool(key, val) }
func Err(err error) Field { return zap.Error(err) }
func Any(key string, val interface{}) Field { return zap.Any(key, val) }

// Helper – flattens zap.Field values into the key/value pairs the
// SugaredLogger expects. Fields without an Interface payload (ints, floats,
// strings) are recovered from their typed slots.
func zapFieldsToMap(fields []Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, fieldValue(f))
	}
	return out
}

func fieldValue(f Field) interface{} {
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	if v, ok := enc.Fields[f.Key]; ok {
		return v
	}
	return f.Interface
}
