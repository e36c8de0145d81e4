package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface shared across packages.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	DebugObj(msg, kind string, obj map[string]any)
	InfoObj(msg, kind string, obj map[string]any)
	WarnObj(msg, kind string, obj map[string]any)
	ErrorObj(msg, kind string, obj map[string]any)

	Sync() error
}

// Options controls how the zap logger is built.
type Options struct {
	Level  string
	Format string
}

type zapLogger struct {
	z *zap.Logger
}

// New builds a zap-backed Logger writing to stderr.
func New(opts Options) (Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return &zapLogger{z: zap.New(core)}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) Logger {
	if z == nil {
		return NopLogger{}
	}
	return &zapLogger{z: z}
}

func parseLevel(raw string) (zapcore.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return lvl, fmt.Errorf("parse log level %q: %w", raw, err)
	}
	return lvl, nil
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

func (l *zapLogger) DebugObj(msg, kind string, obj map[string]any) {
	l.z.Debug(msg, objFields(kind, obj)...)
}

func (l *zapLogger) InfoObj(msg, kind string, obj map[string]any) {
	l.z.Info(msg, objFields(kind, obj)...)
}

func (l *zapLogger) WarnObj(msg, kind string, obj map[string]any) {
	l.z.Warn(msg, objFields(kind, obj)...)
}

func (l *zapLogger) ErrorObj(msg, kind string, obj map[string]any) {
	l.z.Error(msg, objFields(kind, obj)...)
}

func (l *zapLogger) Sync() error { return l.z.Sync() }

// objFields flattens an event object into zap fields, tagging it with its kind.
func objFields(kind string, obj map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, len(obj)+1)
	if kind != "" {
		fields = append(fields, zap.String("kind", kind))
	}
	for k, v := range obj {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...zap.Field)              {}
func (NopLogger) Info(string, ...zap.Field)               {}
func (NopLogger) Warn(string, ...zap.Field)               {}
func (NopLogger) Error(string, ...zap.Field)              {}
func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
func (NopLogger) Sync() error                             { return nil }
