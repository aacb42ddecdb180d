package log

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a context-aware logger. Hooks run on every entry and may pull
// additional fields out of the context.
type Logger struct {
	zl    *zap.Logger
	hooks []Hook
}

// New builds a Logger from the given config. Used as an fx constructor.
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error

		level, err = zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Format == "console" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := zapCfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.Name != "" {
		zl = zl.With(zap.String("logger", cfg.Name))
	}

	logger := &Logger{zl: zl}
	logger.AddHook(HookFunc(traceFields))

	return logger, nil
}

// AddHook registers a hook to run on every entry.
func (l *Logger) AddHook(hook Hook) {
	l.hooks = append(l.hooks, hook)
}

func (l *Logger) apply(ctx context.Context, msg string, fields []Field) []Field {
	for _, hook := range l.hooks {
		fields = hook.Apply(ctx, msg, fields...)
	}

	return fields
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.zl.Debug(msg, l.apply(ctx, msg, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...Field) {
	l.zl.Info(msg, l.apply(ctx, msg, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.zl.Warn(msg, l.apply(ctx, msg, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...Field) {
	l.zl.Error(msg, l.apply(ctx, msg, fields)...)
}

// AsSlog exposes the logger through the standard library's slog front end,
// for dependencies that only speak slog.
func (l *Logger) AsSlog() *slog.Logger {
	return slog.New(&slogHandler{core: l.zl.Core()})
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}
