package log

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// slogHandler bridges slog records onto a zap core.
type slogHandler struct {
	core  zapcore.Core
	attrs []zapcore.Field
	group string
}

func slogLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.core.Enabled(slogLevel(level))
}

func (h *slogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := zapcore.Entry{
		Level:   slogLevel(record.Level),
		Time:    record.Time,
		Message: record.Message,
	}

	checked := h.core.Check(entry, nil)
	if checked == nil {
		return nil
	}

	fields := make([]zapcore.Field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)

	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.field(attr))
		return true
	})

	checked.Write(fields...)

	return nil
}

func (h *slogHandler) field(attr slog.Attr) zapcore.Field {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	return zap.Any(key, attr.Value.Any())
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &slogHandler{core: h.core, group: h.group}
	next.attrs = append(next.attrs, h.attrs...)

	for _, attr := range attrs {
		next.attrs = append(next.attrs, next.field(attr))
	}

	return next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}

	return &slogHandler{core: h.core, attrs: h.attrs, group: group}
}
