package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// cloudHandler is a slog.Handler that emits one JSON object per line in the
// shape Google Cloud Logging expects: a "severity" field instead of slog's
// default level encoding.
type cloudHandler struct {
	writer     *os.File
	level      slog.Level
	extraAttrs map[string]any
}

func newCloudHandler(writer *os.File, level slog.Level) *cloudHandler {
	return &cloudHandler{writer: writer, level: level}
}

func (h *cloudHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *cloudHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]any{}
	r.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	entry := map[string]any{
		"severity": severityOf(r.Level),
		"message":  r.Message,
		"time":     time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		entry[k] = v
	}

	return json.NewEncoder(h.writer).Encode(entry)
}

func (h *cloudHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.extraAttrs = make(map[string]any, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		next.extraAttrs[k] = v
	}
	for _, attr := range attrs {
		next.extraAttrs[attr.Key] = attr.Value.Any()
	}
	return &next
}

func (h *cloudHandler) WithGroup(name string) slog.Handler {
	return h
}

func severityOf(level slog.Level) string {
	switch level {
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	case slog.LevelDebug:
		return "DEBUG"
	default:
		return "DEFAULT"
	}
}
