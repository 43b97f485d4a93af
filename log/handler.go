package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// FormatterHandler adapts a LogFormatter to the slog.Handler interface, so
// that NewWithFormatter-constructed loggers can render through TextFormatter,
// JSONFormatter, or ColorFormatter instead of slog's built-in handlers.
type FormatterHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	formatter LogFormatter
	level     slog.Leveler
	attrs     []slog.Attr
	groups    []string
}

// NewFormatterHandler creates a FormatterHandler that writes entries
// formatted by f to w, emitting records at or above minLevel.
func NewFormatterHandler(w io.Writer, f LogFormatter, minLevel slog.Leveler) *FormatterHandler {
	if minLevel == nil {
		minLevel = slog.LevelInfo
	}
	return &FormatterHandler{
		mu:        &sync.Mutex{},
		w:         w,
		formatter: f,
		level:     minLevel,
	}
}

// Enabled reports whether the handler processes records at the given level.
func (h *FormatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a single log record.
func (h *FormatterHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		addAttr(fields, h.groups, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, h.groups, a)
		return true
	})

	entry := LogEntry{
		Timestamp: r.Time,
		Level:     levelFromSlog(r.Level),
		Message:   r.Message,
		Fields:    fields,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, h.formatter.Format(entry))
	return err
}

// WithAttrs returns a new handler that includes the given attributes in
// every subsequent record.
func (h *FormatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &FormatterHandler{
		mu:        h.mu,
		w:         h.w,
		formatter: h.formatter,
		level:     h.level,
		attrs:     append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups:    h.groups,
	}
}

// WithGroup returns a new handler that prefixes subsequent attribute keys
// with name.
func (h *FormatterHandler) WithGroup(name string) slog.Handler {
	return &FormatterHandler{
		mu:        h.mu,
		w:         h.w,
		formatter: h.formatter,
		level:     h.level,
		attrs:     h.attrs,
		groups:    append(append([]string{}, h.groups...), name),
	}
}

func addAttr(fields map[string]interface{}, groups []string, a slog.Attr) {
	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}
	fields[key] = a.Value.Any()
}

func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}

// NewWithFormatter creates a Logger that renders through f instead of
// slog's default JSON encoding. This is how callers opt into TextFormatter
// or ColorFormatter for interactive use.
func NewWithFormatter(w io.Writer, f LogFormatter, level slog.Level) *Logger {
	return NewWithHandler(NewFormatterHandler(w, f, level))
}
