package log

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
)

// logControlCharReplacer escapes control characters that can be used for log injection (CWE-117).
var logControlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeLogString escapes control characters in a single string value.
func sanitizeLogString(s string) string {
	return logControlCharReplacer.Replace(s)
}

// GoLogger is a Logger backed by the standard library log package.
//
// Every event is rendered on a single line as
//
//	[level] message key=value key=value
//
// String values and the message are sanitized to prevent log injection.
type GoLogger struct {
	Level  Level
	out    *stdlog.Logger
	fields []Field
	group  string
}

var _ Logger = (*GoLogger)(nil)

// NewGoLogger creates a GoLogger that writes to w at the given level.
// A nil writer falls back to os.Stdout.
func NewGoLogger(w io.Writer, level Level) *GoLogger {
	if w == nil {
		w = os.Stdout
	}

	return &GoLogger{
		Level: level,
		out:   stdlog.New(w, "", stdlog.LstdFlags),
	}
}

// Log writes the event if level is enabled.
func (l *GoLogger) Log(_ context.Context, level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	l.writer().Print(l.render(level, msg, fields))
}

// With returns a child logger carrying additional fields.
//
//nolint:ireturn
func (l *GoLogger) With(fields ...Field) Logger {
	if l == nil {
		return &GoLogger{}
	}

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, l.qualify(fields)...)

	return &GoLogger{Level: l.Level, out: l.out, fields: merged, group: l.group}
}

// WithGroup returns a child logger whose subsequent field keys are prefixed with name.
//
//nolint:ireturn
func (l *GoLogger) WithGroup(name string) Logger {
	if l == nil {
		return &GoLogger{}
	}

	group := name
	if l.group != "" && name != "" {
		group = l.group + "." + name
	} else if name == "" {
		group = l.group
	}

	return &GoLogger{Level: l.Level, out: l.out, fields: l.fields, group: group}
}

// Enabled reports whether events at level are emitted.
func (l *GoLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}

	return l.Level >= level
}

// Sync is a no-op; the standard library logger does not buffer.
func (l *GoLogger) Sync(_ context.Context) error { return nil }

func (l *GoLogger) writer() *stdlog.Logger {
	if l.out == nil {
		l.out = stdlog.New(os.Stdout, "", stdlog.LstdFlags)
	}

	return l.out
}

func (l *GoLogger) qualify(fields []Field) []Field {
	if l.group == "" {
		return fields
	}

	qualified := make([]Field, len(fields))
	for i, f := range fields {
		qualified[i] = Field{Key: l.group + "." + f.Key, Value: f.Value}
	}

	return qualified
}

func (l *GoLogger) render(level Level, msg string, fields []Field) string {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(sanitizeLogString(msg))

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, l.qualify(fields)...)

	for _, f := range all {
		b.WriteString(" ")
		b.WriteString(sanitizeLogString(f.Key))
		b.WriteString("=")
		b.WriteString(renderValue(f.Value))
	}

	return b.String()
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return sanitizeLogString(v)
	case error:
		return sanitizeLogString(v.Error())
	default:
		return sanitizeLogString(fmt.Sprint(v))
	}
}
